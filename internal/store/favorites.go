package store

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/aishort/showcase-server/internal/domain"
)

// Favorites returns the user's favorite entry ids in the order they were added.
func (s *Store) Favorites(ctx context.Context, userID string) ([]int, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(user.Favorites.Loves), nil
}

// AddFavorite adds entryID to the user's favorites and returns the updated list.
// Adding an id twice is a no-op.
func (s *Store) AddFavorite(ctx context.Context, userID string, entryID int) ([]int, error) {
	return s.modifyFavorites(ctx, userID, entryID, (*domain.User).Love)
}

// RemoveFavorite removes entryID from the user's favorites and returns the updated list.
// Removing an absent id is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, userID string, entryID int) ([]int, error) {
	return s.modifyFavorites(ctx, userID, entryID, (*domain.User).Unlove)
}

func (s *Store) modifyFavorites(ctx context.Context, userID string, entryID int, apply func(*domain.User, int) bool) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if entryID <= 0 {
		return nil, ErrInvalidEntryID
	}

	key := buildKey(userPrefix, userID)
	defer releaseKey(key)

	var loves []int
	err := s.update(func(txn *badger.Txn) error {
		var user domain.User
		if err := getJSON(txn, key, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		loves = user.Favorites.Loves
		if !apply(&user, entryID) {
			return nil
		}
		user.Touch()
		loves = user.Favorites.Loves
		return setJSON(txn, key, &user)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(loves), nil
}
