package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aishort/showcase-server/internal/catalog"
	domainerrors "github.com/aishort/showcase-server/internal/errors"
	"github.com/aishort/showcase-server/internal/store"
)

// FavoriteService manages users' favorite entries.
type FavoriteService struct {
	store  FavoriteStore
	source *catalog.Source
	logger *slog.Logger
}

// NewFavoriteService creates a new favorites service.
func NewFavoriteService(s FavoriteStore, source *catalog.Source, logger *slog.Logger) *FavoriteService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FavoriteService{store: s, source: source, logger: logger}
}

// List returns the user's favorite entry ids.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]int, error) {
	loves, err := s.store.Favorites(ctx, userID)
	return orEmpty(loves), mapStoreError(err)
}

// Add marks an entry as a favorite. The entry must exist in the current catalog.
func (s *FavoriteService) Add(ctx context.Context, userID string, entryID int) ([]int, error) {
	if !s.source.Current().Has(entryID) {
		return nil, domainerrors.NotFoundf("prompt %d not found", entryID)
	}

	loves, err := s.store.AddFavorite(ctx, userID, entryID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Debug("favorite added", "user_id", userID, "entry_id", entryID)
	return orEmpty(loves), nil
}

// Remove unmarks an entry. Ids no longer in the catalog can still be removed.
func (s *FavoriteService) Remove(ctx context.Context, userID string, entryID int) ([]int, error) {
	loves, err := s.store.RemoveFavorite(ctx, userID, entryID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Debug("favorite removed", "user_id", userID, "entry_id", entryID)
	return orEmpty(loves), nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrUserNotFound):
		return domainerrors.NotFoundf("user not found")
	case errors.Is(err, store.ErrInvalidEntryID):
		return domainerrors.Validation("prompt id must be positive")
	default:
		return err
	}
}

func orEmpty(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
