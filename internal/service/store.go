package service

import (
	"context"

	"github.com/aishort/showcase-server/internal/domain"
)

// UserStore is the user persistence used by AuthService.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// FavoriteStore persists favorite entry ids per user.
type FavoriteStore interface {
	Favorites(ctx context.Context, userID string) ([]int, error)
	AddFavorite(ctx context.Context, userID string, entryID int) ([]int, error)
	RemoveFavorite(ctx context.Context, userID string, entryID int) ([]int, error)
}

// CopyCountStore persists copy counters.
type CopyCountStore interface {
	IncrementCopyCount(ctx context.Context, entryID int) (int, error)
	CopyCounts(ctx context.Context) (map[int]int, error)
}
