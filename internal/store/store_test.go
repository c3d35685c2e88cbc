package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aishort/showcase-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, id, email string) *domain.User {
	t.Helper()

	u := &domain.User{ID: id, Email: email, DisplayName: "Test User"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "usr-1", "test@example.com")

	got, err := s.GetUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "Test User", got.DisplayName)
}

func TestCreateUser_Conflicts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "usr-1", "test@example.com")

	err := s.CreateUser(ctx, &domain.User{ID: "usr-1", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)

	err = s.CreateUser(ctx, &domain.User{ID: "usr-2", Email: "  TEST@example.com "})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "usr-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "usr-1", "Test@Example.com")

	got, err := s.GetUserByEmail(context.Background(), "test@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
}

func TestUpdateUser_MovesEmailIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "usr-1", "old@example.com")
	createTestUser(t, s, "usr-2", "taken@example.com")

	u.Email = "taken@example.com"
	assert.ErrorIs(t, s.UpdateUser(ctx, u), ErrEmailExists)

	u.Email = "new@example.com"
	require.NoError(t, s.UpdateUser(ctx, u))

	_, err := s.GetUserByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := s.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "usr-1", "a@example.com")
	createTestUser(t, s, "usr-2", "b@example.com")

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "usr-1", "a@example.com")

	loves, err := s.Favorites(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, loves)

	_, err = s.AddFavorite(ctx, "usr-1", 7)
	require.NoError(t, err)
	loves, err = s.AddFavorite(ctx, "usr-1", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, loves)

	loves, err = s.AddFavorite(ctx, "usr-1", 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, loves, "adding twice is a no-op")

	loves, err = s.RemoveFavorite(ctx, "usr-1", 7)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, loves)

	loves, err = s.RemoveFavorite(ctx, "usr-1", 99)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, loves)

	u, err := s.GetUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, u.Favorites.Loves)
}

func TestFavorites_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "usr-1", "a@example.com")

	_, err := s.AddFavorite(ctx, "usr-missing", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.AddFavorite(ctx, "usr-1", 0)
	assert.ErrorIs(t, err, ErrInvalidEntryID)
}

func TestCopyCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CopyCount(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 1; i <= 3; i++ {
		n, err = s.IncrementCopyCount(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	_, err = s.IncrementCopyCount(ctx, 12)
	require.NoError(t, err)

	counts, err := s.CopyCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{5: 3, 12: 1}, counts)

	_, err = s.IncrementCopyCount(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidEntryID)
}

func TestIncrementCopyCount_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers, each = 8, 10
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for range each {
				_, err := s.IncrementCopyCount(ctx, 1)
				assert.NoError(t, err)
			}
		})
	}
	wg.Wait()

	n, err := s.CopyCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, workers*each, n)
}

func TestNewInMemory(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.IncrementCopyCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestContextCancelled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CopyCounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
