package domain

import (
	"slices"
	"time"
)

// Favorites holds the per-user personalization lists.
// Loves is the favorite entry id list consumed by the favorites overlay.
type Favorites struct {
	Loves []int `json:"loves"`
}

// User represents an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string    `json:"display_name"`
	Favorites    Favorites `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// Name returns DisplayName, falling back to the email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Love adds an entry to the user's favorites. Returns false if it was already present.
func (u *User) Love(entryID int) bool {
	if slices.Contains(u.Favorites.Loves, entryID) {
		return false
	}
	u.Favorites.Loves = append(u.Favorites.Loves, entryID)
	return true
}

// Unlove removes an entry from the user's favorites. Returns false if it was absent.
func (u *User) Unlove(entryID int) bool {
	i := slices.Index(u.Favorites.Loves, entryID)
	if i < 0 {
		return false
	}
	u.Favorites.Loves = slices.Delete(u.Favorites.Loves, i, i+1)
	return true
}

// FavoritesSet is the set of entry ids a user loves.
type FavoritesSet map[int]struct{}

// NewFavoritesSet builds a set from ids.
func NewFavoritesSet(ids ...int) FavoritesSet {
	s := make(FavoritesSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. A nil set contains nothing.
func (s FavoritesSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}
