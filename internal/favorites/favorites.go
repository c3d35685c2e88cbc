// Package favorites derives the per-user favorite partition of a filtered list.
package favorites

import (
	"context"
	"slices"

	"github.com/aishort/showcase-server/internal/domain"
)

// Session is the authentication state consumed by the overlay.
// The zero value is an anonymous visitor.
type Session struct {
	Authenticated bool
	Favorites     domain.FavoritesSet
}

// Anonymous is the session of a visitor without a user record.
var Anonymous = Session{}

// FromUser builds a session from an optional user. A nil user is anonymous.
func FromUser(u *domain.User) Session {
	if u == nil {
		return Anonymous
	}
	return Session{
		Authenticated: true,
		Favorites:     domain.NewFavoritesSet(u.Favorites.Loves...),
	}
}

// SessionProvider supplies the current session. Implementations report
// failures as Anonymous rather than errors.
type SessionProvider interface {
	Session(ctx context.Context) Session
}

// SessionFunc adapts a function to SessionProvider.
type SessionFunc func(ctx context.Context) Session

// Session implements SessionProvider.
func (f SessionFunc) Session(ctx context.Context) Session {
	return f(ctx)
}

// Static returns a provider that always yields s.
func Static(s Session) SessionProvider {
	return SessionFunc(func(context.Context) Session { return s })
}

// Effective returns e with its favorite tag adjusted for the session.
// Authenticated sessions override any favorite tag present in the raw entry.
// The returned entry owns its tag slice; e is never modified.
func Effective(e domain.PromptEntry, s Session) domain.PromptEntry {
	if !s.Authenticated {
		return e
	}

	loved := s.Favorites.Contains(e.ID)
	tagged := e.HasTag(domain.TagFavorite)
	if loved == tagged {
		return e
	}

	c := e.Clone()
	if loved {
		c.Tags = append(c.Tags, domain.TagFavorite)
	} else {
		c.Tags = slices.DeleteFunc(c.Tags, func(t domain.TagID) bool { return t == domain.TagFavorite })
	}
	return c
}

// Partition splits filtered entries into favorites and others.
// Both buckets are stable sorted by descending weight.
func Partition(filtered []domain.PromptEntry, s Session) (favorite, other []domain.PromptEntry) {
	favorite = make([]domain.PromptEntry, 0)
	other = make([]domain.PromptEntry, 0, len(filtered))

	for _, e := range filtered {
		eff := Effective(e, s)
		if eff.HasTag(domain.TagFavorite) {
			favorite = append(favorite, eff)
		} else {
			other = append(other, eff)
		}
	}

	slices.SortStableFunc(favorite, domain.ByWeightDesc)
	slices.SortStableFunc(other, domain.ByWeightDesc)
	return favorite, other
}
