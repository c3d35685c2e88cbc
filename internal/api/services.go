package api

import (
	"context"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/search"
	"github.com/aishort/showcase-server/internal/service"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services holds everything the handlers call into.
type Services struct {
	Auth       *service.AuthService
	Favorites  *service.FavoriteService
	CopyCounts *service.CopyCountService
	Showcase   *service.ShowcaseService
	Tags       *service.TagService

	// Health checks.
	DB       Pinger
	Catalog  *catalog.Source
	TagIndex *search.TagIndex
}
