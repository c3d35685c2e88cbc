// Package di wires the showcase server's components with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/auth"
	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/config"
	"github.com/aishort/showcase-server/internal/di/providers"
	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Data
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideTagIndex)

	// Auth
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideFavoriteService)
	do.Provide(injector, providers.ProvideCopyCountService)
	do.Provide(injector, providers.ProvideShowcaseService)
	do.Provide(injector, providers.ProvideTagService)

	// Workers
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes every service. Providers are lazy, so this is what
// opens the database and starts the watcher and the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	steps := []func() error{
		invoke[*config.Config](injector),
		invoke[*logger.Logger](injector),
		invoke[providers.AuthKey](injector),
		invoke[*providers.StoreHandle](injector),
		invoke[*catalog.Source](injector),
		invoke[*providers.TagIndexHandle](injector),
		invoke[*auth.TokenService](injector),
		invoke[*service.AuthService](injector),
		invoke[*service.FavoriteService](injector),
		invoke[*service.CopyCountService](injector),
		invoke[*service.ShowcaseService](injector),
		invoke[*service.TagService](injector),
		invoke[*providers.CatalogWatcherHandle](injector),
		invoke[*providers.HTTPServerHandle](injector),
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func invoke[T any](injector do.Injector) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
