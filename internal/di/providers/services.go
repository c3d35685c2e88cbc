package providers

import (
	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/auth"
	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/config"
	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/service"
	"github.com/aishort/showcase-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the account and token service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, validator, log.WithComponent("auth")), nil
}

// ProvideFavoriteService provides the favorites service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	source := do.MustInvoke[*catalog.Source](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(storeHandle.Store, source, log.WithComponent("favorites")), nil
}

// ProvideCopyCountService provides the copy counter service.
func ProvideCopyCountService(i do.Injector) (*service.CopyCountService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	source := do.MustInvoke[*catalog.Source](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCopyCountService(storeHandle.Store, source, log.WithComponent("copycount")), nil
}

// ProvideShowcaseService provides the view renderer.
func ProvideShowcaseService(i do.Injector) (*service.ShowcaseService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	source := do.MustInvoke[*catalog.Source](i)
	copies := do.MustInvoke[*service.CopyCountService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShowcaseService(source, copies, service.ShowcaseConfig{
		DefaultLocale: cfg.Catalog.DefaultLocale,
		PageSize:      cfg.Showcase.PageSize,
		Threshold:     cfg.Showcase.LoadMoreThreshold,
	}, log.WithComponent("showcase")), nil
}

// ProvideTagService provides the tag bar service and keeps the tag index current.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	source := do.MustInvoke[*catalog.Source](i)
	indexHandle := do.MustInvoke[*TagIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(source, indexHandle.TagIndex, log.WithComponent("tags"))
}
