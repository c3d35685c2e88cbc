package providers

import (
	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/config"
	"github.com/aishort/showcase-server/internal/logger"
)

// ProvideCatalog loads the prompt catalog from the configured file or the embedded default.
func ProvideCatalog(i do.Injector) (*catalog.Source, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	source, err := catalog.NewSource(cfg.Catalog.Path, log.WithComponent("catalog"))
	if err != nil {
		return nil, err
	}

	path := source.Path()
	if path == "" {
		path = "embedded"
	}
	log.Info("Catalog loaded", "source", path, "entries", source.Current().Len())

	return source, nil
}
