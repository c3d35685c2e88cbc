package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/config"
	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/watcher"
)

// CatalogWatcherHandle stops the catalog watcher on shutdown.
type CatalogWatcherHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.cancel == nil {
		return nil
	}
	h.cancel()
	<-h.done
	return nil
}

// ProvideCatalogWatcher reloads the catalog whenever its file settles after a change.
// Nothing is watched for the embedded catalog or when watching is disabled.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	source := do.MustInvoke[*catalog.Source](i)

	if !cfg.Catalog.Watch || source.Path() == "" {
		log.Info("Catalog watching disabled")
		return &CatalogWatcherHandle{}, nil
	}

	w, err := watcher.New(log.WithComponent("watcher"), watcher.Options{SettleDelay: cfg.Catalog.SettleDelay})
	if err != nil {
		return nil, err
	}
	if err := w.Watch(source.Path()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := w.Run(ctx, func(ev watcher.Event) {
			if ev.Type == watcher.EventRemoved {
				log.Warn("Catalog file removed, keeping the loaded catalog", "path", ev.Path)
				return
			}
			if err := source.Reload(); err != nil {
				log.Warn("Catalog reload failed", "path", ev.Path, "error", err)
			}
		})
		if err != nil {
			log.Error("Catalog watcher error", "error", err)
		}
	}()

	log.Info("Watching catalog", "path", source.Path(), "settle_delay", cfg.Catalog.SettleDelay)

	return &CatalogWatcherHandle{cancel: cancel, done: done}, nil
}
