package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/api"
	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/config"
	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/service"
)

// shutdownTimeout bounds draining in-flight requests.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*TagIndexHandle](i)

	services := &api.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		Favorites:  do.MustInvoke[*service.FavoriteService](i),
		CopyCounts: do.MustInvoke[*service.CopyCountService](i),
		Showcase:   do.MustInvoke[*service.ShowcaseService](i),
		Tags:       do.MustInvoke[*service.TagService](i),
		DB:         storeHandle.Store,
		Catalog:    do.MustInvoke[*catalog.Source](i),
		TagIndex:   indexHandle.TagIndex,
	}

	handler := api.NewServer(services, api.Config{
		Title:         cfg.Server.Name,
		CORSOrigins:   cfg.Server.CORSOrigins,
		CopyPerSecond: cfg.RateLimit.CopyPerSecond,
		CopyBurst:     cfg.RateLimit.CopyBurst,
		AuthPerMinute: cfg.RateLimit.AuthPerMinute,
	}, log.WithComponent("api"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
