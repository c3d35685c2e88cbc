package providers

import (
	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/logger"
	"github.com/aishort/showcase-server/internal/search"
)

// TagIndexHandle wraps the tag index with shutdown capability.
type TagIndexHandle struct {
	*search.TagIndex
}

// Shutdown implements do.Shutdownable.
func (h *TagIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideTagIndex provides the in-memory Bleve index behind tag counts.
// The tag service fills it from the catalog.
func ProvideTagIndex(i do.Injector) (*TagIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewTagIndex(log.WithComponent("search"))
	if err != nil {
		return nil, err
	}
	return &TagIndexHandle{TagIndex: index}, nil
}
