package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/service"
	"github.com/aishort/showcase-server/internal/urlstate"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the selectable tags with entry counts for the current selection",
		Tags:        []string{"Tags"},
	}, s.handleListTags)
}

// ListTagsInput carries the current tag selection.
type ListTagsInput struct {
	Tags     []string `query:"tags,explode" doc:"Selected tag ids"`
	Operator string   `query:"operator" doc:"AND narrows counts to entries carrying every selected tag"`

	query url.Values
}

// Resolve keeps the raw query for the URL codec.
func (i *ListTagsInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	i.query = u.Query()
	return nil
}

// TagListResponse is the tag bar.
type TagListResponse struct {
	Operator domain.Operator      `json:"operator"`
	Tags     []service.TagSummary `json:"tags"`
}

// TagListOutput wraps the tag bar for Huma.
type TagListOutput struct {
	Body TagListResponse
}

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*TagListOutput, error) {
	state := urlstate.FromValues(input.query, s.services.Catalog.Current().Tags())

	tags, err := s.services.Tags.Tags(ctx, state)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Operator: state.Operator, Tags: tags}}, nil
}
