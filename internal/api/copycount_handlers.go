package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCopyCountRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCopyCounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/copy-counts",
		Summary:     "List copy counts",
		Description: "Returns the copy counter of every prompt that has been copied",
		Tags:        []string{"Prompts"},
	}, s.handleListCopyCounts)
}

// CopyCountsResponse maps prompt IDs to copy counts.
type CopyCountsResponse struct {
	Counts map[int]int `json:"counts" doc:"Copy count by prompt ID"`
}

// CopyCountsOutput wraps the counters for Huma.
type CopyCountsOutput struct {
	Body CopyCountsResponse
}

func (s *Server) handleListCopyCounts(ctx context.Context, _ *struct{}) (*CopyCountsOutput, error) {
	counts, err := s.services.CopyCounts.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return &CopyCountsOutput{Body: CopyCountsResponse{Counts: counts}}, nil
}
