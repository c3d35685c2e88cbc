package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"database":  s.checkDatabase(ctx),
		"catalog":   s.checkCatalog(),
		"tag_index": s.checkTagIndex(),
	}

	overall := "healthy"
	for _, c := range components {
		switch {
		case c.Status == "unhealthy":
			overall = "unhealthy"
		case c.Status == "degraded" && overall == "healthy":
			overall = "degraded"
		}
	}

	return &HealthOutput{Body: HealthResponse{Status: overall, Components: components}}, nil
}

func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.services.DB == nil {
		return ComponentHealth{Status: "unhealthy", Message: "database not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.services.DB.Ping(ctx); err != nil {
		s.logger.Error("database health check failed", "error", err)
		return ComponentHealth{Status: "unhealthy", Message: err.Error()}
	}
	return ComponentHealth{Status: "healthy", Latency: time.Since(start).String()}
}

func (s *Server) checkCatalog() ComponentHealth {
	if s.services.Catalog == nil {
		return ComponentHealth{Status: "unhealthy", Message: "catalog not loaded"}
	}
	n := s.services.Catalog.Current().Len()
	if n == 0 {
		return ComponentHealth{Status: "degraded", Message: "catalog is empty"}
	}
	return ComponentHealth{Status: "healthy", Message: fmt.Sprintf("%d entries", n)}
}

// checkTagIndex reports degraded when the index lags behind the catalog.
func (s *Server) checkTagIndex() ComponentHealth {
	if s.services.TagIndex == nil || s.services.Catalog == nil {
		return ComponentHealth{Status: "degraded", Message: "tag index not configured"}
	}

	docs, err := s.services.TagIndex.DocumentCount()
	if err != nil {
		return ComponentHealth{Status: "unhealthy", Message: err.Error()}
	}
	want := s.services.Catalog.Current().Len()
	if int(docs) != want {
		return ComponentHealth{
			Status:  "degraded",
			Message: fmt.Sprintf("indexed %d of %d entries", docs, want),
		}
	}
	return ComponentHealth{Status: "healthy", Message: fmt.Sprintf("%d documents", docs)}
}
