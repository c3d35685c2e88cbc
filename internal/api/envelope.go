package api

import (
	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/aishort/showcase-server/internal/errors"
	"github.com/aishort/showcase-server/internal/http/response"
)

// EnvelopeTransformer wraps every operation body in the response envelope.
// Errors reach it either as *APIError from huma.NewError or as domain errors
// returned straight from a handler.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch e := v.(type) {
	case *APIError:
		return response.Fail(domainerrors.Code(e.Code), e.Message, e.Details), nil
	case *domainerrors.Error:
		return response.Fail(e.Code, e.Message, e.Details), nil
	}
	return response.Ok(v), nil
}
