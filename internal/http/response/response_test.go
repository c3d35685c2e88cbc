package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/aishort/showcase-server/internal/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"status": "healthy"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, float64(Version), body["v"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"status": "healthy"}, body["data"])
}

func TestSuccess_NullData(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, nil, nil)

	body := decode(t, w)
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}

func TestError(t *testing.T) {
	tests := []struct {
		code   domainerrors.Code
		status int
	}{
		{domainerrors.CodeNotFound, http.StatusNotFound},
		{domainerrors.CodeRateLimited, http.StatusTooManyRequests},
		{domainerrors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			Error(w, tt.code, "boom", nil)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "boom", body["error"])
			assert.Equal(t, string(tt.code), body["code"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestFallbackHandlers(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(nil)(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no route for /nope", decode(t, w)["message"])

	w = httptest.NewRecorder()
	MethodNotAllowed(nil)(w, httptest.NewRequest(http.MethodPatch, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w)["code"])
}
