// Package response defines the JSON envelope shared by every API response and
// writes it for handlers that live outside the typed operation layer.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/aishort/showcase-server/internal/errors"
)

// Version is the envelope format version sent as "v".
const Version = 1

// Envelope is the success body: {"v":1,"success":true,"data":...}.
type Envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorEnvelope is the failure body. Error repeats Message for clients that
// only read a flat string.
type ErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Ok wraps data in a success envelope.
func Ok(data any) Envelope {
	return Envelope{V: Version, Success: true, Data: data}
}

// Fail builds a failure envelope.
func Fail(code domainerrors.Code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{
		V:       Version,
		Success: false,
		Error:   message,
		Code:    string(code),
		Message: message,
		Details: details,
	}
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// Success writes a 200 success envelope.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, Ok(data), logger)
}

// Error writes a failure envelope whose status follows the code.
func Error(w http.ResponseWriter, code domainerrors.Code, message string, logger *slog.Logger) {
	JSON(w, code.HTTPStatus(), Fail(code, message, nil), logger)
}

// NotFound is an http.HandlerFunc for unknown routes.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Error(w, domainerrors.CodeNotFound, "no route for "+r.URL.Path, logger)
	}
}

// MethodNotAllowed is an http.HandlerFunc for known routes with the wrong method.
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusMethodNotAllowed, ErrorEnvelope{
			V:       Version,
			Error:   "method " + r.Method + " not allowed",
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method " + r.Method + " not allowed",
		}, logger)
	}
}
