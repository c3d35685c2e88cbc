package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("favorites: %w", NotFoundf("prompt %d not found", 42))

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))

	var domainErr *Error
	require.True(t, As(err, &domainErr))
	assert.Equal(t, "prompt 42 not found", domainErr.Message)
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeInternal, "failed to save user")

	assert.Equal(t, "failed to save user: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestError_CopiesDoNotShareState(t *testing.T) {
	withDetails := ErrValidation.WithDetails(map[string]string{"email": "required"})
	assert.Nil(t, ErrValidation.Details, "sentinel untouched")
	assert.NotNil(t, withDetails.Details)

	withCause := ErrInternal.WithCause(stderrors.New("boom"))
	assert.Nil(t, ErrInternal.Unwrap())
	assert.Equal(t, "internal error: boom", withCause.Error())
}
