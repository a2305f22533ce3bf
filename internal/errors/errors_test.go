package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeSession, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_Is_MatchesByCode(t *testing.T) {
	err := NotFound("anime 42 not found")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrForbidden))
}

func TestError_WrapPreservesCause(t *testing.T) {
	cause := Internal("boom")
	err := Wrap(cause, CodeSession, "failed to destroy session")

	assert.Equal(t, CodeSession, err.Code)
	assert.ErrorContains(t, err, "failed to destroy session")
	assert.Equal(t, cause, Unwrap(err))
}

func TestError_WithDetails(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"title": "is required"})

	assert.Equal(t, CodeValidation, err.Code)
	details, ok := err.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "is required", details["title"])
}
