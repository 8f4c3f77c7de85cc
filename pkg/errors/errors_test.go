package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedAppError(t *testing.T) {
	err := NotFound("Chat", nil)
	wrapped := fmt.Errorf("loading conversation: %w", err)

	assert.True(t, Is(wrapped, "NOT_FOUND"))
	assert.False(t, Is(wrapped, "FORBIDDEN"))
	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))
}

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Chat", nil), "NOT_FOUND", http.StatusNotFound},
		{"bad request", BadRequest("bad", nil), "BAD_REQUEST", http.StatusBadRequest},
		{"unauthorized", Unauthorized("who are you", nil), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours", nil), "FORBIDDEN", http.StatusForbidden},
		{"internal", Internal("boom", nil), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"too many requests", TooManyRequests("slow down"), "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, "Chat not found", Reason(NotFound("Chat", nil)))
	assert.Equal(t, "An unexpected error occurred", Reason(fmt.Errorf("driver: connection reset")))
}
