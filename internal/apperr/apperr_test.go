package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrUpstream, http.StatusBadGateway},
		{errors.New("some driver error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTP(tt.err).Code; got != tt.want {
			t.Errorf("HTTP(%v).Code = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHTTPWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("post id %q: %w", "zzz", ErrInvalidInput)
	he := HTTP(wrapped)
	if he.Code != http.StatusBadRequest {
		t.Errorf("got %d, want %d", he.Code, http.StatusBadRequest)
	}
	if he.Message != wrapped.Error() {
		t.Errorf("got message %v, want the wrapped detail", he.Message)
	}
}

func TestHTTPHidesInternalDetail(t *testing.T) {
	he := HTTP(errors.New("pq: connection refused"))
	if he.Message != "internal server error" {
		t.Errorf("got %v, want the generic message", he.Message)
	}
}
