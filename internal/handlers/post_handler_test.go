package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paginationContext(t *testing.T, query string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/posts?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "", 0, 20},
		{"explicit page", "page=3&limit=10", 20, 10},
		{"zero page clamps", "page=0&limit=10", 0, 10},
		{"negative page clamps", "page=-2", 0, 20},
		{"oversized limit falls back", "limit=500", 0, 20},
		{"garbage values fall back", "page=abc&limit=xyz", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, limit := pagination(paginationContext(t, tt.query))
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}
