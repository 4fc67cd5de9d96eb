package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Sentinel errors for the failure taxonomy. Store and policy code returns
// (or wraps) these; the HTTP layer translates them in one place so callers
// never learn more than the class of failure.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("insufficient privilege")
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// HTTP maps a taxonomy error to an echo HTTP error. Unknown errors become a
// generic 500 so store internals are never leaked to the caller.
func HTTP(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error())
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, ErrForbidden.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, "upstream service unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
