package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// getClaimsFromContext returns the JWT claims set by the auth middleware,
// or nil for anonymous requests.
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated account id, or 0.
func getUserIDFromContext(c echo.Context) uint {
	if claims := getClaimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// currentUser resolves the caller's account record. Banned accounts are
// rejected here so a stale token never outlives a ban.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return nil, apperr.ErrUnauthenticated
	}
	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	if user.Banned {
		return nil, apperr.ErrUnauthenticated
	}
	return user, nil
}
