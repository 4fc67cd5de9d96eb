package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// SessionRevoker reports whether an account's sessions have been recalled.
// *sessions.Revoker satisfies this, including its nil (disabled) form.
type SessionRevoker interface {
	IsRevoked(ctx context.Context, userID uint) (bool, error)
}

// JWTAuth checks for a valid JWT, rejects revoked sessions, and stores the
// caller's claims in the request context.
func JWTAuth(secret string, revoker SessionRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// Banned and logged-out accounts have their sessions
			// invalidated. A revocation-list outage fails open: the token
			// itself is still valid.
			revoked, err := revoker.IsRevoked(c.Request().Context(), claims.UserID)
			if err != nil {
				logging.L().Warn("session revocation check failed",
					zap.Uint("user_id", claims.UserID), zap.Error(err))
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session revoked")
			}

			c.Set("user", claims)

			return next(c)
		}
	}
}
