package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/mailer"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
	"github.com/Ougobatec/Breezy-sub000/internal/sessions"
	"github.com/Ougobatec/Breezy-sub000/pkg/config"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

const passwordResetTTL = time.Hour

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client // nil when federated login is not configured
	mailer         *mailer.Mailer
	revoker        *sessions.Revoker
	jwtSecret      string
	jwtTTL         time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, m *mailer.Mailer, revoker *sessions.Revoker, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		mailer:         m,
		revoker:        revoker,
		jwtSecret:      jwtCfg.Secret,
		jwtTTL:         time.Duration(jwtCfg.TTLHours) * time.Hour,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.POST("/password-reset", h.InitPasswordReset)
	g.POST("/password-reset/complete", h.CompletePasswordReset)
}

// RegisterSessionRoutes registers routes that require an authenticated session
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/logout", h.Logout)
}

// Logout revokes the caller's outstanding sessions. Tokens are stateless,
// so the revocation list is the only recall mechanism; the next successful
// login clears the entry again.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	if err := h.revoker.Revoke(c.Request().Context(), claims.UserID); err != nil {
		logging.L().Warn("session revocation failed",
			zap.Uint("user_id", claims.UserID), zap.Error(err))
		return apperr.HTTP(apperr.ErrUpstream)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out"})
}

// Register handles local registration with handle, email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	req.Username = strings.ToLower(req.Username)

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.HTTP(err)
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return apperr.HTTP(err)
	}

	// Welcome mail is best-effort: registration succeeds either way
	go h.mailer.SendWelcome(user.Email, user.Name)

	token, err := h.generateJWT(user)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// Login handles local authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	// Banned accounts are rejected at authentication time
	if user.Banned {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account banned")
	}

	h.clearRevocation(c, user.ID)

	token, err := h.generateJWT(user)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// clearRevocation lifts a logout's revocation entry so the fresh session is
// usable. Bans never reach this point: banned accounts fail authentication.
func (h *AuthHandler) clearRevocation(c echo.Context, userID uint) {
	if err := h.revoker.Restore(c.Request().Context(), userID); err != nil {
		logging.L().Warn("session revocation clear failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}
}

// FirebaseLogin exchanges a Firebase ID token for a local session,
// finding or creating the account by email
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return apperr.HTTP(apperr.ErrUpstream)
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		// Fall back to email, then create
		user, err = h.userRepository.GetUserByEmail(email)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return apperr.HTTP(err)
			}
			user = &models.User{
				Username:    h.uniqueHandle(name),
				Name:        name,
				Email:       email,
				Role:        models.RoleUser,
				FirebaseUID: token.UID,
			}
			if avatar, ok := token.Claims["picture"].(string); ok {
				user.AvatarPath = avatar
			}
			if err := h.userRepository.CreateUser(user); err != nil {
				return apperr.HTTP(err)
			}
			go h.mailer.SendWelcome(user.Email, user.Name)
		} else {
			user.FirebaseUID = token.UID
			if err := h.userRepository.UpdateUser(user); err != nil {
				return apperr.HTTP(err)
			}
		}
	}

	if user.Banned {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account banned")
	}

	h.clearRevocation(c, user.ID)

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "user": user})
}

// InitPasswordReset issues a single-use reset token and mails the link.
// The response never reveals whether the email exists.
func (h *AuthHandler) InitPasswordReset(c echo.Context) error {
	var req models.PasswordResetInitRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if user, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		reset := &models.PasswordReset{
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(passwordResetTTL),
		}
		if err := h.userRepository.CreatePasswordReset(reset); err != nil {
			return apperr.HTTP(err)
		}
		go h.mailer.SendPasswordReset(user.Email, reset.Token)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "If the address is registered, a reset link has been sent"})
}

// CompletePasswordReset verifies the token and rehashes the password
func (h *AuthHandler) CompletePasswordReset(c echo.Context) error {
	var req models.PasswordResetCompleteRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reset, err := h.userRepository.GetPasswordReset(req.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired reset token")
	}

	user, err := h.userRepository.GetUserByID(reset.UserID)
	if err != nil {
		return apperr.HTTP(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.HTTP(err)
	}

	user.Password = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return apperr.HTTP(err)
	}
	if err := h.userRepository.MarkPasswordResetUsed(reset.ID); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

// uniqueHandle derives a free handle for federated accounts
func (h *AuthHandler) uniqueHandle(name string) string {
	return uniqueHandle(handleFromName(name), func(candidate string) bool {
		_, err := h.userRepository.GetUserByUsername(candidate)
		return err == nil
	})
}

// handleFromName normalizes a display name into handle characters
func handleFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// uniqueHandle appends a short random suffix until the handle is free
func uniqueHandle(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for {
		candidate := base + uuid.NewString()[:8]
		if !taken(candidate) {
			return candidate
		}
	}
}

// generateJWT generates a signed session token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
