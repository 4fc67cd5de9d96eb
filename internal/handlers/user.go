package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/media"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// UserHandler handles HTTP requests related to accounts
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	mediaStore       media.Store
	maxUploadBytes   int64
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, mediaStore media.Store, maxUploadBytes int64) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		mediaStore:       mediaStore,
		maxUploadBytes:   maxUploadBytes,
	}
}

// RegisterProfileRoutes registers account profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/profile/avatar", h.UploadAvatar)
	g.GET("/users/:id", h.GetUser)
}

// GetUser retrieves a public profile by ID, with follow counts
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return apperr.HTTP(err)
	}

	followers, _ := h.followRepository.GetFollowersCount(user.ID)
	following, _ := h.followRepository.GetFollowingCount(user.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user,
			"followers_count": followers,
			"following_count": following,
		},
	})
}

// GetProfile retrieves the authenticated account's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated account's display name and bio
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, user)
}

// UploadAvatar stores a new avatar image and persists its path
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if fileHeader.Size > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "File too large")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Avatar must be an image")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperr.HTTP(err)
	}
	defer src.Close()

	path, err := h.mediaStore.Save(c.Request().Context(), fileHeader.Filename, contentType, src)
	if err != nil {
		return apperr.HTTP(apperr.ErrUpstream)
	}

	user.AvatarPath = path
	if err := h.userRepository.UpdateUser(user); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, user)
}
