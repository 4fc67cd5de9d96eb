package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notify.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Subscribe)
	g.DELETE("/users/:id/follow", h.Unsubscribe)
	g.DELETE("/followers/:id", h.RemoveFollower)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

func targetParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.ErrInvalidInput
	}
	return uint(id), nil
}

// Subscribe creates a follow edge from the caller to the target
func (h *FollowHandler) Subscribe(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	targetID, err := targetParam(c)
	if err != nil {
		return apperr.HTTP(err)
	}
	if user.ID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}
	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return apperr.HTTP(err)
	}

	follow := &models.Follow{
		SubscriberID: user.ID,
		TargetID:     targetID,
	}
	if err := h.followRepository.CreateEdge(follow); err != nil {
		return apperr.HTTP(err)
	}

	h.notifier.Followed(user, targetID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// Unsubscribe removes the caller's edge to the target
func (h *FollowHandler) Unsubscribe(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	targetID, err := targetParam(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	if err := h.followRepository.DeleteEdge(user.ID, targetID); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// RemoveFollower removes an inbound edge, initiated by the followed account
func (h *FollowHandler) RemoveFollower(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	followerID, err := targetParam(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	if err := h.followRepository.DeleteEdge(followerID, user.ID); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetFollowers lists the accounts following the given account
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := targetParam(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	users, err := h.followRepository.GetFollowers(targetID)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": compactUsers(users)}})
}

// GetFollowing lists the accounts the given account follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := targetParam(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	users, err := h.followRepository.GetFollowing(targetID)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": compactUsers(users)}})
}

func compactUsers(users []models.User) []models.UserCompact {
	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return compact
}
