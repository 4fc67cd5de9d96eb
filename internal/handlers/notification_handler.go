package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}

// GetNotifications returns the caller's notifications, newest first,
// optionally filtered by type and read state, capped at 50
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	filter := repositories.NotificationFilter{
		Type:       c.QueryParam("type"),
		UnreadOnly: c.QueryParam("unread") == "true",
	}
	if filter.Type != "" && !validNotificationType(filter.Type) {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	notifications, err := h.notificationRepository.GetByRecipientID(currentUserID, filter)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"notifications": h.enrichNotifications(notifications)},
	})
}

// GetUnreadCount returns per-type unread counts plus a total
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	counts, err := h.notificationRepository.UnreadCountsByType(currentUserID)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": unreadCountsResponse(counts)})
}

// MarkAsRead marks one notification as read; missing or foreign ids are
// ignored
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	if err := h.notificationRepository.MarkAsRead(uint(notifID), currentUserID); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification as read, optionally scoped
// to one type
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	typeFilter := c.QueryParam("type")
	if typeFilter != "" && !validNotificationType(typeFilter) {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	if err := h.notificationRepository.MarkAllAsRead(currentUserID, typeFilter); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteNotification removes one notification from the caller's view
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	if err := h.notificationRepository.DeleteNotification(uint(notifID), currentUserID); err != nil {
		return apperr.HTTP(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func validNotificationType(t string) bool {
	for _, known := range models.NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// unreadCountsResponse fills in zeroes for types with no unread
// notifications and computes the total
func unreadCountsResponse(counts map[string]int64) map[string]int64 {
	resp := make(map[string]int64, len(models.NotificationTypes)+1)
	var total int64
	for _, t := range models.NotificationTypes {
		resp[t] = counts[t]
		total += counts[t]
	}
	resp["total"] = total
	return resp
}
