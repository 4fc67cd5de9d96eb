package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
	"github.com/Ougobatec/Breezy-sub000/internal/policy"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
	"github.com/Ougobatec/Breezy-sub000/internal/sessions"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// AdminHandler handles moderation and administration HTTP requests
type AdminHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	notifier          *notify.Notifier
	revoker           *sessions.Revoker
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	notifier *notify.Notifier,
	revoker *sessions.Revoker,
) *AdminHandler {
	return &AdminHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		notifier:          notifier,
		revoker:           revoker,
	}
}

// RegisterAdminRoutes registers moderation and administration routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/admin/users", h.ListUsers)
	g.PUT("/admin/users/:id/role", h.ChangeRole)
	g.PUT("/admin/users/:id/suspend", h.Suspend)
	g.PUT("/admin/users/:id/unsuspend", h.Unsuspend)
	g.PUT("/admin/users/:id/ban", h.Ban)
	g.PUT("/admin/users/:id/unban", h.Unban)
	g.GET("/admin/reports", h.ListReportedPosts)
	g.POST("/admin/reports/:post_id/resolve", h.ResolveReport)
	g.GET("/admin/stats", h.GetStats)
}

// ListUsers lists every account; admin only
func (h *AdminHandler) ListUsers(c echo.Context) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.RequireAdmin(caller); err != nil {
		return apperr.HTTP(err)
	}

	users, err := h.userRepository.GetUsers()
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// ChangeRole sets an account's role; admin only, no self-demotion
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	target, err := h.targetUser(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	var req models.ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := policy.CanChangeRole(caller, target, req.Role); err != nil {
		return apperr.HTTP(err)
	}

	target.Role = req.Role
	if err := h.userRepository.UpdateUser(target); err != nil {
		return apperr.HTTP(err)
	}

	h.notifier.RoleChanged(caller.ID, target.ID, req.Role)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user": target}})
}

// Suspend flags the target account as suspended
func (h *AdminHandler) Suspend(c echo.Context) error {
	return h.moderate(c, "suspended", func(u *models.User) { u.Suspended = true })
}

// Unsuspend clears the suspended flag
func (h *AdminHandler) Unsuspend(c echo.Context) error {
	return h.moderate(c, "unsuspended", func(u *models.User) { u.Suspended = false })
}

// Ban flags the target account as banned and revokes its sessions
func (h *AdminHandler) Ban(c echo.Context) error {
	return h.moderate(c, "banned", func(u *models.User) { u.Banned = true })
}

// Unban clears the banned flag and restores the ability to sign in
func (h *AdminHandler) Unban(c echo.Context) error {
	return h.moderate(c, "unbanned", func(u *models.User) { u.Banned = false })
}

// moderate applies one moderation state transition. Repeated application is
// a no-op-safe update. The state change is authoritative; the notification
// and session revocation are best-effort.
func (h *AdminHandler) moderate(c echo.Context, action string, apply func(*models.User)) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	target, err := h.targetUser(c)
	if err != nil {
		return apperr.HTTP(err)
	}

	if err := policy.CanModerate(caller, target); err != nil {
		return apperr.HTTP(err)
	}

	var req models.ModerationRequest
	c.Bind(&req) // reason is optional, body may be empty

	apply(target)
	if err := h.userRepository.UpdateUser(target); err != nil {
		return apperr.HTTP(err)
	}

	var revokeErr error
	switch action {
	case "banned":
		revokeErr = h.revoker.Revoke(c.Request().Context(), target.ID)
	case "unbanned":
		revokeErr = h.revoker.Restore(c.Request().Context(), target.ID)
	}
	if revokeErr != nil {
		logging.L().Warn("session revocation update failed",
			zap.String("action", action),
			zap.Uint("user_id", target.ID),
			zap.Error(revokeErr))
	}

	h.notifier.Moderation(caller.ID, target.ID, action, req.Reason)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user": target}})
}

// ListReportedPosts lists posts with pending reports; moderator or admin
func (h *AdminHandler) ListReportedPosts(c echo.Context) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.RequireModerator(caller); err != nil {
		return apperr.HTTP(err)
	}

	posts, err := h.postRepository.GetReportedPosts(c.Request().Context(), 100)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// ResolveReport dismisses a post's reports or deletes the post and
// notifies its author
func (h *AdminHandler) ResolveReport(c echo.Context) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.RequireModerator(caller); err != nil {
		return apperr.HTTP(err)
	}

	var req models.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	postID := c.Param("post_id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return apperr.HTTP(err)
	}

	switch req.Action {
	case "dismiss":
		if err := h.postRepository.ClearReports(c.Request().Context(), postID); err != nil {
			return apperr.HTTP(err)
		}
	case "delete":
		if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
			return apperr.HTTP(err)
		}
		if err := h.commentRepository.DeleteCommentsByPostID(c.Request().Context(), postID); err != nil {
			logging.L().Warn("comment cleanup failed",
				zap.String("post_id", postID), zap.Error(err))
		}
		h.notifier.ContentRemoved(caller.ID, post.AuthorID, postID)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"action": req.Action}})
}

// GetStats returns aggregate counts for the admin dashboard; admin only
func (h *AdminHandler) GetStats(c echo.Context) error {
	caller, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.RequireAdmin(caller); err != nil {
		return apperr.HTTP(err)
	}

	ctx := c.Request().Context()
	users, _ := h.userRepository.CountUsers()
	suspended, _ := h.userRepository.CountSuspended()
	banned, _ := h.userRepository.CountBanned()
	posts, _ := h.postRepository.CountPosts(ctx)
	comments, _ := h.commentRepository.CountComments(ctx)
	reported, _ := h.postRepository.CountReportedPosts(ctx)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"users":          users,
			"suspended":      suspended,
			"banned":         banned,
			"posts":          posts,
			"comments":       comments,
			"reported_posts": reported,
		},
	})
}

func (h *AdminHandler) targetUser(c echo.Context) (*models.User, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, apperr.ErrInvalidInput
	}
	return h.userRepository.GetUserByID(uint(id))
}
