package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
	"github.com/Ougobatec/Breezy-sub000/internal/policy"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	notifier          *notify.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier *notify.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment on a post; with a parent_id it becomes a
// reply appended to the parent's reply list
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.CanCreateContent(user); err != nil {
		return apperr.HTTP(err)
	}

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Content:  req.Content,
	}

	var parentAuthorID uint
	if req.ParentID != "" {
		parent, err := h.commentRepository.GetCommentByID(c.Request().Context(), req.ParentID)
		if err != nil {
			return apperr.HTTP(err)
		}
		if parent.PostID != post.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to another post")
		}
		comment.ParentID = &parent.ID
		parentAuthorID = parent.AuthorID
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return apperr.HTTP(err)
	}
	if comment.ParentID != nil {
		// Parent's reply list is a back-reference; a failure here leaves
		// best-effort consistency, the comment itself is authoritative
		if err := h.commentRepository.PushReply(c.Request().Context(), *comment.ParentID, comment.ID); err != nil {
			logging.L().Warn("reply back-reference update failed",
				zap.String("parent_id", comment.ParentID.Hex()),
				zap.String("comment_id", comment.ID.Hex()),
				zap.Error(err))
		}
	}

	h.notifier.CommentCreated(user, post, parentAuthorID)

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments of a post, oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return apperr.HTTP(err)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, comments)
}

// DeleteComment deletes a comment and its entire reply subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.CanDeleteComment(user, comment); err != nil {
		return apperr.HTTP(err)
	}

	// Collect the subtree over the post's comments, then bulk delete
	all, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), comment.PostID.Hex())
	if err != nil {
		return apperr.HTTP(err)
	}
	ids := repositories.CollectThread(comment.ID, all)

	deleted, err := h.commentRepository.DeleteCommentsByIDs(c.Request().Context(), ids)
	if err != nil {
		return apperr.HTTP(err)
	}

	if comment.ParentID != nil {
		if err := h.commentRepository.PullReply(c.Request().Context(), *comment.ParentID, comment.ID); err != nil {
			logging.L().Warn("reply back-reference removal failed",
				zap.String("parent_id", comment.ParentID.Hex()),
				zap.String("comment_id", comment.ID.Hex()),
				zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"deleted": deleted},
	})
}
