package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/media"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
	"github.com/Ougobatec/Breezy-sub000/internal/policy"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	followRepository  repositories.FollowRepository
	notifier          *notify.Notifier
	mediaStore        media.Store
	maxUploadBytes    int64
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notifier *notify.Notifier,
	mediaStore media.Store,
	maxUploadBytes int64,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		followRepository:  followRepo,
		notifier:          notifier,
		mediaStore:        mediaStore,
		maxUploadBytes:    maxUploadBytes,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/flow", h.GetFlow)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/report", h.ReportPost)
}

func pagination(c echo.Context) (skip, limit int64) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 20
	}
	return int64((page - 1) * size), int64(size)
}

// CreatePost creates a new post with optional media and tags
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.CanCreateContent(user); err != nil {
		return apperr.HTTP(err)
	}

	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" || len(content) > 2000 {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(strings.TrimPrefix(t, "#")); t != "" {
				tags = append(tags, strings.ToLower(t))
			}
		}
	}

	post := &models.Post{
		AuthorID: user.ID,
		Content:  content,
		Tags:     tags,
	}

	// Optional single media attachment
	if fileHeader, err := c.FormFile("media"); err == nil {
		if fileHeader.Size > h.maxUploadBytes {
			return echo.NewHTTPError(http.StatusBadRequest, "File too large")
		}
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/"):
			post.MediaType = models.MediaImage
		case strings.HasPrefix(contentType, "video/"):
			post.MediaType = models.MediaVideo
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "Media must be an image or video")
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
		post.MediaPath = path
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists all posts, optionally filtered by author, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, limit := pagination(c)

	var (
		posts []models.Post
		err   error
	)
	if author := c.QueryParam("author_id"); author != "" {
		authorID, parseErr := strconv.ParseUint(author, 10, 32)
		if parseErr != nil {
			return apperr.HTTP(apperr.ErrInvalidInput)
		}
		posts, err = h.postRepository.GetPostsByAuthor(c.Request().Context(), uint(authorID), skip, limit)
	} else {
		posts, err = h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	}
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrichPosts(c, posts)},
	})
}

// GetFlow lists posts from followed accounts plus the caller's own,
// newest first
func (h *PostHandler) GetFlow(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}
	skip, limit := pagination(c)

	authorIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return apperr.HTTP(err)
	}
	authorIDs = append(authorIDs, user.ID)

	posts, err := h.postRepository.GetPostsByAuthors(c.Request().Context(), authorIDs, skip, limit)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrichPosts(c, posts)},
	})
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err)
	}
	enriched := h.enrichPosts(c, []models.Post{*post})
	return c.JSON(http.StatusOK, enriched[0])
}

// DeletePost deletes a post; the author or a moderator/admin only.
// The post's comments go with it.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return apperr.HTTP(err)
	}
	if err := policy.CanDeletePost(user, post); err != nil {
		return apperr.HTTP(err)
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return apperr.HTTP(err)
	}
	// Best-effort cleanup; orphaned comments are invisible once the post
	// is gone
	go func() {
		if err := h.commentRepository.DeleteCommentsByPostID(context.Background(), postID); err != nil {
			logging.L().Warn("comment cleanup failed",
				zap.String("post_id", postID), zap.Error(err))
		}
	}()

	return c.NoContent(http.StatusNoContent)
}

// ToggleLike toggles the caller's membership in the likers set and returns
// the new state with the like count
func (h *PostHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return apperr.HTTP(err)
	}

	liked := post.LikedBy(user.ID)
	if liked {
		err = h.postRepository.RemoveLiker(c.Request().Context(), postID, user.ID)
	} else {
		err = h.postRepository.AddLiker(c.Request().Context(), postID, user.ID)
	}
	if err != nil {
		return apperr.HTTP(err)
	}

	count := int64(len(post.LikerIDs))
	if liked {
		count--
	} else {
		count++
		h.notifier.PostLiked(user, post)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"liked": !liked, "like_count": count},
	})
}

// ReportPost appends a report to the post for moderator review
func (h *PostHandler) ReportPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return apperr.HTTP(err)
	}

	var req models.ReportPostRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report := models.Report{
		ReporterID: user.ID,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := h.postRepository.AppendReport(c.Request().Context(), c.Param("id"), report); err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// EnrichedPost is a post with author info and the caller's like state
type EnrichedPost struct {
	models.Post
	Author    models.UserCompact `json:"author"`
	LikeCount int                `json:"like_count"`
	IsLiked   bool               `json:"is_liked"`
}

func (h *PostHandler) enrichPosts(c echo.Context, posts []models.Post) []EnrichedPost {
	currentUserID := getUserIDFromContext(c)
	userCache := make(map[uint]models.UserCompact)

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		author, ok := userCache[p.AuthorID]
		if !ok {
			if u, err := h.userRepository.GetUserByID(p.AuthorID); err == nil {
				author = u.ToCompact()
			}
			userCache[p.AuthorID] = author
		}
		enriched[i] = EnrichedPost{
			Post:      p,
			Author:    author,
			LikeCount: len(p.LikerIDs),
			IsLiked:   currentUserID != 0 && p.LikedBy(currentUserID),
		}
	}
	return enriched
}
