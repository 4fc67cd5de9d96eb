package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
)

const (
	minQueryLength   = 2
	maxSearchResults = 50
)

// SearchHandler handles search over accounts and posts
type SearchHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *SearchHandler {
	return &SearchHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterSearchRoutes registers the search route
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search matches accounts by handle/display name and posts by body. A
// hashtag-prefixed query searches post tags instead.
func (h *SearchHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if err := validateQuery(query); err != nil {
		return apperr.HTTP(err)
	}

	searchType := c.QueryParam("type")
	if searchType == "" {
		searchType = "all"
	}

	result := echo.Map{}

	if searchType == "users" || searchType == "all" {
		users, err := h.userRepository.SearchUsers(query, maxSearchResults)
		if err != nil {
			return apperr.HTTP(err)
		}
		compact := make([]models.UserCompact, len(users))
		for i, u := range users {
			compact[i] = u.ToCompact()
		}
		result["users"] = compact
	}

	if searchType == "posts" || searchType == "all" {
		var (
			posts []models.Post
			err   error
		)
		if tag, ok := hashtagQuery(query); ok {
			posts, err = h.postRepository.SearchPostsByTag(c.Request().Context(), tag, maxSearchResults)
		} else {
			posts, err = h.postRepository.SearchPosts(c.Request().Context(), query, maxSearchResults)
		}
		if err != nil {
			return apperr.HTTP(err)
		}
		result["posts"] = posts
	}

	if len(result) == 0 {
		return apperr.HTTP(apperr.ErrInvalidInput)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// validateQuery rejects queries shorter than the minimum length
func validateQuery(query string) error {
	if utf8.RuneCountInString(query) < minQueryLength {
		return apperr.ErrInvalidInput
	}
	return nil
}

// hashtagQuery reports whether the query is a hashtag search and returns
// the bare tag
func hashtagQuery(query string) (string, bool) {
	if strings.HasPrefix(query, "#") && len(query) > 1 {
		return strings.ToLower(query[1:]), true
	}
	return "", false
}
