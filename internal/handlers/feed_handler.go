package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/repositories"
)

// FeedHandler assembles the home feed from followed users' posts
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo, followRepository: followRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns posts authored by users the authenticated user follows,
// newest first. The author's own posts are included.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingIDs = append(followingIDs, uid)

	skip, limit := pagination(c)
	posts, err := h.postRepository.GetFeed(c.Request().Context(), followingIDs, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}
