package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stitchfold/backend/internal/cache"
	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	followerCache          *cache.FollowerCache
	logger                 *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, followerCache *cache.FollowerCache, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		followerCache:          followerCache,
		logger:                 logger,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow/status", h.FollowStatus)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow flips the follow relationship from the authenticated user
// to the target: not following becomes following and vice versa. The
// response reports the resulting state.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserUID := currentUID(c)
	if currentUserUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetUID := c.Param("id")

	following, err := h.followRepository.ToggleFollow(c.Request().Context(), currentUserUID, targetUID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSelfFollow), errors.Is(err, repositories.ErrEmptyUserID):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "Follow state changed concurrently, please retry")
		}
		h.logger.Error("follow toggle failed",
			zap.String("follower", currentUserUID),
			zap.String("following", targetUID),
			zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Could not update follow state, please retry")
	}

	if h.followerCache != nil {
		h.followerCache.Invalidate(c.Request().Context(), currentUserUID, targetUID)
	}

	if following && h.notificationRepository != nil {
		actor, err := h.userRepository.GetUserByUID(currentUserUID)
		if err == nil {
			notif := &models.Notification{
				Type:         models.NotificationTypeFollow,
				ActorUID:     currentUserUID,
				RecipientUID: targetUID,
				Message:      actor.Username + " started following you",
			}
			if err := h.notificationRepository.CreateNotification(notif); err != nil {
				h.logger.Warn("follow notification not created", zap.Error(err))
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": following}})
}

// FollowStatus reports whether the authenticated user follows the target.
// A failed lookup renders as false so the profile page never blocks, but
// the error is logged and the raw tri-state is included for callers that
// care.
func (h *FollowHandler) FollowStatus(c echo.Context) error {
	currentUserUID := currentUID(c)
	targetUID := c.Param("id")

	state, err := h.followRepository.FollowStatus(c.Request().Context(), currentUserUID, targetUID)
	if err != nil {
		h.logger.Warn("follow status lookup failed",
			zap.String("follower", currentUserUID),
			zap.String("following", targetUID),
			zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"following": state.Bool(),
			"state":     state.String(),
		},
	})
}

// GetFollowers returns the target user's followers, served from the cache
// when a fresh snapshot exists.
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetUID := c.Param("id")

	if h.followerCache != nil {
		if users, ok := h.followerCache.GetFollowers(c.Request().Context(), targetUID); ok {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
		}
	}

	users, err := h.followRepository.GetFollowers(targetUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if h.followerCache != nil {
		h.followerCache.SetFollowers(c.Request().Context(), targetUID, users)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}

// GetFollowing returns the users the target follows.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetUID := c.Param("id")

	if h.followerCache != nil {
		if users, ok := h.followerCache.GetFollowing(c.Request().Context(), targetUID); ok {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
		}
	}

	users, err := h.followRepository.GetFollowing(targetUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if h.followerCache != nil {
		h.followerCache.SetFollowing(c.Request().Context(), targetUID, users)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}
