package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowerHandler handles follow-edge HTTP requests
type FollowerHandler struct {
	store repositories.TxRunner
}

// NewFollowerHandler creates a new FollowerHandler
func NewFollowerHandler(store repositories.TxRunner) *FollowerHandler {
	return &FollowerHandler{store: store}
}

// RegisterFollowerRoutes registers follow-related routes
func (h *FollowerHandler) RegisterFollowerRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/users/:userId/followers", h.ListFollowers, m...)
	g.POST("/users/:userId/followers", h.FollowUser, m...)
}

// ListFollowers lists the edges the caller created. The :userId segment is
// not consulted; the list is always the authenticated caller's.
func (h *FollowerHandler) ListFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var followers []models.Follower
	err := h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		var err error
		followers, err = r.Followers.GetFollowersBySubscriber(currentUserID)
		return err
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"followers": followers})
}

// FollowUser makes the caller follow :userId. Following twice adds a second edge.
func (h *FollowerHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	follower := &models.Follower{
		UserID:     targetID,
		FollowerID: currentUserID,
	}

	err = h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		if _, err := r.Users.GetUserByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			return err
		}
		return r.Followers.CreateFollower(follower)
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"follower": follower})
}
