package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	store repositories.TxRunner
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(store repositories.TxRunner) *UserHandler {
	return &UserHandler{store: store}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/users/:userId", h.GetUser, m...)
}

// GetUser returns the public view of any user by id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserIDParam(c)
	if err != nil {
		return err
	}

	var user *models.User
	err = h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		var err error
		user, err = r.Users.GetUserByID(id)
		return err
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user.ToPublic()})
}
