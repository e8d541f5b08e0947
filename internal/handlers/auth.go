package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/auth"
	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")

// AuthHandler handles signup and signin
type AuthHandler struct {
	store      repositories.TxRunner
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(store repositories.TxRunner, tokens *auth.TokenManager, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// RegisterAuthRoutes registers the unauthenticated routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
}

// Signup hashes the password and inserts the user. Duplicate handles or
// emails are caught by the store's unique indexes, not checked up front.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	user := &models.User{
		Handle:   req.Handle,
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	err = h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		return r.Users.CreateUser(user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return echo.NewHTTPError(http.StatusConflict, "User with this handle or email already registered")
	}
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, user.ToPublic())
}

// SignIn verifies email and password and issues a bearer token. An unknown
// email and a wrong password get the same 401.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var user *models.User
	err := h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		var err error
		user, err = r.Users.GetUserByEmail(req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !auth.CheckPassword(user.Password, req.Password) {
			return errInvalidCredentials
		}
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, models.SigninResponse{JWT: token, UserID: user.ID})
}
