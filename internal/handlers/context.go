package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the id stored by JWTAuthMiddleware, or 0.
func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(middleware.ContextKeyUserID).(uint)
	return id
}

func parseUserIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}
