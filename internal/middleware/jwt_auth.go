package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyClaims holds the verified *models.JwtCustomClaims.
	ContextKeyClaims = "user"
	// ContextKeyUserID holds the authenticated user's id as uint.
	ContextKeyUserID = "userID"
)

// TokenVerifier is satisfied by *auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*models.JwtCustomClaims, error)
}

// JWTAuthMiddleware checks for a valid bearer token and stores its claims on the context.
// Every failure gets the same 401 so callers learn nothing about why.
func JWTAuthMiddleware(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(nil)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				return unauthorized(nil)
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return unauthorized(err)
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyUserID, claims.UserID)

			return next(c)
		}
	}
}

func unauthorized(cause error) error {
	he := echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing bearer token")
	if cause != nil {
		he.SetInternal(cause)
	}
	return he
}
