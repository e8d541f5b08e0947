package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// InternalErrorMessage is the body of every 500. The cause is only logged.
const InternalErrorMessage = "Error 😒"

// ErrorHandler renders every error as {"error": message}. Client errors keep
// their message, server errors are logged and collapsed to InternalErrorMessage.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := InternalErrorMessage
	cause := err

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			message = fmt.Sprint(he.Message)
		}
		if he.Internal != nil {
			cause = he.Internal
		}
	}

	if code >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, cause)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": message})
	}
	if err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}

// storeError maps an error returned from a transaction to an HTTP error.
// HTTP errors raised inside the transaction pass through unchanged.
func storeError(err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, "Already exists")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}
