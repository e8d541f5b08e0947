package handlers

import (
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TweetHandler handles posting tweets and reading the feed
type TweetHandler struct {
	store repositories.TxRunner
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(store repositories.TxRunner) *TweetHandler {
	return &TweetHandler{store: store}
}

// RegisterTweetRoutes registers tweet-related routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/tweets", h.GetFeed, m...)
	g.POST("/tweets", h.CreateTweet, m...)
}

// CreateTweet posts a tweet authored by the caller
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet := &models.Tweet{
		Text:      req.Text,
		TweetedBy: currentUserID,
	}

	err := h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		return r.Tweets.CreateTweet(tweet)
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tweet": tweet})
}

// GetFeed returns tweets by every user the caller follows, newest first
func (h *TweetHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var tweets []models.Tweet
	err := h.store.WithTx(c.Request().Context(), func(r *repositories.Repositories) error {
		var err error
		tweets, err = r.Tweets.GetFeed(currentUserID)
		return err
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tweets": tweets})
}
