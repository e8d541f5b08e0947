package router

import (
	"log"

	"github.com/anonto42/tweeter/backend/internal/auth"
	"github.com/anonto42/tweeter/backend/internal/handlers"
	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/pkg/config"
	"github.com/anonto42/tweeter/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// New builds the echo instance with global middleware and every route.
func New(cfg *config.Config, db *gorm.DB) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler

	config.SetupMiddleware(e)
	log.Println("Global middleware configured.")

	if err := SetupRoutes(e, cfg, db); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	store := repositories.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Health check - always accessible
	healthHandler := handlers.NewHealthHandler(sqlDB)
	e.GET("/health", healthHandler.HealthCheck)

	// --- Unprotected routes for authentication ---
	root := e.Group("")
	authHandler := handlers.NewAuthHandler(store, tokens, cfg.BcryptCost)
	authHandler.RegisterAuthRoutes(root)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	// Attached per route: a group-level Use on the empty prefix would answer
	// unknown paths with 401 instead of 404.
	requireAuth := middleware.JWTAuthMiddleware(tokens)
	log.Println("JWT authentication middleware applied to protected routes.")

	userHandler := handlers.NewUserHandler(store)
	userHandler.RegisterUserRoutes(root, requireAuth)
	log.Println("User routes configured.")

	followerHandler := handlers.NewFollowerHandler(store)
	followerHandler.RegisterFollowerRoutes(root, requireAuth)
	log.Println("Follower routes configured.")

	tweetHandler := handlers.NewTweetHandler(store)
	tweetHandler.RegisterTweetRoutes(root, requireAuth)
	log.Println("Tweet routes configured.")

	log.Println("All routes configured.")
	return nil
}
