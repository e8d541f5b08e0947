package config

import (
	"fmt"
	"log"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the relational store connection shared by every request.
type DB struct {
	Gorm *gorm.DB
}

// InitDB opens the configured store, verifies the connection and migrates the schema.
func InitDB(cfg *Config) (*DB, error) {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db.Gorm); err != nil {
		db.CloseDB()
		return nil, err
	}
	log.Println("Database auto-migrations completed for all models.")
	return db, nil
}

// OpenDatabase opens and pings the store without touching the schema.
func OpenDatabase(cfg *Config) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLiteDSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := logger.Silent
	if cfg.DBDebug {
		logLevel = logger.Info
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	// Ping the database to verify connection
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.DBDriver, err)
	}

	log.Printf("Successfully connected to %s!", cfg.DBDriver)
	return &DB{Gorm: gormDB}, nil
}

// Migrate creates or updates the users, tweets and followers tables
// together with their indexes and foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db == nil || db.Gorm == nil {
		return
	}
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		log.Printf("Error getting SQL DB from GORM: %v\n", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v\n", err)
		return
	}
	log.Println("Database connection closed.")
}
