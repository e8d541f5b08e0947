package main

import (
	"log"
	"os"

	"github.com/anonto42/tweeter/backend/pkg/config"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

func main() {
	var opts struct {
		EnvFile string `short:"e" long:"env-file" description:"Path to a .env file to load before reading the environment"`
		Verbose bool   `short:"v" long:"verbose" description:"Log every SQL statement the migration runs"`
	}
	if _, err := flags.Parse(&opts); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	var cfg *config.Config
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			log.Fatalf("Failed to load %s: %v", opts.EnvFile, err)
		}
		cfg = config.FromEnv()
	} else {
		cfg = config.Load()
	}
	if opts.Verbose {
		cfg.DBDebug = true
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.CloseDB()

	if err := config.Migrate(db.Gorm); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration completed for users, tweets and followers.")
}
