package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"addressbook-backend/internal/config"
	"addressbook-backend/internal/infrastructure/database"
	"addressbook-backend/internal/migrate"
)

var (
	down  bool
	steps int
)

func main() {
	flag.BoolVar(&down, "down", false, "roll back the most recent migration")
	flag.IntVar(&steps, "steps", 0, "apply n migrations up, or down when negative")
	flag.Parse()

	_ = godotenv.Load()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	switch {
	case down:
		err = migrate.Rollback(ctx, db.Pool)
	case steps != 0:
		err = migrate.Steps(ctx, db.Pool, steps)
	default:
		err = migrate.Apply(ctx, db.Pool)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Msg("migrations applied")
}
