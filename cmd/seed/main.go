package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"addressbook-backend/internal/config"
	"addressbook-backend/internal/infrastructure/database"
	"addressbook-backend/internal/seed"
)

func main() {
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

	if err := seed.Apply(ctx, db.Pool); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	log.Info().Msg("database seeded")
}
