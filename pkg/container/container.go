package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"addressbook-backend/internal/config"
	"addressbook-backend/internal/infrastructure/database"

	"addressbook-backend/internal/domains/address"
	addressHandler "addressbook-backend/internal/domains/address/handler"
	addressRepo "addressbook-backend/internal/domains/address/repository"
	addressService "addressbook-backend/internal/domains/address/service"
	menuHandler "addressbook-backend/internal/domains/menu/handler"
)

// Container holds every dependency of the application, wired once at
// startup in layer order: config, infrastructure, repository, service,
// handler. Nothing is ambient; everything flows from here.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	AddressRepo    address.Repository
	AddressService addressService.ServiceInterface

	AddressHandler *addressHandler.AddressHandler
	MenuHandler    *menuHandler.MenuHandler
}

// NewContainer builds the full dependency graph. A failure at any layer
// aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	c.AddressRepo = addressRepo.NewPostgresRepository(db.Pool)
	c.AddressService = addressService.NewAddressService(c.AddressRepo)
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.MenuHandler = menuHandler.NewMenuHandler()

	log.Info().Str("environment", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

// Cleanup releases held resources; called on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
