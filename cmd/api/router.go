package main

import (
	"github.com/gin-gonic/gin"

	"addressbook-backend/internal/shared/middleware"
	"addressbook-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		// Public: the menu listing requires no key.
		api.GET("/menu", c.MenuHandler.GetMenu)

		setupAddressRoutes(api, c)
	}

	return router
}

// setupAddressRoutes mounts the protected address collection. The fixed
// lookup paths must be registered alongside :id; gin resolves them by
// segment.
func setupAddressRoutes(api *gin.RouterGroup, c *container.Container) {
	addresses := api.Group("/addresses")
	addresses.Use(middleware.APIKey(c.Config.Auth.APIKey))
	{
		addresses.POST("", c.AddressHandler.CreateAddress)
		addresses.GET("", c.AddressHandler.ListAddresses)
		addresses.GET("/phone/:phone", c.AddressHandler.GetByPhone)
		addresses.GET("/customer_number/:customer_number", c.AddressHandler.GetByCustomerNumber)
		addresses.GET("/:id", c.AddressHandler.GetAddressByID)
		addresses.PUT("/:id", c.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", c.AddressHandler.DeleteAddress)
	}
}
