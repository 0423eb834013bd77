package routes

import (
	"remote-pantry/internal/api/handlers"
	"remote-pantry/internal/middleware"
	"remote-pantry/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	PantryHandler   handlers.PantryHandler
	ShoppingHandler handlers.ShoppingHandler
	LocationHandler handlers.LocationHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Pantry()
	c.Shopping()
	c.Locations()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateSettings)
	}
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	pantry.Get("", c.PantryHandler.GetPantry)
	pantry.Post("", c.PantryHandler.AddFoodstuff)
	pantry.Post("/update", c.PantryHandler.UpdatePantry)
	pantry.Get("/expiring", c.PantryHandler.GetExpiringItems)
	pantry.Get("/history", c.PantryHandler.GetHistory)
	pantry.Post("/history/update", c.PantryHandler.UpdateHistory)
	pantry.Get("/:id", c.PantryHandler.GetFoodstuffDetails)
	pantry.Patch("/:id", c.PantryHandler.UpdateFoodstuff)
}

func (c *Config) Shopping() {
	shop := c.App.Group("/api/v1/shop", c.Middleware.AuthMiddleware(c.JWTService))

	shop.Get("", c.ShoppingHandler.GetShoppingList)
	shop.Post("/restock", c.ShoppingHandler.Restock)
}

func (c *Config) Locations() {
	locations := c.App.Group("/api/v1/locations", c.Middleware.AuthMiddleware(c.JWTService))

	locations.Get("", c.LocationHandler.GetLocations)
	locations.Post("", c.LocationHandler.AddLocation)
	locations.Patch("/:id", c.LocationHandler.RenameLocation)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
