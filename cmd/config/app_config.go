package config

import (
	"os"
	"time"

	"remote-pantry/internal/api/handlers"
	"remote-pantry/internal/api/routes"
	"remote-pantry/internal/middleware"
	"remote-pantry/internal/utils"
	"remote-pantry/internal/utils/mailing"
	"remote-pantry/pkg/jwt"
	"remote-pantry/pkg/location"
	"remote-pantry/pkg/pantry"
	"remote-pantry/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	locationRepository := location.NewLocationRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	locationService := location.NewLocationService(locationRepository)
	userService := user.NewUserService(userRepository, jwtService, locationService, mailing.NewSMTPSender())
	pantryService := pantry.NewPantryService(pantryRepository, locationRepository, pantry.NewSystemClock())

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, userService, validator)
	shoppingHandler := handlers.NewShoppingHandler(pantryService, userService, validator)
	locationHandler := handlers.NewLocationHandler(locationService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		PantryHandler:   pantryHandler,
		ShoppingHandler: shoppingHandler,
		LocationHandler: locationHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
