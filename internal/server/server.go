// Package server assembles the Fiber application from its dependencies.
package server

import (
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/handlers"
	"littlelemon/internal/middleware"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps holds everything the application needs at construction time.
type Deps struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
	RateLimit config.RateLimitConfig
	// Publisher receives order events. Nil disables publishing.
	Publisher services.EventPublisher
	// LimiterStorage backs the catalog throttle. Nil keeps counters in memory.
	LimiterStorage fiber.Storage
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// App is the assembled application.
type App struct {
	*fiber.App
	Auth *services.AuthService
}

// New wires repositories, services and handlers and registers every route.
func New(deps Deps) *App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	groupRepo := repositories.NewGORMGroupRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	menuItemRepo := repositories.NewGORMMenuItemRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL)
	categoryService := services.NewCategoryService(categoryRepo)
	menuItemService := services.NewMenuItemService(menuItemRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, menuItemRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, deps.Publisher)
	groupService := services.NewGroupService(groupRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	menuItemHandler := handlers.NewMenuItemHandler(menuItemService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	groupHandler := handlers.NewGroupHandler(groupService)

	app := fiber.New(fiber.Config{
		AppName:      "Little Lemon API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Token Routes ---
	authHandler.RegisterTokenRoutes(app.Group("/token"))

	// --- API Routes ---
	api := app.Group("/api", middleware.Authenticate(authService))
	throttle := middleware.Throttle(deps.RateLimit, deps.LimiterStorage)

	authHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api, throttle...)
	menuItemHandler.RegisterRoutes(api, throttle...)
	cartHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	groupHandler.RegisterRoutes(api)

	return &App{App: app, Auth: authService}
}
