package routes

import (
	"gensuite-api/internal/adapters/http/handlers"
	"gensuite-api/internal/adapters/http/middleware"
	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	ipRepo := repositories.NewIPRecordRepository(db)
	eventRepo := repositories.NewSecurityEventRepository(db)
	uaRepo := repositories.NewUserAgentTemplateRepository(db)

	// Initialize services
	securityService := services.NewSecurityService(eventRepo, cfg.External.SecurityWebhookURL)
	sessionService := services.NewSessionService(accountRepo, cfg)
	authService := services.NewAuthService(accountRepo, ipRepo, securityService, cfg)
	adminService := services.NewAdminService(accountRepo, securityService, nil, cfg)
	textgenService := services.NewTextGenService(
		cfg.External.TextGenBaseURL,
		cfg.External.TextGenAPIKey,
		cfg.External.TextGenModel,
	)
	generatorService := services.NewGeneratorService(uaRepo, textgenService)
	geocodeService := services.NewGeocodeService(cfg.External.GeocodeBaseURL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, sessionService, cfg)
	adminHandler := handlers.NewAdminHandler(adminService, ipRepo, eventRepo)
	generatorHandler := handlers.NewGeneratorHandler(generatorService, geocodeService)
	planHandler := handlers.NewPlanHandler(planRepo)

	// Shared access gates
	userGate := middleware.UserGate(sessionService, securityService)
	adminGate := middleware.AdminGate(sessionService, securityService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + session-bound)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, userGate)

	// Plan routes (public, cacheable)
	planRoutes := apiV1.Group("/plans", middleware.PlanCache())
	setupPlanRoutes(planRoutes, planHandler)

	// Generator tool routes (authenticated users, live account re-check)
	toolRoutes := apiV1.Group("/tools", userGate)
	setupToolRoutes(toolRoutes, generatorHandler)

	// Two back-office surfaces mount the same handler behind the same gate,
	// so operator auth cannot drift between them.
	setupBackOfficeRoutes(apiV1.Group("/admin"), adminHandler, adminGate)
	setupBackOfficeRoutes(apiV1.Group("/backoffice"), adminHandler, adminGate)
}

// setupAuthRoutes configures end-user authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, userGate fiber.Handler) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)
	router.Get("/session", handler.Session)

	// Protected routes
	router.Get("/me", userGate, handler.Me)
}

// setupPlanRoutes configures public pricing plan routes
func setupPlanRoutes(router fiber.Router, handler *handlers.PlanHandler) {
	router.Get("/", handler.List)
	router.Get("/:code", handler.Get)
}

// setupToolRoutes configures the generator tool routes
func setupToolRoutes(router fiber.Router, handler *handlers.GeneratorHandler) {
	router.Get("/user-agents", handler.UserAgents)
	router.Get("/address", handler.Address)
	router.Post("/email-name", handler.EmailName)
}

// setupBackOfficeRoutes configures one back-office surface
func setupBackOfficeRoutes(router fiber.Router, handler *handlers.AdminHandler, adminGate fiber.Handler) {
	// Public login, strictly rate limited
	router.Post("/login", middleware.StrictRateLimiter(), handler.Login)

	// Everything else requires an admin token
	protected := router.Group("", adminGate, middleware.NoCacheHeaders())
	protected.Get("/verify", handler.Verify)
	protected.Get("/alerts", handler.ListAlerts)
	protected.Get("/security-events", handler.ListSecurityEvents)

	protected.Get("/users", handler.ListUsers)
	protected.Put("/users/:id/approval", handler.UpdateApproval)
	protected.Put("/users/:id/status", handler.UpdateStatus)
	protected.Get("/users/:id/ips", handler.ListIPHistory)
}
