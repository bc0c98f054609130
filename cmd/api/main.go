package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"ceasefire/internal/config"
	"ceasefire/internal/handler"
	"ceasefire/internal/middleware"
	"ceasefire/internal/repository"
	"ceasefire/internal/service"
	"ceasefire/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.Me)
	users.Put("/me", h.User.UpdateMe)

	fights := protected.Group("/fights")
	fights.Post("/", h.Fight.Create)
	fights.Get("/", h.Fight.List)
	fights.Get("/:fightId", h.Fight.Get)
	fights.Post("/:fightId/accept", h.Fight.Accept)
	fights.Post("/:fightId/mediate", h.Fight.TakeMediation)
	fights.Post("/:fightId/resolve", h.Fight.Resolve)
	fights.Get("/:fightId/activities", h.Activity.List)
	fights.Post("/:fightId/activities", h.Activity.AddComment)
	fights.Post("/:fightId/moderation", h.Activity.AddModeration)
	fights.Get("/:fightId/spectators", h.Fight.SpectatorCount)
	fights.Post("/:fightId/spectators", h.Fight.SpectatorHeartbeat)
	fights.Get("/:fightId/mediator-requests", h.Mediation.ListByFight)

	mediatorRequests := protected.Group("/mediator-requests")
	mediatorRequests.Post("/", h.Mediation.Create)
	mediatorRequests.Get("/", h.Mediation.List)
	mediatorRequests.Get("/:requestId", h.Mediation.Get)
	mediatorRequests.Post("/:requestId/approve", h.Mediation.Approve)
	mediatorRequests.Post("/:requestId/respond", h.Mediation.Respond)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
}
