// main.go
package main

import (
	"log"
	"os"
	"time"

	"gowalking/database"
	"gowalking/handlers"
	"gowalking/middleware"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Build the service layer
	db := database.GetDB()
	handlers.Init(db)

	// Seed the achievement catalog (idempotent)
	if err := handlers.Achievements().SeedCatalog(); err != nil {
		log.Fatal("Failed to seed achievement catalog:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// User routes
	api.Post("/users", handlers.CreateUser)
	api.Get("/users", handlers.GetUsers)
	api.Get("/users/:id", handlers.GetUser)

	// Walk routes
	api.Post("/walks", handlers.CreateWalk)
	api.Get("/walks/leaderboard", handlers.GetLeaderboard)
	api.Get("/walks/user/:userID", handlers.GetUserWalks)

	// Map provider routes with a tighter budget
	providerGroup := api.Group("")
	providerGroup.Use(middleware.ProviderRateLimitMiddleware())
	providerGroup.Post("/route/calculate", handlers.CalculateRoute)
	providerGroup.Post("/poi", handlers.GetPOIData)
	providerGroup.Get("/geocode", handlers.GeocodeAddress)
	api.Get("/poi/cities", handlers.GetSupportedCities)

	// Achievement routes
	api.Get("/achievements/catalog", handlers.GetAchievementCatalog)
	api.Get("/achievements/:userID", handlers.GetUserAchievements)
	api.Post("/achievements/check/:userID", handlers.CheckAchievements)
	api.Post("/achievements/seen/:userID", handlers.MarkAchievementsSeen)

	// Friend routes
	friendGroup := api.Group("/friends")
	friendGroup.Post("/request", handlers.SendFriendRequest)
	friendGroup.Post("/respond/:requestID", handlers.RespondFriendRequest)
	friendGroup.Get("/requests/:userID", handlers.GetFriendRequests)
	friendGroup.Get("/activity/:userID", handlers.GetFriendsActivity)
	friendGroup.Get("/:userID", handlers.GetFriends)

	// Walk invitation routes
	api.Post("/walk-invitations", handlers.SendWalkInvitation)
	api.Post("/walk-invitations/respond/:invitationID", handlers.RespondWalkInvitation)
	api.Get("/walk-invitations/:userID", handlers.GetWalkInvitations)

	// Group routes
	groupGroup := api.Group("/groups")
	groupGroup.Post("/", handlers.CreateGroup)
	groupGroup.Get("/public", handlers.GetPublicGroups)
	groupGroup.Get("/user/:userID", handlers.GetUserGroups)
	groupGroup.Post("/join", handlers.JoinGroup)
	groupGroup.Get("/:id", handlers.GetGroup)
	groupGroup.Post("/:id/leave", handlers.LeaveGroup)
	groupGroup.Get("/:id/members", handlers.GetGroupMembers)
	groupGroup.Get("/:id/leaderboard", handlers.GetGroupLeaderboard)
	groupGroup.Post("/:id/challenges", handlers.CreateGroupChallenge)
	groupGroup.Get("/:id/challenges", handlers.GetGroupChallenges)

	// Challenge routes
	api.Get("/challenges/:id", handlers.GetChallenge)
	api.Post("/challenges/:id/join", handlers.JoinChallenge)

	// Live activity feed
	app.Get("/ws/feed", handlers.FeedUpgrade, handlers.FeedSocket)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("🚀 GoWalking API starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🗺️  Route planning: %s", routingMode())
	log.Printf("🏆 Achievement catalog seeded")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Println("Warning: neither DATABASE_URL nor DB_HOST set, using local defaults")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
		if os.Getenv("ORS_API_KEY") == "" {
			log.Println("WARNING: ORS_API_KEY not set, routes will use straight-line estimates")
		}
	}
}

func routingMode() string {
	if os.Getenv("ORS_API_KEY") != "" {
		return "openrouteservice"
	}
	return "straight-line fallback"
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
