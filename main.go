package main

import (
	"log"
	"net/http"
	"os"

	"helphub-api/config"
	"helphub-api/handlers"
	"helphub-api/logging"
	"helphub-api/middleware"
	"helphub-api/routes"
	"helphub-api/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	env := config.GetEnv("APP_ENV", "dev")
	logger, err := logging.Init(env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	if err := config.InitDB(); err != nil {
		logger.Fatal("Failed to connect to database: " + err.Error())
	}
	if err := config.SeedAdmin(config.DB); err != nil {
		logger.Fatal("Failed to seed admin account: " + err.Error())
	}
	logger.Info("Database connected and migrated")

	svc := service.New(config.DB, logger)
	handlers.Init(svc)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "HelpHub Volunteer Coordination API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r)

	port := config.GetEnv("PORT", "8080")
	logger.Info("Server running on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server: " + err.Error())
	}
}
