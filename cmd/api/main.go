package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"demand-profile/internal/api/handlers"
	"demand-profile/internal/api/middleware"
	"demand-profile/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and the dataset registry path for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
	}
	registryPath := data.GetDefaultSourcesPath()
	if _, err := os.Stat(registryPath); err == nil {
		log.Printf("Dataset registry found: %s", registryPath)
	} else {
		log.Printf("Dataset registry not found at: %s (error: %v)", registryPath, err)
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Results stay retrievable for an hour after a run
	cache := data.NewResultCache(time.Hour)
	generateHandler := handlers.NewGenerateHandler(cache)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/generate", generateHandler.RunGenerate)
		api.POST("/generate/stream", generateHandler.StreamGenerate)
		api.GET("/generate/:id", generateHandler.GetResult)

		api.GET("/methods", handlers.ListMethods)
		api.GET("/datasets", handlers.ListDatasets)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
