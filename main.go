package main

import (
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize JWT
	utils.InitJWT()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

func setupRouter(cache *services.TrackerCache) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBodyBytes))

	// Initialize repositories
	programsRepo := repository.GetProgramsRepo(utils.MongoClient)
	catalogRepo := repository.GetCatalogRepo(utils.MongoClient)

	// Initialize services
	programsService := usecase.NewProgramsService(programsRepo, catalogRepo, cache)
	checklistService := usecase.NewChecklistService(programsRepo, cache)
	notesService := usecase.NewNotesService(programsRepo, cache)
	statsHandler := handler.NewStatsHandler(usecase.NewStatsService(programsRepo, cache))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		catalog := protected.Group("/catalog")
		{
			catalog.GET("/search", func(c *gin.Context) {
				handler.SearchCatalogHandler(c, catalogRepo)
			})
			catalog.GET("/courses/:id", func(c *gin.Context) {
				handler.GetCourseHandler(c, catalogRepo)
			})
		}

		tracker := protected.Group("/tracker")
		{
			tracker.GET("/stats", statsHandler.GetStats)
			tracker.GET("/deadlines", statsHandler.GetDeadlines)

			programs := tracker.Group("/programs")
			{
				// Basic CRUD operations
				programs.POST("", func(c *gin.Context) {
					handler.CreateProgramHandler(c, programsService)
				})
				programs.GET("", func(c *gin.Context) {
					handler.ListProgramsHandler(c, programsService)
				})
				programs.GET("/:id", func(c *gin.Context) {
					handler.GetProgramHandler(c, programsService)
				})
				programs.PATCH("/:id", func(c *gin.Context) {
					handler.UpdateProgramHandler(c, programsService)
				})
				programs.DELETE("/:id", func(c *gin.Context) {
					handler.DeleteProgramHandler(c, programsService)
				})

				// Checklist operations
				programs.PATCH("/:id/checklist", func(c *gin.Context) {
					handler.ReplaceChecklistHandler(c, checklistService)
				})
				programs.POST("/:id/checklist/items", func(c *gin.Context) {
					handler.AddChecklistItemHandler(c, checklistService)
				})
				programs.DELETE("/:id/checklist/items/:itemId", func(c *gin.Context) {
					handler.RemoveChecklistItemHandler(c, checklistService)
				})
				programs.POST("/:id/checklist/items/:itemId/toggle", func(c *gin.Context) {
					handler.ToggleChecklistItemHandler(c, checklistService)
				})

				// Notes operations
				programs.GET("/:id/notes", func(c *gin.Context) {
					handler.GetNotesHandler(c, notesService)
				})
				programs.PATCH("/:id/notes", func(c *gin.Context) {
					handler.UpdateMainNotesHandler(c, notesService)
				})
				programs.POST("/:id/notes/entries", func(c *gin.Context) {
					handler.AddNoteEntryHandler(c, notesService)
				})
				programs.PATCH("/:id/notes/entries/:entryId", func(c *gin.Context) {
					handler.UpdateNoteEntryHandler(c, notesService)
				})
				programs.DELETE("/:id/notes/entries/:entryId", func(c *gin.Context) {
					handler.DeleteNoteEntryHandler(c, notesService)
				})
			}
		}
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Redis is optional; without REDIS_URL every read goes straight to Mongo.
	var cache *services.TrackerCache
	cacheConfig := config.LoadCacheConfig()
	if cacheConfig.RedisURL != "" {
		var err error
		cache, err = services.NewTrackerCache(cacheConfig.RedisURL, cacheConfig.TTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}

	router := setupRouter(cache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
