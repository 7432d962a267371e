package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"property-portal/internal/config"
	"property-portal/internal/database"
	"property-portal/internal/handlers"
	"property-portal/internal/ratelimit"
	"property-portal/internal/scheduler"
	"property-portal/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	db           *database.DB
	gormDB       *database.GormDB
	searchClient *search.SearchClient
	appConfig    *config.Config
	rateLimiter  *ratelimit.RateLimiter
	appScheduler *scheduler.Scheduler
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/portal.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	if dbType == "postgres" {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		db, err = database.NewDB(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "portal_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Println("Using MySQL with GORM")
		mysqlCfg := appConfig.Database.MySQL

		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		gormDB, err = database.NewGormDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "portal_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer gormDB.Close()

		if err := gormDB.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}

	// Initialize Meilisearch using config
	meilisearchHost := appConfig.Search.Meilisearch.Host
	if meilisearchHost == "" {
		meilisearchHost = getEnv("MEILISEARCH_HOST", "http://meilisearch:7700")
	}
	meilisearchKey := appConfig.Search.Meilisearch.APIKey
	if meilisearchKey == "" {
		meilisearchKey = getEnv("MEILISEARCH_KEY", "masterKey123")
	}

	searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)

	if err := searchClient.InitIndex(); err != nil {
		log.Printf("Warning: Failed to initialize search index: %v", err)
	}

	// Initialize rate limiter for the admin API
	rateLimiter = ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	// Initialize and start scheduler (MySQL only)
	if gormDB != nil {
		appScheduler = scheduler.NewScheduler(gormDB.DB(), searchClient, appConfig)
		if err := appScheduler.Start(); err != nil {
			log.Printf("Warning: Failed to start scheduler: %v", err)
		}
		defer appScheduler.Stop()
	}

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthCheck)

	// Public listing API
	var store handlers.PropertyStore
	if gormDB != nil {
		store = gormDB
	} else {
		store = db
	}
	propertiesHandler := handlers.NewPropertiesHandler(store, appConfig.Listing.PageSize)

	r.GET("/api/properties", propertiesHandler.List)
	r.GET("/api/properties/price-range", propertiesHandler.PriceRange)
	r.GET("/api/properties/similar", propertiesHandler.Similar)
	r.GET("/api/properties/:id", propertiesHandler.Get)

	r.GET("/api/search", searchProperties)

	// CMS surfaces and admin API require MySQL/GORM
	if gormDB != nil {
		blogHandler := handlers.NewBlogHandler(gormDB)
		r.GET("/api/blog", blogHandler.List)
		r.GET("/api/blog/:slug", blogHandler.Get)

		teamHandler := handlers.NewTeamHandler(gormDB)
		r.GET("/api/team", teamHandler.List)

		adminHandler := handlers.NewAdminHandler(gormDB, appScheduler, searchClient)

		admin := r.Group("/api/admin", rateLimitMiddleware())
		{
			// Statistics
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/location-stats", adminHandler.GetLocationStats)
			admin.GET("/price-distribution", adminHandler.GetPriceDistribution)
			admin.GET("/ratelimit/stats", getRateLimitStats)

			// Property management
			admin.POST("/properties", adminHandler.CreateProperty)
			admin.PUT("/properties/:id", adminHandler.UpdateProperty)
			admin.DELETE("/properties/:id", adminHandler.DeleteProperty)

			// Blog management
			admin.POST("/blog", adminHandler.SaveBlogPost)
			admin.PUT("/blog/:id", adminHandler.SaveBlogPost)
			admin.DELETE("/blog/:id", adminHandler.DeleteBlogPost)

			// Team management
			admin.POST("/team", adminHandler.SaveTeamMember)
			admin.PUT("/team/:id", adminHandler.SaveTeamMember)
			admin.DELETE("/team/:id", adminHandler.DeleteTeamMember)

			// Maintenance
			admin.POST("/cleanup/run", adminHandler.RunCleanup)
			admin.GET("/cleanup/logs", adminHandler.GetDeleteLogs)
			admin.POST("/maintenance/trigger", adminHandler.TriggerMaintenance)
			admin.POST("/search/reindex", adminHandler.Reindex)
		}

		log.Println("Admin API routes registered at /api/admin/*")
	}

	port := appConfig.Server.Port
	if port == "" {
		port = getEnv("PORT", "8084")
	}
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// searchProperties serves free-text search via Meilisearch
func searchProperties(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := int64(20)
	if v := c.Query("limit"); v != "" {
		if n, err := parseInt64(v); err == nil && n > 0 {
			limit = n
		}
	}

	properties, err := searchClient.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func parseInt64(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}

// rateLimitMiddleware returns a Gin middleware that enforces rate limiting
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimiter.AllowRequest() {
			stats := rateLimiter.GetStats()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   stats,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// getRateLimitStats returns current rate limiter statistics
func getRateLimitStats(c *gin.Context) {
	stats := rateLimiter.GetStats()
	c.JSON(http.StatusOK, stats)
}
