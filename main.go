package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventmap-api/config"
	"eventmap-api/database"
	"eventmap-api/middleware"
	"eventmap-api/routes"
	"eventmap-api/services"
)

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: without it the widget path just skips caching.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Invalid REDIS_URL, running without cache: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
		}
	}

	cache := services.NewWidgetCacheService(redisClient, cfg.WidgetCacheTTL, cfg.WidgetConfigCacheTTL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitBurst))

	routes.SetupRoutes(router, db, cfg, cache)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
