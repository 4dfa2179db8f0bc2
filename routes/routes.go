package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventmap-api/config"
	"eventmap-api/controllers"
	"eventmap-api/middleware"
	"eventmap-api/services"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, cache *services.WidgetCacheService) {
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	apiKeyController := controllers.NewApiKeyController(db, cache)
	eventController := controllers.NewEventController(db, cache)
	widgetConfigController := controllers.NewWidgetConfigController(db, cache)
	widgetController := controllers.NewWidgetController(db, cache)
	statsController := controllers.NewStatsController(db)
	embedController := controllers.NewEmbedController(db, services.NewEmbedGenerator(cfg.ServerURL))
	geocodeController := controllers.NewGeocodeController(services.NewGeocoderService(cfg.YandexMapsAPIKey))
	configController := controllers.NewConfigController(cfg.YandexMapsAPIKey)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	{
		// Public endpoints: the embed path and widget bootstrap config
		v1.GET("/widget/:key", widgetController.GetWidgetData)
		v1.GET("/widget/:key/config", widgetController.GetWidgetConfig)
		v1.GET("/config/yandex-maps-key", configController.GetYandexMapsKey)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", middleware.AuthMiddleware(cfg.JWTSecret), authController.Refresh)
			auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authController.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/api-keys", apiKeyController.CreateApiKey)
			protected.GET("/api-keys", apiKeyController.GetApiKeys)
			protected.PUT("/api-keys/:id", apiKeyController.UpdateApiKey)
			protected.DELETE("/api-keys/:id", apiKeyController.DeleteApiKey)

			protected.POST("/events", eventController.CreateEvent)
			protected.GET("/events", eventController.GetEvents)
			protected.GET("/events/:id", eventController.GetEvent)
			protected.PUT("/events/:id", eventController.UpdateEvent)
			protected.DELETE("/events/:id", eventController.DeleteEvent)

			protected.POST("/widgets", widgetConfigController.CreateWidgetConfig)
			protected.GET("/widgets", widgetConfigController.GetWidgetConfigs)
			protected.GET("/widgets/:id", widgetConfigController.GetWidgetConfig)
			protected.PUT("/widgets/:id", widgetConfigController.UpdateWidgetConfig)
			protected.DELETE("/widgets/:id", widgetConfigController.DeleteWidgetConfig)

			protected.GET("/stats", statsController.GetStats)
			protected.POST("/embed/:config_id", embedController.GenerateEmbedCode)

			protected.POST("/geocode", geocodeController.Geocode)
			protected.GET("/geocode/reverse", geocodeController.ReverseGeocode)
		}
	}
}
