package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	ServerURL   string

	// Yandex Maps Configuration
	YandexMapsAPIKey string

	// Widget cache TTLs (seconds)
	WidgetCacheTTL       int
	WidgetConfigCacheTTL int

	// Rate Limiting
	RateLimitRequests int
	RateLimitBurst    int
}

func Load() *Config {
	widgetCacheTTL, _ := strconv.Atoi(getEnv("WIDGET_CACHE_TTL", "300"))
	widgetConfigCacheTTL, _ := strconv.Atoi(getEnv("WIDGET_CONFIG_CACHE_TTL", "600"))
	rateLimitRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	rateLimitBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/eventmap?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		ServerURL:   getEnv("SERVER_URL", "http://localhost:8080"),

		YandexMapsAPIKey: getEnv("YANDEX_MAPS_API_KEY", ""),

		WidgetCacheTTL:       widgetCacheTTL,
		WidgetConfigCacheTTL: widgetConfigCacheTTL,

		RateLimitRequests: rateLimitRequests,
		RateLimitBurst:    rateLimitBurst,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
