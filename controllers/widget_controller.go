package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/services"
	"eventmap-api/utils"
)

// WidgetController serves the unauthenticated embed path. Access is gated by
// API key and domain allow-list instead of JWT.
type WidgetController struct {
	db          *gorm.DB
	cache       *services.WidgetCacheService
	publication *services.PublicationService
}

func NewWidgetController(db *gorm.DB, cache *services.WidgetCacheService) *WidgetController {
	return &WidgetController{
		db:          db,
		cache:       cache,
		publication: services.NewPublicationService(db),
	}
}

// resolveApiKey performs key lookup, the domain gate and usage accounting.
// Returns nil after writing the error response when the request is rejected.
func (wc *WidgetController) resolveApiKey(c *gin.Context) *models.ApiKey {
	widgetKey := c.Param("key")

	var apiKey models.ApiKey
	if err := wc.db.First(&apiKey, "`key` = ?", widgetKey).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid widget key"})
		return nil
	}

	requestDomain := utils.ExtractDomain(c.GetHeader("Origin"), c.GetHeader("Referer"))
	if !utils.IsDomainAllowed(requestDomain, apiKey.AllowedDomains) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Domain not allowed"})
		return nil
	}

	// Usage is counted before the cache lookup, so hits are counted too.
	wc.db.Model(&apiKey).Updates(map[string]interface{}{
		"usage_count":  gorm.Expr("usage_count + ?", 1),
		"last_used_at": time.Now(),
	})

	return &apiKey
}

// GetWidgetData serves the assembled widget payload, read-through cached per
// (key, filter-tuple).
func (wc *WidgetController) GetWidgetData(c *gin.Context) {
	apiKey := wc.resolveApiKey(c)
	if apiKey == nil {
		return
	}

	filter := services.EventFilter{
		Period:   c.Query("period"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if dateFrom, ok := parseQueryTime(c.Query("date_from")); ok {
		filter.DateFrom = &dateFrom
	}
	if dateTo, ok := parseQueryTime(c.Query("date_to")); ok {
		filter.DateTo = &dateTo
	}

	cacheKey := services.DataCacheKey(apiKey.Key, filter)
	if data, ok := wc.cache.GetWidgetData(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, data)
		return
	}

	data, err := wc.cache.BuildWidgetData(wc.db, apiKey, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load widget data"})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget configuration not found"})
		return
	}

	wc.cache.SetWidgetData(c.Request.Context(), cacheKey, data)

	c.JSON(http.StatusOK, data)
}

// GetWidgetConfig serves the config-only endpoint with generated CSS.
func (wc *WidgetController) GetWidgetConfig(c *gin.Context) {
	apiKey := wc.resolveApiKey(c)
	if apiKey == nil {
		return
	}

	if config, ok := wc.cache.GetWidgetConfig(c.Request.Context(), apiKey.Key); ok {
		c.JSON(http.StatusOK, config)
		return
	}

	var config models.WidgetConfig
	if err := wc.db.Where("api_key_id = ?", apiKey.ID).First(&config).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget configuration not found"})
		return
	}

	eventIDs, err := wc.publication.EventIDsForWidget(config.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load widget configuration"})
		return
	}
	if eventIDs == nil {
		eventIDs = []string{}
	}

	public := &models.PublicWidgetConfig{
		WidgetConfigPayload: models.NewWidgetConfigPayload(&config),
		ApiKey:              apiKey.Key,
		EventIDs:            eventIDs,
		CSS:                 services.GenerateWidgetCSS(&config),
	}

	wc.cache.SetWidgetConfig(c.Request.Context(), apiKey.Key, public)

	c.JSON(http.StatusOK, public)
}
