package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/services"
	"eventmap-api/utils"
)

type WidgetConfigController struct {
	db          *gorm.DB
	cache       *services.WidgetCacheService
	publication *services.PublicationService
}

func NewWidgetConfigController(db *gorm.DB, cache *services.WidgetCacheService) *WidgetConfigController {
	return &WidgetConfigController{
		db:          db,
		cache:       cache,
		publication: services.NewPublicationService(db),
	}
}

type CreateWidgetConfigRequest struct {
	ApiKeyID       string   `json:"api_key_id" binding:"required"`
	Title          *string  `json:"title"`
	Width          *string  `json:"width"`
	Height         *string  `json:"height"`
	PrimaryColor   *string  `json:"primary_color"`
	MarkerColor    *string  `json:"marker_color"`
	DefaultPeriod  *string  `json:"default_period"`
	ShowSearch     *bool    `json:"show_search"`
	ShowFilters    *bool    `json:"show_filters"`
	ShowCategories *bool    `json:"show_categories"`
	AutoRefresh    *bool    `json:"auto_refresh"`
	ZoomLevel      *int     `json:"zoom_level"`
	CenterLat      *float64 `json:"center_lat"`
	CenterLon      *float64 `json:"center_lon"`
	EventIDs       []string `json:"event_ids"`
}

type UpdateWidgetConfigRequest struct {
	Title          *string   `json:"title"`
	Width          *string   `json:"width"`
	Height         *string   `json:"height"`
	PrimaryColor   *string   `json:"primary_color"`
	MarkerColor    *string   `json:"marker_color"`
	DefaultPeriod  *string   `json:"default_period"`
	ShowSearch     *bool     `json:"show_search"`
	ShowFilters    *bool     `json:"show_filters"`
	ShowCategories *bool     `json:"show_categories"`
	AutoRefresh    *bool     `json:"auto_refresh"`
	ZoomLevel      *int      `json:"zoom_level"`
	CenterLat      *float64  `json:"center_lat"`
	CenterLon      *float64  `json:"center_lon"`
	EventIDs       *[]string `json:"event_ids"`
}

type WidgetConfigResponse struct {
	models.WidgetConfig
	ApiKey   string   `json:"api_key"`
	EventIDs []string `json:"event_ids"`
}

func (wc *WidgetConfigController) configResponse(config *models.WidgetConfig) (WidgetConfigResponse, error) {
	var apiKey models.ApiKey
	if err := wc.db.First(&apiKey, "id = ?", config.ApiKeyID).Error; err != nil {
		return WidgetConfigResponse{}, err
	}

	eventIDs, err := wc.publication.EventIDsForWidget(config.ID)
	if err != nil {
		return WidgetConfigResponse{}, err
	}
	if eventIDs == nil {
		eventIDs = []string{}
	}

	return WidgetConfigResponse{
		WidgetConfig: *config,
		ApiKey:       apiKey.Key,
		EventIDs:     eventIDs,
	}, nil
}

func (wc *WidgetConfigController) invalidate(c *gin.Context, config *models.WidgetConfig) {
	var apiKey models.ApiKey
	if err := wc.db.First(&apiKey, "id = ?", config.ApiKeyID).Error; err != nil {
		return
	}
	wc.cache.Invalidate(c.Request.Context(), apiKey.Key)
}

func validateWidgetAppearance(primaryColor, markerColor *string, zoomLevel *int) string {
	if primaryColor != nil && !utils.IsValidHexColor(*primaryColor) {
		return "Invalid primary color"
	}
	if markerColor != nil && !utils.IsValidHexColor(*markerColor) {
		return "Invalid marker color"
	}
	if zoomLevel != nil && !utils.IsValidZoomLevel(*zoomLevel) {
		return "Invalid zoom level"
	}
	return ""
}

func (wc *WidgetConfigController) CreateWidgetConfig(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateWidgetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validateWidgetAppearance(req.PrimaryColor, req.MarkerColor, req.ZoomLevel); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// The API key must belong to the caller
	var apiKey models.ApiKey
	if err := wc.db.First(&apiKey, "id = ? AND user_id = ?", req.ApiKeyID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}

	config := models.WidgetConfig{
		ID:             uuid.New().String(),
		UserID:         userID,
		ApiKeyID:       apiKey.ID,
		Width:          "100%",
		Height:         "400px",
		PrimaryColor:   "#007bff",
		MarkerColor:    "#ff0000",
		DefaultPeriod:  "all",
		ShowSearch:     true,
		ShowFilters:    true,
		ShowCategories: true,
		ZoomLevel:      10,
	}
	applyWidgetConfigFields(&config, req.Title, req.Width, req.Height, req.PrimaryColor,
		req.MarkerColor, req.DefaultPeriod, req.ShowSearch, req.ShowFilters,
		req.ShowCategories, req.AutoRefresh, req.ZoomLevel, req.CenterLat, req.CenterLon)

	if err := wc.db.Create(&config).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create widget"})
		return
	}

	if len(req.EventIDs) > 0 {
		if err := wc.publication.SetWidgetEvents(&config, req.EventIDs, userID); err != nil {
			if errors.Is(err, services.ErrEventsNotOwned) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "One or more events not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link events"})
			return
		}
	}

	wc.cache.Invalidate(c.Request.Context(), apiKey.Key)

	response, err := wc.configResponse(&config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create widget"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (wc *WidgetConfigController) GetWidgetConfigs(c *gin.Context) {
	userID := c.GetString("user_id")

	var configs []models.WidgetConfig
	if err := wc.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&configs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch widgets"})
		return
	}

	items := make([]WidgetConfigResponse, 0, len(configs))
	for i := range configs {
		response, err := wc.configResponse(&configs[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch widgets"})
			return
		}
		items = append(items, response)
	}

	c.JSON(http.StatusOK, items)
}

func (wc *WidgetConfigController) GetWidgetConfig(c *gin.Context) {
	userID := c.GetString("user_id")
	configID := c.Param("id")

	var config models.WidgetConfig
	if err := wc.db.First(&config, "id = ? AND user_id = ?", configID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget not found"})
		return
	}

	response, err := wc.configResponse(&config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch widget"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (wc *WidgetConfigController) UpdateWidgetConfig(c *gin.Context) {
	userID := c.GetString("user_id")
	configID := c.Param("id")

	var config models.WidgetConfig
	if err := wc.db.First(&config, "id = ? AND user_id = ?", configID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget not found"})
		return
	}

	var req UpdateWidgetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validateWidgetAppearance(req.PrimaryColor, req.MarkerColor, req.ZoomLevel); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	applyWidgetConfigFields(&config, req.Title, req.Width, req.Height, req.PrimaryColor,
		req.MarkerColor, req.DefaultPeriod, req.ShowSearch, req.ShowFilters,
		req.ShowCategories, req.AutoRefresh, req.ZoomLevel, req.CenterLat, req.CenterLon)

	if err := wc.db.Save(&config).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update widget"})
		return
	}

	if req.EventIDs != nil {
		if err := wc.publication.SetWidgetEvents(&config, *req.EventIDs, userID); err != nil {
			if errors.Is(err, services.ErrEventsNotOwned) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "One or more events not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link events"})
			return
		}
	}

	wc.invalidate(c, &config)

	response, err := wc.configResponse(&config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update widget"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (wc *WidgetConfigController) DeleteWidgetConfig(c *gin.Context) {
	userID := c.GetString("user_id")
	configID := c.Param("id")

	var config models.WidgetConfig
	if err := wc.db.First(&config, "id = ? AND user_id = ?", configID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget not found"})
		return
	}

	wc.invalidate(c, &config)

	// Unlinking recomputes publication for formerly linked events
	if err := wc.publication.SetWidgetEvents(&config, nil, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete widget"})
		return
	}

	if err := wc.db.Delete(&config).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete widget"})
		return
	}

	c.Status(http.StatusNoContent)
}

func applyWidgetConfigFields(config *models.WidgetConfig, title, width, height, primaryColor,
	markerColor, defaultPeriod *string, showSearch, showFilters, showCategories,
	autoRefresh *bool, zoomLevel *int, centerLat, centerLon *float64) {
	if title != nil {
		config.Title = *title
	}
	if width != nil {
		config.Width = *width
	}
	if height != nil {
		config.Height = *height
	}
	if primaryColor != nil {
		config.PrimaryColor = *primaryColor
	}
	if markerColor != nil {
		config.MarkerColor = *markerColor
	}
	if defaultPeriod != nil {
		config.DefaultPeriod = *defaultPeriod
	}
	if showSearch != nil {
		config.ShowSearch = *showSearch
	}
	if showFilters != nil {
		config.ShowFilters = *showFilters
	}
	if showCategories != nil {
		config.ShowCategories = *showCategories
	}
	if autoRefresh != nil {
		config.AutoRefresh = *autoRefresh
	}
	if zoomLevel != nil {
		config.ZoomLevel = *zoomLevel
	}
	if centerLat != nil {
		config.CenterLat = centerLat
	}
	if centerLon != nil {
		config.CenterLon = centerLon
	}
}
