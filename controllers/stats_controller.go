package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventmap-api/models"
)

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

type StatsResponse struct {
	TotalEvents     int64 `json:"total_events"`
	PublishedEvents int64 `json:"published_events"`
	TotalWidgets    int64 `json:"total_widgets"`
	TotalApiKeys    int64 `json:"total_api_keys"`
}

// GetStats returns per-account counters for the dashboard.
func (sc *StatsController) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var stats StatsResponse
	if err := sc.db.Model(&models.Event{}).Where("user_id = ?", userID).Count(&stats.TotalEvents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := sc.db.Model(&models.Event{}).Where("user_id = ? AND is_published = ?", userID, true).Count(&stats.PublishedEvents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := sc.db.Model(&models.WidgetConfig{}).Where("user_id = ?", userID).Count(&stats.TotalWidgets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := sc.db.Model(&models.ApiKey{}).Where("user_id = ?", userID).Count(&stats.TotalApiKeys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
