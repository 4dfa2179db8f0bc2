package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/services"
)

type EmbedController struct {
	db        *gorm.DB
	generator *services.EmbedGenerator
}

func NewEmbedController(db *gorm.DB, generator *services.EmbedGenerator) *EmbedController {
	return &EmbedController{db: db, generator: generator}
}

type EmbedCodeResponse struct {
	ScriptURL  string `json:"script_url"`
	EmbedCode  string `json:"embed_code"`
	PreviewURL string `json:"preview_url"`
}

// GenerateEmbedCode returns the copy-paste snippet for a widget config owned
// by the caller.
func (ec *EmbedController) GenerateEmbedCode(c *gin.Context) {
	userID := c.GetString("user_id")
	configID := c.Param("config_id")

	var config models.WidgetConfig
	if err := ec.db.First(&config, "id = ? AND user_id = ?", configID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget not found"})
		return
	}

	var apiKey models.ApiKey
	if err := ec.db.First(&apiKey, "id = ?", config.ApiKeyID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate embed code"})
		return
	}

	c.JSON(http.StatusOK, EmbedCodeResponse{
		ScriptURL:  ec.generator.ScriptURL(),
		EmbedCode:  ec.generator.GenerateEmbedCode(apiKey.Key),
		PreviewURL: ec.generator.PreviewURL(apiKey.Key),
	})
}
