package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ConfigController struct {
	yandexMapsAPIKey string
}

func NewConfigController(yandexMapsAPIKey string) *ConfigController {
	return &ConfigController{yandexMapsAPIKey: yandexMapsAPIKey}
}

// GetYandexMapsKey exposes the maps JS API key to the widget frontend.
func (cc *ConfigController) GetYandexMapsKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"api_key": cc.yandexMapsAPIKey})
}
