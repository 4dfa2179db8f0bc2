package controllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/services"
)

const apiKeyPrefix = "emk_"
const apiKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const apiKeyLength = 32

type ApiKeyController struct {
	db          *gorm.DB
	cache       *services.WidgetCacheService
	publication *services.PublicationService
}

func NewApiKeyController(db *gorm.DB, cache *services.WidgetCacheService) *ApiKeyController {
	return &ApiKeyController{
		db:          db,
		cache:       cache,
		publication: services.NewPublicationService(db),
	}
}

type CreateApiKeyRequest struct {
	Name           string   `json:"name"`
	AllowedDomains []string `json:"allowed_domains"`
}

type UpdateApiKeyRequest struct {
	Name           *string   `json:"name"`
	AllowedDomains *[]string `json:"allowed_domains"`
}

func (kc *ApiKeyController) CreateApiKey(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateApiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newKey, err := kc.generateUniqueKey()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate API key"})
		return
	}

	name := req.Name
	if name == "" {
		name = kc.generateDefaultName(userID)
	}

	apiKey := models.ApiKey{
		ID:             uuid.New().String(),
		UserID:         userID,
		Key:            newKey,
		Name:           name,
		AllowedDomains: models.StringSlice(req.AllowedDomains),
	}

	if err := kc.db.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}

	c.JSON(http.StatusCreated, apiKey)
}

func (kc *ApiKeyController) GetApiKeys(c *gin.Context) {
	userID := c.GetString("user_id")

	var apiKeys []models.ApiKey
	if err := kc.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apiKeys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch API keys"})
		return
	}

	c.JSON(http.StatusOK, apiKeys)
}

func (kc *ApiKeyController) UpdateApiKey(c *gin.Context) {
	userID := c.GetString("user_id")
	keyID := c.Param("id")

	var apiKey models.ApiKey
	if err := kc.db.First(&apiKey, "id = ? AND user_id = ?", keyID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}

	var req UpdateApiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AllowedDomains != nil {
		updates["allowed_domains"] = models.StringSlice(*req.AllowedDomains)
	}

	if len(updates) > 0 {
		if err := kc.db.Model(&apiKey).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update API key"})
			return
		}
	}

	// Changed key settings must not serve through stale cache entries.
	kc.cache.Invalidate(c.Request.Context(), apiKey.Key)

	c.JSON(http.StatusOK, apiKey)
}

func (kc *ApiKeyController) DeleteApiKey(c *gin.Context) {
	userID := c.GetString("user_id")
	keyID := c.Param("id")

	var apiKey models.ApiKey
	if err := kc.db.First(&apiKey, "id = ? AND user_id = ?", keyID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}

	kc.cache.Invalidate(c.Request.Context(), apiKey.Key)

	// Cascade to dependent widget configs, keeping the publish derivation
	// explicit for every event the dropped configs referenced.
	var configs []models.WidgetConfig
	if err := kc.db.Where("api_key_id = ?", apiKey.ID).Find(&configs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
		return
	}

	for i := range configs {
		if err := kc.publication.SetWidgetEvents(&configs[i], nil, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
			return
		}

		if err := kc.db.Delete(&configs[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
			return
		}
	}

	if err := kc.db.Delete(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
		return
	}

	c.Status(http.StatusNoContent)
}

// generateApiKey builds an opaque token with the recognizable emk_ prefix.
func generateApiKey() (string, error) {
	token := make([]byte, apiKeyLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(apiKeyAlphabet))))
		if err != nil {
			return "", err
		}
		token[i] = apiKeyAlphabet[n.Int64()]
	}
	return apiKeyPrefix + string(token), nil
}

func (kc *ApiKeyController) generateUniqueKey() (string, error) {
	for {
		newKey, err := generateApiKey()
		if err != nil {
			return "", err
		}

		var existing models.ApiKey
		if err := kc.db.Where("`key` = ?", newKey).First(&existing).Error; err != nil {
			// Key is available
			return newKey, nil
		}
	}
}

func (kc *ApiKeyController) generateDefaultName(userID string) string {
	var count int64
	kc.db.Model(&models.ApiKey{}).Where("user_id = ?", userID).Count(&count)
	return fmt.Sprintf("API Key %d", count+1)
}
