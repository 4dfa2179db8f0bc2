package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventmap-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.ApiKey{},
		&models.Event{},
		&models.WidgetConfig{},
		&models.EventWidget{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    uuid.New().String() + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestApiKey(t *testing.T, db *gorm.DB, userID string) *models.ApiKey {
	t.Helper()

	apiKey := &models.ApiKey{
		ID:     uuid.New().String(),
		UserID: userID,
		Key:    "emk_" + uuid.New().String()[:8],
		Name:   "API Key 1",
	}
	require.NoError(t, db.Create(apiKey).Error)
	return apiKey
}

func createTestWidget(t *testing.T, db *gorm.DB, userID, apiKeyID string) *models.WidgetConfig {
	t.Helper()

	config := &models.WidgetConfig{
		ID:            uuid.New().String(),
		UserID:        userID,
		ApiKeyID:      apiKeyID,
		Title:         "Test Widget",
		Width:         "100%",
		Height:        "400px",
		PrimaryColor:  "#007bff",
		MarkerColor:   "#ff0000",
		DefaultPeriod: "all",
		ZoomLevel:     10,
	}
	require.NoError(t, db.Create(config).Error)
	return config
}

func createTestEvent(t *testing.T, db *gorm.DB, userID string, datetime time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         "Test Event",
		EventDatetime: datetime,
		Longitude:     37.6173,
		Latitude:      55.7558,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}
