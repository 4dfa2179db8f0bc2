package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eventmap-api/models"
)

// WidgetCacheService caches assembled widget payloads and config snapshots in
// Redis. Every backend error degrades to a miss or a no-op: the system stays
// correct with the cache entirely absent (client may be nil).
type WidgetCacheService struct {
	client    *redis.Client
	dataTTL   time.Duration
	configTTL time.Duration
}

func NewWidgetCacheService(client *redis.Client, dataTTLSeconds, configTTLSeconds int) *WidgetCacheService {
	return &WidgetCacheService{
		client:    client,
		dataTTL:   time.Duration(dataTTLSeconds) * time.Second,
		configTTL: time.Duration(configTTLSeconds) * time.Second,
	}
}

// DataCacheKey composes the data entry key for a widget key and its full
// filter-parameter tuple, so distinct filter combinations never collide.
func DataCacheKey(widgetKey string, filter EventFilter) string {
	dateFrom := ""
	if filter.DateFrom != nil {
		dateFrom = filter.DateFrom.Format(time.RFC3339)
	}
	dateTo := ""
	if filter.DateTo != nil {
		dateTo = filter.DateTo.Format(time.RFC3339)
	}
	return fmt.Sprintf("widget:data:%s:%s:%s:%s:%s:%s",
		widgetKey, filter.Period, filter.Category, filter.Search, dateFrom, dateTo)
}

func configCacheKey(widgetKey string) string {
	return "widget:config:" + widgetKey
}

// GetWidgetData returns the cached payload for cacheKey, or false on miss or
// backend error.
func (s *WidgetCacheService) GetWidgetData(ctx context.Context, cacheKey string) (*models.WidgetData, bool) {
	if s.client == nil {
		return nil, false
	}

	cached, err := s.client.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var data models.WidgetData
	if err := json.Unmarshal([]byte(cached), &data); err != nil {
		return nil, false
	}
	return &data, true
}

// SetWidgetData stores the payload under cacheKey with the data TTL.
func (s *WidgetCacheService) SetWidgetData(ctx context.Context, cacheKey string, data *models.WidgetData) {
	if s.client == nil {
		return
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return
	}
	s.client.Set(ctx, cacheKey, encoded, s.dataTTL)
}

// GetWidgetConfig returns the cached public config for widgetKey, or false on
// miss or backend error.
func (s *WidgetCacheService) GetWidgetConfig(ctx context.Context, widgetKey string) (*models.PublicWidgetConfig, bool) {
	if s.client == nil {
		return nil, false
	}

	cached, err := s.client.Get(ctx, configCacheKey(widgetKey)).Result()
	if err != nil {
		return nil, false
	}

	var config models.PublicWidgetConfig
	if err := json.Unmarshal([]byte(cached), &config); err != nil {
		return nil, false
	}
	return &config, true
}

// SetWidgetConfig stores the public config with the config TTL.
func (s *WidgetCacheService) SetWidgetConfig(ctx context.Context, widgetKey string, config *models.PublicWidgetConfig) {
	if s.client == nil {
		return
	}

	encoded, err := json.Marshal(config)
	if err != nil {
		return
	}
	s.client.Set(ctx, configCacheKey(widgetKey), encoded, s.configTTL)
}

// Invalidate removes the config entry, the bare data entry, and every data
// entry carrying a filter-parameter suffix for widgetKey. Called synchronously
// by every mutating handler before it acknowledges the write.
func (s *WidgetCacheService) Invalidate(ctx context.Context, widgetKey string) {
	if s.client == nil {
		return
	}

	s.client.Del(ctx, configCacheKey(widgetKey), "widget:data:"+widgetKey)

	pattern := "widget:data:" + widgetKey + ":*"
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iter.Err() != nil {
		return
	}
	if len(keys) > 0 {
		s.client.Del(ctx, keys...)
	}
}

// BuildWidgetData assembles the public payload on a cache miss: the key's
// config plus its linked, published events in ascending time order. Returns
// (nil, nil) when the key has no widget config.
func (s *WidgetCacheService) BuildWidgetData(db *gorm.DB, apiKey *models.ApiKey, filter EventFilter) (*models.WidgetData, error) {
	var config models.WidgetConfig
	if err := db.Where("api_key_id = ?", apiKey.ID).First(&config).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	filter.OnlyPublished = true

	var events []models.Event
	query := db.Model(&models.Event{}).
		Joins("JOIN event_widgets ON event_widgets.event_id = events.id").
		Where("event_widgets.widget_id = ?", config.ID)
	query = ApplyEventFilter(query, filter)

	if err := query.Order("events.event_datetime ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	widgetEvents := make([]models.WidgetEvent, 0, len(events))
	for i := range events {
		widgetEvents = append(widgetEvents, models.NewWidgetEvent(&events[i]))
	}

	return &models.WidgetData{
		Config: models.NewWidgetConfigPayload(&config),
		Events: widgetEvents,
		Total:  len(widgetEvents),
	}, nil
}
