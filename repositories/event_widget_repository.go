package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventmap-api/models"
)

// EventWidgetRepository owns all reads and writes of the event/widget join
// table. Link rows are managed explicitly so publish-state derivation never
// hides inside ORM cascades.
type EventWidgetRepository struct {
	db *gorm.DB
}

func NewEventWidgetRepository(db *gorm.DB) *EventWidgetRepository {
	return &EventWidgetRepository{db: db}
}

// WidgetIDsForEvent returns the IDs of widgets the event is linked to.
func (r *EventWidgetRepository) WidgetIDsForEvent(eventID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.EventWidget{}).
		Where("event_id = ?", eventID).
		Pluck("widget_id", &ids).Error
	return ids, err
}

// EventIDsForWidget returns the IDs of events linked to the widget.
func (r *EventWidgetRepository) EventIDsForWidget(widgetID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.EventWidget{}).
		Where("widget_id = ?", widgetID).
		Pluck("event_id", &ids).Error
	return ids, err
}

// LinkCountForEvent counts how many widgets still reference the event.
func (r *EventWidgetRepository) LinkCountForEvent(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventWidget{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// CreateLink inserts a single join row.
func (r *EventWidgetRepository) CreateLink(eventID, widgetID string) error {
	link := models.EventWidget{
		ID:       uuid.New().String(),
		EventID:  eventID,
		WidgetID: widgetID,
	}
	return r.db.Create(&link).Error
}

// DeleteLinksForEvent removes every join row of the event.
func (r *EventWidgetRepository) DeleteLinksForEvent(eventID string) error {
	return r.db.Where("event_id = ?", eventID).Delete(&models.EventWidget{}).Error
}

// DeleteLinksForWidget removes every join row of the widget.
func (r *EventWidgetRepository) DeleteLinksForWidget(widgetID string) error {
	return r.db.Where("widget_id = ?", widgetID).Delete(&models.EventWidget{}).Error
}

// ApiKeysForEvent returns the opaque key strings of every API key whose widget
// is linked to the event. Used to invalidate affected cache entries.
func (r *EventWidgetRepository) ApiKeysForEvent(eventID string) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.EventWidget{}).
		Joins("JOIN widget_configs ON widget_configs.id = event_widgets.widget_id").
		Joins("JOIN api_keys ON api_keys.id = widget_configs.api_key_id").
		Where("event_widgets.event_id = ?", eventID).
		Pluck("api_keys.key", &keys).Error
	return keys, err
}
