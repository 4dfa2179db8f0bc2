package services

import (
	"errors"

	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/repositories"
)

// ErrEventsNotOwned is returned when a link request names events that don't
// exist or belong to another user.
var ErrEventsNotOwned = errors.New("some events not found or don't belong to you")

// PublicationService keeps the is_published flag in sync with widget
// membership: linked events are visible, events no longer referenced by any
// widget are hidden. The derivation runs after every link change.
type PublicationService struct {
	db   *gorm.DB
	repo *repositories.EventWidgetRepository
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	return &PublicationService{
		db:   db,
		repo: repositories.NewEventWidgetRepository(db),
	}
}

// RecomputePublished derives the publish flag of a single event from its
// remaining links.
func (s *PublicationService) RecomputePublished(eventID string) error {
	count, err := s.repo.LinkCountForEvent(eventID)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("is_published", count > 0).Error
}

// SetEventWidgets replaces the widget links of an event. Widget IDs that don't
// belong to the owner are skipped. The event's publish flag is recomputed from
// the links that survive.
func (s *PublicationService) SetEventWidgets(event *models.Event, widgetIDs []string) error {
	if err := s.repo.DeleteLinksForEvent(event.ID); err != nil {
		return err
	}

	for _, widgetID := range widgetIDs {
		var widget models.WidgetConfig
		err := s.db.Where("id = ? AND user_id = ?", widgetID, event.UserID).First(&widget).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}
		if err := s.repo.CreateLink(event.ID, widget.ID); err != nil {
			return err
		}
	}

	return s.RecomputePublished(event.ID)
}

// SetWidgetEvents replaces the event links of a widget config. All named
// events must exist and belong to userID. Both the newly linked events and the
// ones dropped from the widget get their publish flag recomputed.
func (s *PublicationService) SetWidgetEvents(config *models.WidgetConfig, eventIDs []string, userID string) error {
	oldEventIDs, err := s.repo.EventIDsForWidget(config.ID)
	if err != nil {
		return err
	}

	var events []models.Event
	if len(eventIDs) > 0 {
		if err := s.db.Where("id IN ? AND user_id = ?", eventIDs, userID).Find(&events).Error; err != nil {
			return err
		}
		if len(events) != len(eventIDs) {
			return ErrEventsNotOwned
		}
	}

	if err := s.repo.DeleteLinksForWidget(config.ID); err != nil {
		return err
	}

	for i := range events {
		if err := s.repo.CreateLink(events[i].ID, config.ID); err != nil {
			return err
		}
	}

	// Recompute every event touched by the change, on either side.
	affected := make(map[string]bool, len(oldEventIDs)+len(eventIDs))
	for _, id := range oldEventIDs {
		affected[id] = true
	}
	for _, id := range eventIDs {
		affected[id] = true
	}
	for id := range affected {
		if err := s.RecomputePublished(id); err != nil {
			return err
		}
	}

	return nil
}

// WidgetIDsForEvent exposes the event's current widget links for responses.
func (s *PublicationService) WidgetIDsForEvent(eventID string) ([]string, error) {
	return s.repo.WidgetIDsForEvent(eventID)
}

// EventIDsForWidget exposes the widget's current event links for responses.
func (s *PublicationService) EventIDsForWidget(widgetID string) ([]string, error) {
	return s.repo.EventIDsForWidget(widgetID)
}

// ApiKeysForEvent lists the key strings whose cached payloads include the
// event, so mutating handlers can invalidate them before acknowledging.
func (s *PublicationService) ApiKeysForEvent(eventID string) ([]string, error) {
	return s.repo.ApiKeysForEvent(eventID)
}
