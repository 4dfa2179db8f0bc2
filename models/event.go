package models

import (
	"time"
)

// Event is a single map marker. Timestamps are stored without timezone and
// compared in process-local time.
type Event struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	UserID        string    `json:"user_id" gorm:"not null;size:191;index:idx_events_user_datetime,priority:1"`
	Title         string    `json:"title" gorm:"not null;size:500"`
	Description   *string   `json:"description" gorm:"type:text"`
	EventDatetime time.Time `json:"event_datetime" gorm:"not null;index:idx_events_user_datetime,priority:2"`
	Longitude     float64   `json:"longitude" gorm:"not null"`
	Latitude      float64   `json:"latitude" gorm:"not null"`
	Category      *string   `json:"category" gorm:"size:100;index"`
	VenueName     *string   `json:"venue_name" gorm:"size:255"`
	VenueAddress  *string   `json:"venue_address" gorm:"size:500"`
	ImageURL      *string   `json:"image_url" gorm:"size:1000"`
	TicketURL     *string   `json:"ticket_url" gorm:"size:1000"`
	IsPublished   bool      `json:"is_published" gorm:"default:false;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// EventWidget links an event to a widget config. The relation is managed
// explicitly (no many2many tag) so that publish-state derivation stays a
// visible, testable step.
type EventWidget struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;index:idx_event_widgets_event"`
	WidgetID  string    `json:"widget_id" gorm:"not null;size:191;index:idx_event_widgets_widget"`
	CreatedAt time.Time `json:"created_at"`

	Event  Event        `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Widget WidgetConfig `json:"-" gorm:"foreignKey:WidgetID;constraint:OnDelete:CASCADE"`
}
