package models

import (
	"time"
)

// WidgetEvent is the public projection of an event served to the embedded
// widget. Internal fields (owner, publish flag) are never exposed.
type WidgetEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	EventDatetime time.Time `json:"event_datetime"`
	Longitude     float64   `json:"longitude"`
	Latitude      float64   `json:"latitude"`
	Category      *string   `json:"category"`
	VenueName     *string   `json:"venue_name"`
	VenueAddress  *string   `json:"venue_address"`
	ImageURL      *string   `json:"image_url"`
	TicketURL     *string   `json:"ticket_url"`
}

// WidgetConfigPayload is the presentation snapshot inside a widget response.
type WidgetConfigPayload struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ApiKeyID       string    `json:"api_key_id"`
	Title          string    `json:"title"`
	Width          string    `json:"width"`
	Height         string    `json:"height"`
	PrimaryColor   string    `json:"primary_color"`
	MarkerColor    string    `json:"marker_color"`
	DefaultPeriod  string    `json:"default_period"`
	ShowSearch     bool      `json:"show_search"`
	ShowFilters    bool      `json:"show_filters"`
	ShowCategories bool      `json:"show_categories"`
	AutoRefresh    bool      `json:"auto_refresh"`
	ZoomLevel      int       `json:"zoom_level"`
	CenterLat      *float64  `json:"center_lat"`
	CenterLon      *float64  `json:"center_lon"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WidgetData is the full public payload: config plus the filtered event set.
// This is what gets cached per (key, filter-tuple).
type WidgetData struct {
	Config WidgetConfigPayload `json:"config"`
	Events []WidgetEvent       `json:"events"`
	Total  int                 `json:"total"`
}

// PublicWidgetConfig is the response of the public config-only endpoint:
// the presentation snapshot plus linked event IDs and generated CSS.
type PublicWidgetConfig struct {
	WidgetConfigPayload
	ApiKey   string   `json:"api_key"`
	EventIDs []string `json:"event_ids"`
	CSS      string   `json:"css"`
}

// NewWidgetConfigPayload maps a stored config into its public snapshot.
func NewWidgetConfigPayload(config *WidgetConfig) WidgetConfigPayload {
	return WidgetConfigPayload{
		ID:             config.ID,
		UserID:         config.UserID,
		ApiKeyID:       config.ApiKeyID,
		Title:          config.Title,
		Width:          config.Width,
		Height:         config.Height,
		PrimaryColor:   config.PrimaryColor,
		MarkerColor:    config.MarkerColor,
		DefaultPeriod:  config.DefaultPeriod,
		ShowSearch:     config.ShowSearch,
		ShowFilters:    config.ShowFilters,
		ShowCategories: config.ShowCategories,
		AutoRefresh:    config.AutoRefresh,
		ZoomLevel:      config.ZoomLevel,
		CenterLat:      config.CenterLat,
		CenterLon:      config.CenterLon,
		CreatedAt:      config.CreatedAt,
		UpdatedAt:      config.UpdatedAt,
	}
}

// NewWidgetEvent maps a stored event into its public projection.
func NewWidgetEvent(event *Event) WidgetEvent {
	return WidgetEvent{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		EventDatetime: event.EventDatetime,
		Longitude:     event.Longitude,
		Latitude:      event.Latitude,
		Category:      event.Category,
		VenueName:     event.VenueName,
		VenueAddress:  event.VenueAddress,
		ImageURL:      event.ImageURL,
		TicketURL:     event.TicketURL,
	}
}
