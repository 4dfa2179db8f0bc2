package models

import (
	"time"
)

type WidgetConfig struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	UserID         string    `json:"user_id" gorm:"not null;size:191"`
	ApiKeyID       string    `json:"api_key_id" gorm:"not null;size:191"`
	Title          string    `json:"title" gorm:"not null;size:255"`
	Width          string    `json:"width" gorm:"default:'100%';not null;size:50"`
	Height         string    `json:"height" gorm:"default:'400px';not null;size:50"`
	PrimaryColor   string    `json:"primary_color" gorm:"default:'#007bff';not null;size:7"`
	MarkerColor    string    `json:"marker_color" gorm:"default:'#ff0000';not null;size:7"`
	DefaultPeriod  string    `json:"default_period" gorm:"default:'all';not null;size:20"` // today, tomorrow, week, month, all
	ShowSearch     bool      `json:"show_search" gorm:"default:true;not null"`
	ShowFilters    bool      `json:"show_filters" gorm:"default:true;not null"`
	ShowCategories bool      `json:"show_categories" gorm:"default:true;not null"`
	AutoRefresh    bool      `json:"auto_refresh" gorm:"default:false;not null"`
	ZoomLevel      int       `json:"zoom_level" gorm:"default:10;not null"`
	CenterLat      *float64  `json:"center_lat"`
	CenterLon      *float64  `json:"center_lon"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	ApiKey ApiKey `json:"-" gorm:"foreignKey:ApiKeyID"`
}
