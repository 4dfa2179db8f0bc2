package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Name      *string   `json:"name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	ApiKeys       []ApiKey       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Events        []Event        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WidgetConfigs []WidgetConfig `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
