package models

import (
	"time"
)

// ApiKey gates public, unauthenticated widget access. The Key column is the
// opaque token embedded on third-party sites.
type ApiKey struct {
	ID             string      `json:"id" gorm:"primaryKey;size:191"`
	UserID         string      `json:"user_id" gorm:"not null;size:191"`
	Key            string      `json:"key" gorm:"uniqueIndex;not null;size:255"`
	Name           string      `json:"name" gorm:"not null;size:255;default:'API Key'"`
	AllowedDomains StringSlice `json:"allowed_domains" gorm:"type:json"`
	UsageCount     int         `json:"usage_count" gorm:"default:0;not null"`
	CreatedAt      time.Time   `json:"created_at"`
	LastUsedAt     *time.Time  `json:"last_used_at"`

	User          User           `json:"-" gorm:"foreignKey:UserID"`
	WidgetConfigs []WidgetConfig `json:"-" gorm:"foreignKey:ApiKeyID;constraint:OnDelete:CASCADE"`
}
