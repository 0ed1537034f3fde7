package models

import (
	"time"
)

type TimelineEvent struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Organization string     `gorm:"size:200" json:"organization"`
	Kind         string     `gorm:"size:50;index" json:"kind"` // e.g. "education", "work", "award"
	Description  string     `gorm:"type:text" json:"description"`
	Achievements string     `gorm:"type:text" json:"achievements"` // Stored as JSON string
	StartAt      time.Time  `json:"start_at"`
	EndAt        *time.Time `json:"end_at,omitempty"` // Nil means ongoing
	SortOrder    int        `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
