package models

import (
	"time"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        string    `gorm:"type:text" json:"tags"` // Stored as JSON string
	RepoURL     string    `gorm:"type:text" json:"repo_url,omitempty"`
	DemoURL     string    `gorm:"type:text" json:"demo_url,omitempty"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
	Featured    bool      `gorm:"default:false;index" json:"featured"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
