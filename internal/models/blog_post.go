package models

import (
	"time"
)

type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"unique;not null;size:200;index" json:"slug"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Body        string     `gorm:"type:text" json:"body"`
	Tags        string     `gorm:"type:text" json:"tags"` // Stored as JSON string
	CoverURL    string     `gorm:"type:text" json:"cover_url,omitempty"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LinkedInPost is an imported external post shown on the feed: a pointer plus
// display metadata, never edited after import.
type LinkedInPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Title     string    `gorm:"size:255" json:"title"`
	Excerpt   string    `gorm:"type:text" json:"excerpt"`
	PostedAt  time.Time `json:"posted_at"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
