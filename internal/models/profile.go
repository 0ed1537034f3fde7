package models

import (
	"time"
)

// Profile is the single owner record rendered on the landing page.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Headline    string    `gorm:"size:255" json:"headline"`
	Bio         string    `gorm:"type:text" json:"bio"`
	AvatarURL   string    `gorm:"type:text" json:"avatar_url,omitempty"`
	ResumeURL   string    `gorm:"type:text" json:"resume_url,omitempty"`
	SocialLinks string    `gorm:"type:text" json:"social_links"` // Stored as JSON string
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
