package models

import (
	"time"
)

type Certificate struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Issuer        string     `gorm:"size:200" json:"issuer"`
	CredentialID  string     `gorm:"size:200" json:"credential_id,omitempty"`
	CredentialURL string     `gorm:"type:text" json:"credential_url,omitempty"`
	Skills        string     `gorm:"type:text" json:"skills"` // Stored as JSON string
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
