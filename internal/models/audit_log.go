package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "ADMIN_LOGIN", "UPDATE_PROJECT", "RESET_ANALYTICS"
	EntityID  string    `gorm:"size:100" json:"entity_id"`      // ID or slug of the object affected
	Details   string    `gorm:"type:text" json:"details"`       // JSON or text description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
