package models

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque cookie id to a user with a fixed expiry window.
// Expired rows are not purged; lookups filter on expires_at instead.
type Session struct {
	ID        string    `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
