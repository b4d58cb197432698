package models

import (
	"time"

	"github.com/google/uuid"
)

// Setting holds one row of per-user preferences. Saving overwrites both
// fields unconditionally; an omitted field is stored as NULL.
type Setting struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	APIKey    *string   `gorm:"column:api_key;type:text" json:"apiKey,omitempty"`
	GPTLink   *string   `gorm:"column:gpt_link;type:text" json:"gptLink,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
