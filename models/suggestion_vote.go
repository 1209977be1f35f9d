package models

import (
	"time"

	"github.com/google/uuid"
)

// SuggestionVote is one vote per (suggestion, user); the composite primary
// key enforces uniqueness at the store level.
type SuggestionVote struct {
	SuggestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"suggestion_id"`
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Suggestion Suggestion `gorm:"constraint:OnDelete:CASCADE;" json:"suggestion,omitempty"`
	User       User       `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}
