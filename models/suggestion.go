package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion targets a department. The vote count is always derived from
// SuggestionVote rows, never stored on this row.
type Suggestion struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text;not null" json:"description"`
	Status       SuggestionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DepartmentID uuid.UUID        `gorm:"type:uuid;not null;index" json:"department_id"`
	UserID       *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UpdatedBy    *uuid.UUID       `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	User       *User            `gorm:"constraint:OnDelete:SET NULL;" json:"user,omitempty"`
	Department Department       `json:"department,omitempty"`
	Votes      []SuggestionVote `json:"votes,omitempty"`
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
