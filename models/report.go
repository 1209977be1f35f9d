package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a problem report submitted by a student. UserID is nulled when
// the owning user is deleted, never for anonymity (anonymous users have
// their own row). DepartmentID is the assignment target, set during triage.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Status       ReportStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CategoryID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"category_id"`
	LocationID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID       *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DepartmentID *uuid.UUID   `gorm:"type:uuid" json:"department_id,omitempty"`
	UpdatedBy    *uuid.UUID   `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	User       *User       `gorm:"constraint:OnDelete:SET NULL;" json:"user,omitempty"`
	Category   Category    `json:"category,omitempty"`
	Location   Location    `json:"location,omitempty"`
	Department *Department `gorm:"constraint:OnDelete:SET NULL;" json:"department,omitempty"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
