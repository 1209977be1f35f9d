package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location always belongs to an existing Department.
type Location struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NameAr       string    `gorm:"size:255;not null" json:"name_ar"`
	NameFr       string    `gorm:"size:255;not null" json:"name_fr"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"department_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Department Department `json:"department,omitempty"`
	Reports    []Report   `json:"reports,omitempty"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
