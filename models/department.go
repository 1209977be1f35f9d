package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department names are bilingual; each language column is globally unique.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NameAr    string    `gorm:"size:255;not null;uniqueIndex" json:"name_ar"`
	NameFr    string    `gorm:"size:255;not null;uniqueIndex" json:"name_fr"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Users       []User       `json:"users,omitempty"`
	Locations   []Location   `json:"locations,omitempty"`
	Reports     []Report     `json:"reports,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
