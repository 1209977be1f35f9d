package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin          Role = "admin"           // platform administrator
	RoleDepartmentHead Role = "department_head" // departmental staff
	RoleStudent        Role = "student"         // regular user
)

// NormalizeRole maps legacy role literals onto the canonical set.
// "department_admin" and "department_head" are the same capability tier.
func NormalizeRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDepartmentHead, Role("department_admin"):
		return RoleDepartmentHead
	default:
		return RoleStudent
	}
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:150;not null" json:"name"`
	Email        string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"type:text;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	IsAnonymous  bool       `gorm:"default:false" json:"is_anonymous"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	DepartmentID *uuid.UUID `gorm:"type:uuid" json:"department_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Department  *Department  `json:"department,omitempty"`
	Reports     []Report     `json:"reports,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
