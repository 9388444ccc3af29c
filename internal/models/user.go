package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/auth"
)

type User struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	Role           auth.Role      `gorm:"type:varchar(20);not null;default:'VIEWER'" json:"role"`
	OrganizationID *uint64        `gorm:"index" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedTasks []Task        `gorm:"foreignKey:CreatedByID" json:"-"`
}
