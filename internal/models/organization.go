package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization forms a tree via ParentID. In practice the hierarchy is two
// levels deep, but the parent relation allows arbitrary depth.
type Organization struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *uint64        `gorm:"index" json:"parent_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Parent   *Organization  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Organization `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Users    []User         `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
	Tasks    []Task         `gorm:"foreignKey:OrganizationID" json:"tasks,omitempty"`
}
