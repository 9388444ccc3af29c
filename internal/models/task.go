package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "WORK"
	TaskCategoryPersonal TaskCategory = "PERSONAL"
	TaskCategoryOther    TaskCategory = "OTHER"
)

// Valid reports whether c is one of the enumerated categories.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryOther:
		return true
	}
	return false
}

// Task always belongs to exactly one organization; the organization is fixed
// at creation time and never reassigned.
type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	Category       TaskCategory   `gorm:"type:varchar(20);not null;default:'OTHER'" json:"category"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CreatedByID    *uint64        `gorm:"index" json:"created_by_id"`
	AssignedToID   *uint64        `gorm:"index" json:"assigned_to_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedBy    *User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo   *User        `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}
