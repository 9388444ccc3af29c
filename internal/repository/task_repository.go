package repository

import (
	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByScope retrieves the tasks visible under a resolved scope.
// The organization boundary is applied first; the viewer restriction, when
// present, only narrows within that boundary. Newest tasks come first.
func (r *GormTaskRepository) ListByScope(scope auth.TaskScope) ([]models.Task, error) {
	if scope.Empty {
		return []models.Task{}, nil
	}

	query := r.db.
		Preload("CreatedBy").
		Preload("AssignedTo").
		Where("tasks.organization_id = ?", scope.OrganizationID)

	if scope.MemberUserID != nil {
		query = query.Where("tasks.created_by_id = ? OR tasks.assigned_to_id = ?",
			*scope.MemberUserID, *scope.MemberUserID)
	}

	var tasks []models.Task
	if err := query.Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
