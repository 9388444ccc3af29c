package dto

import (
	"time"

	"github.com/yeshu111999/RBAC/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Category       models.TaskCategory `json:"category"`
	OrganizationID uint64              `json:"organization_id"`
	CreatedByID    *uint64             `json:"created_by_id"`
	AssignedToID   *uint64             `json:"assigned_to_id"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	CreatedBy      *UserDTO            `json:"created_by,omitempty"`
	AssignedTo     *UserDTO            `json:"assigned_to,omitempty"`
}

// TaskListResponse represents a task list in API responses
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Count int       `json:"count"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Category:       task.Category,
		OrganizationID: task.OrganizationID,
		CreatedByID:    task.CreatedByID,
		AssignedToID:   task.AssignedToID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.CreatedBy != nil {
		createdBy := ToUserDTO(*task.CreatedBy)
		dto.CreatedBy = &createdBy
	}
	if task.AssignedTo != nil {
		assignedTo := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignedTo
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}
