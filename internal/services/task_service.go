package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/audit"
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/models"
	"github.com/yeshu111999/RBAC/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrCrossOrganization   = errors.New("cannot access tasks from another organization")
	ErrViewerCannotManage  = errors.New("VIEWER cannot manage tasks")
	ErrNoOrganization      = errors.New("user must belong to an organization to manage tasks")
	ErrOrganizationMissing = errors.New("organization not found")
	ErrCreatorMissing      = errors.New("user not found")
	ErrAssigneeNotInOrg    = errors.New("assigned user not found in your organization")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskCategory = errors.New("invalid task category")
)

// TaskService enforces per-task authorization on top of the data layer:
// organization scoping on reads, ownership and same-organization checks on
// writes. Route-level permission checks happen before any of these methods
// run; the role checks here are deliberately redundant.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	sink     *audit.Sink
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, sink *audit.Sink) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		orgRepo:  orgRepo,
		sink:     sink,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       models.TaskStatus
	Category     models.TaskCategory
	AssignedToID *uint64
}

// UpdateTaskInput represents a partial task update. Nil pointer fields are
// left untouched; ClearAssignee distinguishes "unassign" from "not provided".
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Category      *models.TaskCategory
	AssignedToID  *uint64
	ClearAssignee bool
}

// Create creates a task inside the principal's organization, with the
// organization and creator fixed at creation time.
func (s *TaskService) Create(claims *auth.Claims, input CreateTaskInput) (*models.Task, error) {
	if claims.OrganizationID == nil {
		return nil, ErrNoOrganization
	}
	if claims.Role == auth.RoleViewer {
		return nil, ErrViewerCannotManage
	}
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.orgRepo.FindByID(*claims.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationMissing
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorMissing
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.AssignedToID != nil {
		if err := s.validateAssignee(*input.AssignedToID, *claims.OrganizationID); err != nil {
			return nil, err
		}
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Category == "" {
		input.Category = models.TaskCategoryOther
	}
	if !input.Category.Valid() {
		return nil, ErrInvalidTaskCategory
	}

	creatorID := claims.UserID
	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		Category:       input.Category,
		OrganizationID: *claims.OrganizationID,
		CreatedByID:    &creatorID,
		AssignedToID:   input.AssignedToID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.sink.Append(claims, audit.ActionTaskCreated, map[string]any{
		"taskId": task.ID,
		"title":  task.Title,
		"orgId":  task.OrganizationID,
	})

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "AssignedTo", "Organization")
}

// List returns the tasks visible to the principal, newest first.
// Organization scoping is absolute; VIEWER is further restricted to tasks
// they created or are assigned to.
func (s *TaskService) List(claims *auth.Claims) ([]models.Task, error) {
	scope := auth.ResolveScope(claims)

	tasks, err := s.taskRepo.ListByScope(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	s.sink.Append(claims, audit.ActionTaskListView, map[string]any{
		"count": len(tasks),
		"scope": scope.Branch(),
	})

	return tasks, nil
}

// Get loads a single task with relations and enforces the organization
// boundary.
func (s *TaskService) Get(claims *auth.Claims, taskID uint64) (*models.Task, error) {
	return s.fetchOwned(claims, taskID, "CreatedBy", "AssignedTo", "Organization")
}

// Update applies a partial update to a task inside the principal's
// organization. Absent fields are untouched; the task's organization is
// never changed.
func (s *TaskService) Update(claims *auth.Claims, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if claims.Role == auth.RoleViewer {
		return nil, ErrViewerCannotManage
	}

	task, err := s.fetchOwned(claims, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, ErrInvalidTaskCategory
		}
		task.Category = *input.Category
	}
	if input.ClearAssignee {
		task.AssignedToID = nil
	} else if input.AssignedToID != nil {
		if err := s.validateAssignee(*input.AssignedToID, task.OrganizationID); err != nil {
			return nil, err
		}
		task.AssignedToID = input.AssignedToID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.sink.Append(claims, audit.ActionTaskUpdated, map[string]any{
		"taskId":   task.ID,
		"status":   task.Status,
		"category": task.Category,
	})

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "AssignedTo", "Organization")
}

// Delete removes a task inside the principal's organization.
func (s *TaskService) Delete(claims *auth.Claims, taskID uint64) error {
	if claims.Role == auth.RoleViewer {
		return ErrViewerCannotManage
	}

	task, err := s.fetchOwned(claims, taskID)
	if err != nil {
		return err
	}

	// Capture before removal for the audit trail
	deletedID, deletedTitle := task.ID, task.Title

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.sink.Append(claims, audit.ActionTaskDeleted, map[string]any{
		"taskId": deletedID,
		"title":  deletedTitle,
	})

	return nil
}

// fetchOwned loads a task and enforces the organization boundary for every
// single-task access, regardless of role. The existence check comes first,
// then the organization check: probing a task from another organization
// yields ErrCrossOrganization, not ErrTaskNotFound.
func (s *TaskService) fetchOwned(claims *auth.Claims, taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if claims.OrganizationID == nil || task.OrganizationID != *claims.OrganizationID {
		return nil, ErrCrossOrganization
	}

	return task, nil
}

// validateAssignee verifies the assignee exists within the organization.
// Assignment across organizations is never permitted.
func (s *TaskService) validateAssignee(userID, organizationID uint64) error {
	if _, err := s.userRepo.FindByIDInOrganization(userID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotInOrg
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}
