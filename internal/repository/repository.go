package repository

import (
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByScope retrieves the tasks visible under a resolved scope,
	// ordered by creation time descending
	ListByScope(scope auth.TaskScope) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDInOrganization finds a user by ID scoped to an organization.
	// Used for assignee validation.
	FindByIDInOrganization(id, organizationID uint64) (*models.User, error)

	// ListByOrganization lists users in an organization, oldest first
	ListByOrganization(organizationID uint64) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByName finds an organization by name
	FindByName(name string) (*models.Organization, error)
}
