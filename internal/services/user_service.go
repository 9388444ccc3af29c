package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/audit"
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/constants"
	"github.com/yeshu111999/RBAC/internal/models"
	"github.com/yeshu111999/RBAC/internal/repository"
	"github.com/yeshu111999/RBAC/internal/utils"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrEmailAndNameRequired = errors.New("email and name are required")
	ErrCannotCreateOwner    = errors.New("cannot create additional OWNER users")
	ErrInvalidRole          = errors.New("invalid role")
	ErrCallerHasNoOrg       = errors.New("caller must belong to an organization to manage users")
	ErrNotAllowedToManage   = errors.New("you are not allowed to manage users")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Seed identity ensured on startup
const (
	seedOrgName       = "Root Org"
	seedOwnerEmail    = "owner@example.com"
	seedOwnerName     = "Default Owner"
	seedOwnerPassword = "password123"
)

// UserService handles org-scoped user administration and profile operations.
type UserService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	sink     *audit.Sink
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, sink *audit.Sink) *UserService {
	return &UserService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		sink:     sink,
	}
}

// SeedResult describes the records ensured by SeedOwner.
type SeedResult struct {
	Owner        *models.User
	Organization *models.Organization
}

// SeedOwner idempotently ensures the root organization and its OWNER user
// exist, resetting the owner's password and role to the known defaults.
func (s *UserService) SeedOwner() (*SeedResult, error) {
	org, err := s.orgRepo.FindByName(seedOrgName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find root organization: %w", err)
		}
		org = &models.Organization{Name: seedOrgName}
		if err := s.orgRepo.Create(org); err != nil {
			return nil, fmt.Errorf("failed to create root organization: %w", err)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedOwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	owner, err := s.userRepo.FindByEmail(seedOwnerEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find owner user: %w", err)
		}
		owner = &models.User{
			Email:          seedOwnerEmail,
			Name:           seedOwnerName,
			PasswordHash:   string(passwordHash),
			Role:           auth.RoleOwner,
			OrganizationID: &org.ID,
		}
		if err := s.userRepo.Create(owner); err != nil {
			return nil, fmt.Errorf("failed to create owner user: %w", err)
		}
	} else {
		owner.PasswordHash = string(passwordHash)
		owner.Role = auth.RoleOwner
		owner.OrganizationID = &org.ID
		if err := s.userRepo.Update(owner); err != nil {
			return nil, fmt.Errorf("failed to update owner user: %w", err)
		}
	}

	return &SeedResult{Owner: owner, Organization: org}, nil
}

// ListForOrg lists the users in the caller's organization, oldest first.
func (s *UserService) ListForOrg(claims *auth.Claims) ([]models.User, error) {
	if err := s.ensureCanManageUsers(claims); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByOrganization(*claims.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUserInput represents input for creating a user within an organization.
type CreateUserInput struct {
	Email string
	Name  string
	Role  auth.Role
}

// CreatedUser carries the new record and its one-time generated password.
type CreatedUser struct {
	User     *models.User
	Password string
}

// CreateForOrg creates a user in the caller's organization with a generated
// initial password.
func (s *UserService) CreateForOrg(claims *auth.Claims, input CreateUserInput) (*CreatedUser, error) {
	if err := s.ensureCanManageUsers(claims); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" {
		return nil, ErrEmailAndNameRequired
	}
	if input.Role == auth.RoleOwner {
		return nil, ErrCannotCreateOwner
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.orgRepo.FindByID(*claims.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationMissing
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	password, err := utils.GenerateRandomPassword(constants.GeneratedPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		Name:           name,
		PasswordHash:   string(passwordHash),
		Role:           input.Role,
		OrganizationID: claims.OrganizationID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sink.Append(claims, audit.ActionUserCreated, map[string]any{
		"newUserId":      user.ID,
		"newUserRole":    user.Role,
		"organizationId": *claims.OrganizationID,
	})

	return &CreatedUser{User: user, Password: password}, nil
}

// GetMe returns the caller's own user record.
func (s *UserService) GetMe(claims *auth.Claims) (*models.User, error) {
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput represents a partial profile update.
type UpdateProfileInput struct {
	Name *string
}

// UpdateProfile updates the caller's own profile.
func (s *UserService) UpdateProfile(claims *auth.Claims, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetMe(claims)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.sink.Append(claims, audit.ActionProfileUpdated, map[string]any{
		"userId": user.ID,
	})

	return user, nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *UserService) ChangePassword(claims *auth.Claims, currentPassword, newPassword string) error {
	user, err := s.GetMe(claims)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongCurrentPassword
	}

	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(passwordHash)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.sink.Append(claims, audit.ActionPasswordChanged, map[string]any{
		"userId": user.ID,
	})

	return nil
}

// ensureCanManageUsers re-checks the role and organization requirements even
// though the route declaration already demands MANAGE_USERS.
func (s *UserService) ensureCanManageUsers(claims *auth.Claims) error {
	if !claims.Role.Has(auth.PermManageUsers) {
		return ErrNotAllowedToManage
	}
	if claims.OrganizationID == nil {
		return ErrCallerHasNoOrg
	}
	return nil
}
