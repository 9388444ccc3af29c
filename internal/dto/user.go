package dto

import (
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           auth.Role `json:"role"`
	OrganizationID *uint64   `json:"organization_id"`
}

// CreatedUserDTO carries a freshly created user with its one-time password
type CreatedUserDTO struct {
	User     UserDTO `json:"user"`
	Password string  `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
