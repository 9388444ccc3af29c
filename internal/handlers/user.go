package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/dto"
	apierrors "github.com/yeshu111999/RBAC/internal/errors"
	"github.com/yeshu111999/RBAC/internal/middleware"
	"github.com/yeshu111999/RBAC/internal/services"
)

// UserHandler coordinates user administration and profile handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Seed ensures the root organization and its default owner exist.
func (h *UserHandler) Seed(c *gin.Context) {
	result, err := h.userService.SeedOwner()
	if err != nil {
		apierrors.InternalError(c, "Failed to seed owner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner": dto.ToUserDTO(*result.Owner),
		"organization": gin.H{
			"id":   result.Organization.ID,
			"name": result.Organization.Name,
		},
	})
}

// ListUsers lists the users in the caller's organization.
func (h *UserHandler) ListUsers(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListForOrg(claims)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// CreateUser creates a new user in the caller's organization.
func (h *UserHandler) CreateUser(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateUserRequest struct {
		Email string    `json:"email" binding:"required,email"`
		Name  string    `json:"name" binding:"required"`
		Role  auth.Role `json:"role" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.userService.CreateForOrg(claims, services.CreateUserInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedUserDTO{
		User:     dto.ToUserDTO(*created.User),
		Password: created.Password,
	})
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.userService.GetMe(claims)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe updates the caller's own profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Name *string `json:"name"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(claims, services.UpdateProfileInput{
		Name: req.Name,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ChangePassword replaces the caller's password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(claims, req.CurrentPassword, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAllowedToManage):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrWrongCurrentPassword):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCallerHasNoOrg),
		errors.Is(err, services.ErrOrganizationMissing):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrEmailAndNameRequired),
		errors.Is(err, services.ErrCannotCreateOwner),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
