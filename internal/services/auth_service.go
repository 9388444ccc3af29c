package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/models"
	"github.com/yeshu111999/RBAC/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFailedToSignToken  = errors.New("failed to sign token")
)

// AuthService verifies credentials and issues tokens. Everything past this
// point trusts the claims payload verbatim once the signature has been
// validated.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginResult carries the signed token and the public user info.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

// Login verifies email/password and returns a signed token whose claims
// mirror the user record.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.OrganizationID)
	if err != nil {
		return nil, ErrFailedToSignToken
	}

	return &LoginResult{
		AccessToken: token,
		User:        user,
	}, nil
}
