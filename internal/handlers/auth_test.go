package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeshu111999/RBAC/internal/audit"
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/dto"
	apierrors "github.com/yeshu111999/RBAC/internal/errors"
	"github.com/yeshu111999/RBAC/internal/middleware"
	"github.com/yeshu111999/RBAC/internal/models"
	"github.com/yeshu111999/RBAC/internal/repository"
	"github.com/yeshu111999/RBAC/internal/services"
)

// AuthHandlerTestSuite covers the public routes: login and owner seeding.
type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.tokens = auth.NewTokenManager("test-secret", time.Hour)
	sink := audit.NewSink(nil)

	userRepo := repository.NewUserRepository(suite.db)
	orgRepo := repository.NewOrganizationRepository(suite.db)
	authHandler := NewAuthHandler(services.NewAuthService(userRepo, suite.tokens))
	userHandler := NewUserHandler(services.NewUserService(userRepo, orgRepo, sink))

	public := auth.Public()

	suite.router = gin.New()
	api := suite.router.Group("/api")
	api.POST("/auth/login", middleware.Authorize(suite.tokens, public), authHandler.Login)
	api.POST("/users/seed", middleware.Authorize(suite.tokens, public), userHandler.Seed)
	api.GET("/users/me", middleware.Authorize(suite.tokens, auth.Permissions()), userHandler.GetMe)
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) post(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) seedOwner() {
	w := suite.post("/api/users/seed", gin.H{})
	suite.Require().Equal(http.StatusOK, w.Code)
}

// Seeding is public and idempotent: calling it twice leaves a single root
// organization and a single owner.
func (suite *AuthHandlerTestSuite) TestSeed_Idempotent() {
	suite.seedOwner()
	suite.seedOwner()

	var orgCount, userCount int64
	suite.db.Model(&models.Organization{}).Count(&orgCount)
	suite.db.Model(&models.User{}).Count(&userCount)
	suite.Equal(int64(1), orgCount)
	suite.Equal(int64(1), userCount)
}

func (suite *AuthHandlerTestSuite) TestLogin_SeededOwner() {
	suite.seedOwner()

	w := suite.post("/api/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "password123",
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.AccessToken)
	suite.Equal("owner@example.com", resp.User.Email)
	suite.Equal(auth.RoleOwner, resp.User.Role)

	// The token's claims mirror the user record
	claims, err := suite.tokens.Verify(resp.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, claims.UserID)
	suite.Equal(auth.RoleOwner, claims.Role)
	suite.Require().NotNil(claims.OrganizationID)
	suite.Equal(resp.User.OrganizationID, claims.OrganizationID)
}

func (suite *AuthHandlerTestSuite) TestLogin_TokenGrantsAccess() {
	suite.seedOwner()

	w := suite.post("/api/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "password123",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Require().Equal(http.StatusOK, rec.Code)

	var me dto.UserDTO
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &me))
	suite.Equal("owner@example.com", me.Email)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.seedOwner()

	w := suite.post("/api/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	suite.Equal(apierrors.ErrCodeUnauthorized, apiErr.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownEmail() {
	w := suite.post("/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "password123",
	})

	// Same response as a wrong password; no account enumeration
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_MalformedBody() {
	w := suite.post("/api/auth/login", gin.H{"email": "not-an-email"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
