package main

import (
	"github.com/gin-gonic/gin"

	"github.com/yeshu111999/RBAC/internal/audit"
	"github.com/yeshu111999/RBAC/internal/auth"
	"github.com/yeshu111999/RBAC/internal/config"
	"github.com/yeshu111999/RBAC/internal/database"
	"github.com/yeshu111999/RBAC/internal/handlers"
	"github.com/yeshu111999/RBAC/internal/logs"
	"github.com/yeshu111999/RBAC/internal/middleware"
	"github.com/yeshu111999/RBAC/internal/repository"
	"github.com/yeshu111999/RBAC/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logs.Init(logs.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logs.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logs.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Process-wide audit sink, passed explicitly to every component that
	// records actions
	sink := audit.NewSink(logs.Logger)

	// Token issuer/verifier
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo, orgRepo, sink)
	userService := services.NewUserService(userRepo, orgRepo, sink)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	auditHandler := handlers.NewAuditHandler(sink)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Route declarations: each operation carries exactly one requirement,
	// either Public or a required permission set
	public := auth.Public()
	authenticated := auth.Permissions()

	// Health check endpoint
	r.GET("/health", middleware.Authorize(tokens, public), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/login", middleware.Authorize(tokens, public), authHandler.Login)

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", middleware.Authorize(tokens, auth.Permissions(auth.PermViewTasks)), taskHandler.ListTasks)
			tasks.POST("", middleware.Authorize(tokens, auth.Permissions(auth.PermManageTasks)), taskHandler.CreateTask)
			tasks.GET("/:id", middleware.Authorize(tokens, auth.Permissions(auth.PermViewTasks)), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.Authorize(tokens, auth.Permissions(auth.PermManageTasks)), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.Authorize(tokens, auth.Permissions(auth.PermManageTasks)), taskHandler.DeleteTask)
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("/seed", middleware.Authorize(tokens, public), userHandler.Seed)
			users.GET("", middleware.Authorize(tokens, auth.Permissions(auth.PermManageUsers)), userHandler.ListUsers)
			users.POST("", middleware.Authorize(tokens, auth.Permissions(auth.PermManageUsers)), userHandler.CreateUser)
			users.GET("/me", middleware.Authorize(tokens, authenticated), userHandler.GetMe)
			users.PUT("/me", middleware.Authorize(tokens, authenticated), userHandler.UpdateMe)
			users.POST("/change-password", middleware.Authorize(tokens, authenticated), userHandler.ChangePassword)
		}

		// Audit log (Owner/Admin via permission)
		api.GET("/audit-log", middleware.Authorize(tokens, auth.Permissions(auth.PermViewAuditLog)), auditHandler.GetAuditLog)
	}

	// Start server
	logs.Logger.Infof("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		logs.Logger.Fatalf("Failed to start server: %v", err)
	}
}
