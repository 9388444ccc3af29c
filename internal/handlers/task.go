package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeshu111999/RBAC/internal/dto"
	apierrors "github.com/yeshu111999/RBAC/internal/errors"
	"github.com/yeshu111999/RBAC/internal/middleware"
	"github.com/yeshu111999/RBAC/internal/models"
	"github.com/yeshu111999/RBAC/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks visible to the current user, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.List(claims)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// GetTask returns a single task within the caller's organization.
func (h *TaskHandler) GetTask(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(claims, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task in the caller's organization.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title            string              `json:"title" binding:"required"`
		Description      string              `json:"description"`
		Status           models.TaskStatus   `json:"status"`
		Category         models.TaskCategory `json:"category"`
		AssignedToUserID *uint64             `json:"assigned_to_user_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(claims, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Category:     req.Category,
		AssignedToID: req.AssignedToUserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw JSON is parsed to tell an
// absent field from an explicit null (which clears the assignee).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if title, ok := rawReq["title"]; ok {
		titleStr, ok := title.(string)
		if !ok {
			apierrors.BadRequest(c, "title must be a string")
			return
		}
		input.Title = &titleStr
	}
	if description, ok := rawReq["description"]; ok {
		descStr, ok := description.(string)
		if !ok {
			apierrors.BadRequest(c, "description must be a string")
			return
		}
		input.Description = &descStr
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, ok := status.(string)
		if !ok {
			apierrors.BadRequest(c, "status must be a string")
			return
		}
		taskStatus := models.TaskStatus(statusStr)
		input.Status = &taskStatus
	}
	if category, ok := rawReq["category"]; ok {
		categoryStr, ok := category.(string)
		if !ok {
			apierrors.BadRequest(c, "category must be a string")
			return
		}
		taskCategory := models.TaskCategory(categoryStr)
		input.Category = &taskCategory
	}
	if assignee, ok := rawReq["assigned_to_user_id"]; ok {
		if assignee == nil {
			input.ClearAssignee = true
		} else {
			assigneeNum, ok := assignee.(float64)
			if !ok || assigneeNum < 0 {
				apierrors.BadRequest(c, "assigned_to_user_id must be a user id or null")
				return
			}
			assigneeID := uint64(assigneeNum)
			input.AssignedToID = &assigneeID
		}
	}

	task, err := h.taskService.Update(claims, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task within the caller's organization.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(claims, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCrossOrganization),
		errors.Is(err, services.ErrViewerCannotManage):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoOrganization),
		errors.Is(err, services.ErrOrganizationMissing),
		errors.Is(err, services.ErrCreatorMissing),
		errors.Is(err, services.ErrAssigneeNotInOrg):
		apierrors.InvalidState(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskCategory):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
