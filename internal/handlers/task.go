package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/erfnk/kanban-board-api/internal/errors"
	"github.com/erfnk/kanban-board-api/internal/middleware"
	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/services"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask appends a task to a column
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ColumnID    uint64              `json:"column_id" binding:"required"`
		Title       string              `json:"title" binding:"required,min=1,max=200"`
		Description string              `json:"description" binding:"omitempty,max=2000"`
		Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
		AssigneeID  *uint64             `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	task, err := h.tasks.CreateTask(services.CreateTaskInput{
		BoardID:     boardID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		CreatedByID: userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update. Fields are detected from the raw JSON
// so null clears the assignee while absence leaves it alone.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	var input services.UpdateTaskInput

	if title, ok := rawReq["title"].(string); ok {
		if len(title) == 0 || len(title) > 200 {
			apierrors.InvalidInput(c, "title must be between 1 and 200 characters")
			return
		}
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		if len(description) > 2000 {
			apierrors.InvalidInput(c, "description must be at most 2000 characters")
			return
		}
		input.Description = &description
	}
	if priority, ok := rawReq["priority"].(string); ok {
		switch models.TaskPriority(priority) {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
			p := models.TaskPriority(priority)
			input.Priority = &p
		default:
			apierrors.InvalidInput(c, "invalid priority")
			return
		}
	}
	if raw, ok := rawReq["assignee_id"]; ok {
		if raw == nil {
			input.ClearAssignee = true
		} else if assignee, ok := raw.(float64); ok && assignee > 0 {
			id := uint64(assignee)
			input.AssigneeID = &id
		} else {
			apierrors.InvalidInput(c, "invalid assignee_id")
			return
		}
	}
	if raw, ok := rawReq["column_id"]; ok {
		column, ok := raw.(float64)
		if !ok || column <= 0 {
			apierrors.InvalidInput(c, "invalid column_id")
			return
		}
		id := uint64(column)
		input.ColumnID = &id
	}

	task, err := h.tasks.UpdateTask(taskID, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and its comments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(taskID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MoveTask relocates a task to a column/position on the same board
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		TargetColumnID uint64 `json:"target_column_id" binding:"required"`
		Position       int    `json:"position" binding:"gte=0"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	task, err := h.tasks.MoveTask(taskID, req.TargetColumnID, req.Position, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReorderTasks re-assigns dense positions within a column following the
// request order
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type TaskOrder struct {
		ID       uint64 `json:"id" binding:"required"`
		Position int    `json:"position" binding:"gte=0"`
	}
	type ReorderTasksRequest struct {
		TaskOrders []TaskOrder `json:"task_orders" binding:"required,dive"`
	}

	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	// list order is authoritative, the submitted positions are ignored
	orderedIDs := make([]uint64, len(req.TaskOrders))
	for i, order := range req.TaskOrders {
		orderedIDs[i] = order.ID
	}

	if err := h.tasks.ReorderTasks(columnID, orderedIDs, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
