package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/erfnk/kanban-board-api/internal/errors"
	"github.com/erfnk/kanban-board-api/internal/middleware"
	"github.com/erfnk/kanban-board-api/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// ListComments returns a task's comments oldest first
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(boardID, taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment adds a comment to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		TaskID  uint64 `json:"task_id" binding:"required"`
		Content string `json:"content" binding:"required,min=1,max=1000"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	comment, err := h.comments.CreateComment(boardID, req.TaskID, req.Content, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits a comment; author only
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Content string `json:"content" binding:"required,min=1,max=1000"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	comment, err := h.comments.UpdateComment(commentID, req.Content, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment; author or org admin
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(commentID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
