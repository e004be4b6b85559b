package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/erfnk/kanban-board-api/internal/errors"
	"github.com/erfnk/kanban-board-api/internal/middleware"
	"github.com/erfnk/kanban-board-api/internal/services"
)

type ColumnHandler struct {
	columns *services.ColumnService
}

func NewColumnHandler(columns *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

// CreateColumn appends a column to a board; board creator only
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateColumnRequest struct {
		Title string `json:"title" binding:"required,min=1,max=100"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	column, err := h.columns.CreateColumn(boardID, req.Title, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, column)
}

// UpdateColumn renames a column
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateColumnRequest struct {
		Title string `json:"title" binding:"required,min=1,max=100"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	column, err := h.columns.UpdateColumn(columnID, req.Title, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, column)
}

// DeleteColumn deletes a column and its tasks
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.columns.DeleteColumn(columnID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderColumns re-assigns dense positions following the request order
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ColumnOrder struct {
		ID       uint64 `json:"id" binding:"required"`
		Position int    `json:"position" binding:"gte=0"`
	}
	type ReorderColumnsRequest struct {
		ColumnOrders []ColumnOrder `json:"column_orders" binding:"required,dive"`
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	// list order is authoritative, the submitted positions are ignored
	orderedIDs := make([]uint64, len(req.ColumnOrders))
	for i, order := range req.ColumnOrders {
		orderedIDs[i] = order.ID
	}

	if err := h.columns.ReorderColumns(boardID, orderedIDs, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
