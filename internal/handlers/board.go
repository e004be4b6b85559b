package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/erfnk/kanban-board-api/internal/dto"
	apierrors "github.com/erfnk/kanban-board-api/internal/errors"
	"github.com/erfnk/kanban-board-api/internal/middleware"
	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/services"
)

type BoardHandler struct {
	boards *services.BoardService
}

func NewBoardHandler(boards *services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// CreateBoard creates a board with its default columns
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		Title          string                 `json:"title" binding:"required,min=1,max=100"`
		Description    string                 `json:"description" binding:"omitempty,max=500"`
		OrganizationID uint64                 `json:"organization_id" binding:"required"`
		Visibility     models.BoardVisibility `json:"visibility" binding:"omitempty,oneof=private public"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	board, err := h.boards.CreateBoard(services.CreateBoardInput{
		Title:          req.Title,
		Description:    req.Description,
		OrganizationID: req.OrganizationID,
		Visibility:     req.Visibility,
		CreatedByID:    userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, board)
}

// ListBoards returns the sidebar sections for an organization
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	organizationID, err := strconv.ParseUint(c.Query("organization_id"), 10, 64)
	if err != nil {
		apierrors.InvalidInput(c, "Invalid organization_id")
		return
	}

	list, err := h.boards.ListBoards(organizationID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardListDTO(list))
}

// GetBoard returns a board with its columns, tasks and the caller's
// permissions
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.boards.GetBoard(boardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(detail))
}

// GetBoardBySlug resolves a board by slug within an organization slug
func (h *BoardHandler) GetBoardBySlug(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	slug := c.Param("slug")
	organizationSlug := c.Query("organization_slug")
	if slug == "" || organizationSlug == "" {
		apierrors.InvalidInput(c, "slug and organization_slug are required")
		return
	}

	detail, err := h.boards.GetBoardBySlug(slug, organizationSlug, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(detail))
}

// UpdateBoard updates title, description or visibility; creator only
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateBoardRequest struct {
		Title       *string                 `json:"title" binding:"omitempty,min=1,max=100"`
		Description *string                 `json:"description" binding:"omitempty,max=500"`
		Visibility  *models.BoardVisibility `json:"visibility" binding:"omitempty,oneof=private public"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "")
		return
	}

	board, err := h.boards.UpdateBoard(boardID, userID, services.UpdateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// DeleteBoard hard-deletes a board and everything under it; creator only
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.boards.DeleteBoard(boardID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleFavorite flips the caller's favorite state for a board
func (h *BoardHandler) ToggleFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorited, err := h.boards.ToggleFavorite(boardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// parseIDParam parses a numeric path parameter, responding with 400 on
// failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.InvalidInput(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
