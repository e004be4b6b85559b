package dto

import (
	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/permissions"
	"github.com/erfnk/kanban-board-api/internal/services"
)

// BoardDetailDTO is a full board plus the caller's role, capability set and
// favorite state.
type BoardDetailDTO struct {
	models.Board
	UserRole    permissions.BoardRole        `json:"user_role"`
	Permissions permissions.BoardPermissions `json:"permissions"`
	Favorited   bool                         `json:"favorited"`
}

// BoardListDTO groups boards into the sidebar sections.
type BoardListDTO struct {
	Favorites []models.Board `json:"favorites"`
	Recent    []models.Board `json:"recent"`
	Shared    []models.Board `json:"shared"`
}

// ToBoardDetailDTO converts a service BoardDetail to its response shape
func ToBoardDetailDTO(detail *services.BoardDetail) BoardDetailDTO {
	return BoardDetailDTO{
		Board:       detail.Board,
		UserRole:    detail.Role,
		Permissions: detail.Permissions,
		Favorited:   detail.Favorited,
	}
}

// ToBoardListDTO converts a service BoardList to its response shape
func ToBoardListDTO(list *services.BoardList) BoardListDTO {
	return BoardListDTO{
		Favorites: list.Favorites,
		Recent:    list.Recent,
		Shared:    list.Shared,
	}
}
