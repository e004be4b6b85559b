package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erfnk/kanban-board-api/internal/config"
	"github.com/erfnk/kanban-board-api/internal/constants"
	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/permissions"
	"github.com/erfnk/kanban-board-api/internal/slugs"
)

// defaultColumnTitles are created with every new board, at positions 0..2.
var defaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// BoardService owns the board aggregate: lifecycle, slug uniqueness, the
// default column set, access tracking, favorites and the sidebar listings.
type BoardService struct {
	db       *gorm.DB
	access   *BoardAccessService
	features config.Features
}

func NewBoardService(db *gorm.DB, access *BoardAccessService, features config.Features) *BoardService {
	return &BoardService{db: db, access: access, features: features}
}

// BoardDetail is a board plus the caller-specific view of it.
type BoardDetail struct {
	Board       models.Board
	Role        permissions.BoardRole
	Permissions permissions.BoardPermissions
	Favorited   bool
}

// BoardList groups boards into the three sidebar sections.
type BoardList struct {
	Favorites []models.Board
	Recent    []models.Board
	Shared    []models.Board
}

// CreateBoardInput carries validated input for CreateBoard.
type CreateBoardInput struct {
	Title          string
	Description    string
	OrganizationID uint64
	Visibility     models.BoardVisibility
	CreatedByID    uint64
}

// CreateBoard creates the board, its three default columns and the creator's
// access row in a single transaction. The caller must be a member of the
// organization.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if err := s.ensureMembership(input.OrganizationID, input.CreatedByID); err != nil {
		return nil, err
	}

	if input.Visibility == "" {
		input.Visibility = models.VisibilityPrivate
	}

	slug, err := s.uniqueSlug(input.OrganizationID, input.Title, 0)
	if err != nil {
		return nil, err
	}

	board := models.Board{
		Title:          input.Title,
		Slug:           slug,
		Description:    input.Description,
		Visibility:     input.Visibility,
		OrganizationID: input.OrganizationID,
		CreatedByID:    input.CreatedByID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}

		columns := make([]models.Column, 0, len(defaultColumnTitles))
		for i, title := range defaultColumnTitles {
			columns = append(columns, models.Column{
				BoardID:  board.ID,
				Title:    title,
				Position: i,
			})
		}
		if err := tx.Create(&columns).Error; err != nil {
			return err
		}

		access := models.BoardAccess{
			BoardID:        board.ID,
			UserID:         input.CreatedByID,
			LastAccessedAt: time.Now(),
		}
		return tx.Create(&access).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	var created models.Board
	err = s.db.
		Preload("Columns", orderColumns).
		Preload("CreatedBy").
		First(&created, board.ID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload board: %w", err)
	}
	return &created, nil
}

// GetBoard resolves access, loads the full board tree ordered by position
// and records the visit in board_accesses.
func (s *BoardService) GetBoard(boardID, userID uint64) (*BoardDetail, error) {
	access, err := s.access.Resolve(boardID, userID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(access, userID)
}

// GetBoardBySlug resolves a board by its slug within an organization slug,
// then behaves like GetBoard.
func (s *BoardService) GetBoardBySlug(slug, organizationSlug string, userID uint64) (*BoardDetail, error) {
	var board models.Board
	err := s.db.
		Joins("JOIN organizations ON organizations.id = boards.organization_id").
		Where("boards.slug = ? AND organizations.slug = ?", slug, organizationSlug).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board by slug: %w", err)
	}

	return s.GetBoard(board.ID, userID)
}

// UpdateBoardInput uses nil to mean "field not provided".
type UpdateBoardInput struct {
	Title       *string
	Description *string
	Visibility  *models.BoardVisibility
}

// UpdateBoard mutates board settings; creator only. A title change
// regenerates the slug with the same collision handling as creation.
func (s *BoardService) UpdateBoard(boardID, userID uint64, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.access.VerifyOwner(boardID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != board.Title {
		slug, err := s.uniqueSlug(board.OrganizationID, *input.Title, board.ID)
		if err != nil {
			return nil, err
		}
		board.Title = *input.Title
		board.Slug = slug
	}
	if input.Description != nil {
		board.Description = *input.Description
	}
	if input.Visibility != nil {
		board.Visibility = *input.Visibility
	}

	if err := s.db.Save(board).Error; err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard hard-deletes the board and everything under it in one
// transaction: comments, tasks, columns, favorites and access rows.
func (s *BoardService) DeleteBoard(boardID, userID uint64) error {
	board, err := s.access.VerifyOwner(boardID, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("board_id = ?", board.ID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&models.Column{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&models.BoardFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&models.BoardAccess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, board.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// ListBoards returns the sidebar sections for an organization the caller
// belongs to: favorited boards, recently accessed boards and public boards
// created by others.
func (s *BoardService) ListBoards(organizationID, userID uint64) (*BoardList, error) {
	if err := s.ensureMembership(organizationID, userID); err != nil {
		return nil, err
	}

	list := &BoardList{
		Favorites: []models.Board{},
		Recent:    []models.Board{},
		Shared:    []models.Board{},
	}

	err := s.visibleBoards(organizationID, userID).
		Joins("JOIN board_favorites ON board_favorites.board_id = boards.id AND board_favorites.user_id = ?", userID).
		Order("boards.updated_at DESC").
		Find(&list.Favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite boards: %w", err)
	}

	err = s.visibleBoards(organizationID, userID).
		Joins("LEFT JOIN board_accesses ON board_accesses.board_id = boards.id AND board_accesses.user_id = ?", userID).
		Order("board_accesses.last_accessed_at IS NULL").
		Order("board_accesses.last_accessed_at DESC").
		Order("boards.updated_at DESC").
		Limit(constants.RecentBoardsLimit).
		Find(&list.Recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent boards: %w", err)
	}

	if s.features.SharedBoardsEnabled {
		err = s.db.
			Preload("CreatedBy").
			Where("boards.organization_id = ?", organizationID).
			Where("boards.visibility = ?", models.VisibilityPublic).
			Where("boards.created_by_id <> ?", userID).
			Order("boards.updated_at DESC").
			Find(&list.Shared).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list shared boards: %w", err)
		}
	}

	return list, nil
}

// ToggleFavorite flips the favorite state and reports the new one.
func (s *BoardService) ToggleFavorite(boardID, userID uint64) (bool, error) {
	if _, err := s.access.Resolve(boardID, userID); err != nil {
		return false, err
	}

	var favorite models.BoardFavorite
	err := s.db.
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&favorite).Error
	if err == nil {
		if err := s.db.
			Where("board_id = ? AND user_id = ?", boardID, userID).
			Delete(&models.BoardFavorite{}).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to load favorite: %w", err)
	}

	favorite = models.BoardFavorite{BoardID: boardID, UserID: userID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	return true, nil
}

func (s *BoardService) loadDetail(access *BoardAccess, userID uint64) (*BoardDetail, error) {
	var board models.Board
	err := s.db.
		Preload("Columns", orderColumns).
		Preload("Columns.Tasks", orderTasks).
		Preload("Columns.Tasks.Assignee").
		Preload("Columns.Tasks.CreatedBy").
		Preload("CreatedBy").
		First(&board, access.Board.ID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	if err := s.touchAccess(board.ID, userID); err != nil {
		return nil, err
	}

	var favoriteCount int64
	err = s.db.Model(&models.BoardFavorite{}).
		Where("board_id = ? AND user_id = ?", board.ID, userID).
		Count(&favoriteCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite state: %w", err)
	}

	return &BoardDetail{
		Board:       board,
		Role:        access.Role,
		Permissions: access.Permissions,
		Favorited:   favoriteCount > 0,
	}, nil
}

// touchAccess upserts the caller's board_accesses row with the current time.
func (s *BoardService) touchAccess(boardID, userID uint64) error {
	access := models.BoardAccess{
		BoardID:        boardID,
		UserID:         userID,
		LastAccessedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_accessed_at"}),
	}).Create(&access).Error
	if err != nil {
		return fmt.Errorf("failed to record board access: %w", err)
	}
	return nil
}

func (s *BoardService) ensureMembership(organizationID, userID uint64) error {
	var count int64
	err := s.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if count == 0 {
		return ErrNotOrganizationMember
	}
	return nil
}

// uniqueSlug derives the slug from the title and appends a random suffix if
// another board in the organization already holds it. excludeBoardID lets an
// update keep its own slug.
func (s *BoardService) uniqueSlug(organizationID uint64, title string, excludeBoardID uint64) (string, error) {
	base := slugs.Generate(title)

	query := s.db.Model(&models.Board{}).
		Where("organization_id = ? AND slug = ?", organizationID, base)
	if excludeBoardID != 0 {
		query = query.Where("id <> ?", excludeBoardID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if count == 0 {
		return base, nil
	}

	suffix, err := slugs.RandomSuffix()
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

// visibleBoards scopes a query to boards the user may see in the sidebar:
// their own, plus public ones when sharing is enabled.
func (s *BoardService) visibleBoards(organizationID, userID uint64) *gorm.DB {
	query := s.db.
		Preload("CreatedBy").
		Where("boards.organization_id = ?", organizationID)

	if s.features.SharedBoardsEnabled {
		return query.Where(
			s.db.Where("boards.created_by_id = ?", userID).
				Or("boards.visibility = ?", models.VisibilityPublic),
		)
	}
	return query.Where("boards.created_by_id = ?", userID)
}

func orderColumns(db *gorm.DB) *gorm.DB {
	return db.Order("columns.position ASC")
}

func orderTasks(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.position ASC")
}
