package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/positions"
)

// ColumnService manages a board's column set and its ordering.
type ColumnService struct {
	db     *gorm.DB
	access *BoardAccessService
}

func NewColumnService(db *gorm.DB, access *BoardAccessService) *ColumnService {
	return &ColumnService{db: db, access: access}
}

// CreateColumn appends a column at the end of the board. Column creation is
// gated on the board creator, not on org role.
func (s *ColumnService) CreateColumn(boardID uint64, title string, actorID uint64) (*models.Column, error) {
	board, err := s.access.VerifyOwner(boardID, actorID)
	if err != nil {
		return nil, err
	}

	var existing []int
	err = s.db.Model(&models.Column{}).
		Where("board_id = ?", board.ID).
		Pluck("position", &existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load column positions: %w", err)
	}

	column := models.Column{
		BoardID:  board.ID,
		Title:    title,
		Position: positions.Next(existing),
	}
	if err := s.db.Create(&column).Error; err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return &column, nil
}

// UpdateColumn renames a column.
func (s *ColumnService) UpdateColumn(columnID uint64, title string, actorID uint64) (*models.Column, error) {
	column, access, err := s.resolveColumn(columnID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Permissions.CanManageColumns {
		return nil, ErrAccessDenied
	}

	column.Title = title
	if err := s.db.Save(column).Error; err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// DeleteColumn removes the column, its tasks and their comments in one
// transaction.
func (s *ColumnService) DeleteColumn(columnID, actorID uint64) error {
	column, access, err := s.resolveColumn(columnID, actorID)
	if err != nil {
		return err
	}
	if !access.Permissions.CanManageColumns {
		return ErrAccessDenied
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("column_id = ?", column.ID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", column.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Column{}, column.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

// ReorderColumns assigns dense positions 0..n-1 following the input order.
// Every id must belong to the board; the whole reorder is one transaction.
func (s *ColumnService) ReorderColumns(boardID uint64, orderedIDs []uint64, actorID uint64) error {
	access, err := s.access.Resolve(boardID, actorID)
	if err != nil {
		return err
	}
	if !access.Permissions.CanManageColumns {
		return ErrAccessDenied
	}

	if len(orderedIDs) == 0 {
		return nil
	}

	var count int64
	err = s.db.Model(&models.Column{}).
		Where("board_id = ? AND id IN ?", boardID, orderedIDs).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to verify columns: %w", err)
	}
	if count != int64(len(orderedIDs)) {
		return ErrColumnNotInBoard
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, placement := range positions.Dense(orderedIDs) {
			err := tx.Model(&models.Column{}).
				Where("id = ?", placement.ID).
				Update("position", placement.Position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}
	return nil
}

func (s *ColumnService) resolveColumn(columnID, actorID uint64) (*models.Column, *BoardAccess, error) {
	var column models.Column
	if err := s.db.First(&column, columnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrColumnNotFound
		}
		return nil, nil, fmt.Errorf("failed to load column: %w", err)
	}

	access, err := s.access.Resolve(column.BoardID, actorID)
	if err != nil {
		return nil, nil, err
	}
	return &column, access, nil
}
