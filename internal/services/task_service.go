package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/positions"
)

// TaskService owns task lifecycle and the move/reorder transaction engine.
// Position values are never taken from client input directly; they go
// through the allocator or the shift-then-relocate transaction.
type TaskService struct {
	db     *gorm.DB
	access *BoardAccessService
}

func NewTaskService(db *gorm.DB, access *BoardAccessService) *TaskService {
	return &TaskService{db: db, access: access}
}

// CreateTaskInput carries validated input for CreateTask.
type CreateTaskInput struct {
	BoardID     uint64
	ColumnID    uint64
	Title       string
	Description string
	Priority    models.TaskPriority
	AssigneeID  *uint64
	CreatedByID uint64
}

// CreateTask appends a task at the end of the column.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	access, err := s.access.Resolve(input.BoardID, input.CreatedByID)
	if err != nil {
		return nil, err
	}
	if !access.Permissions.CanCreateTasks {
		return nil, ErrAccessDenied
	}

	var column models.Column
	if err := s.db.First(&column, input.ColumnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to load column: %w", err)
	}
	if column.BoardID != input.BoardID {
		return nil, ErrColumnNotInBoard
	}

	var existing []int
	err = s.db.Model(&models.Task{}).
		Where("column_id = ?", column.ID).
		Pluck("position", &existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load task positions: %w", err)
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	task := models.Task{
		BoardID:     input.BoardID,
		ColumnID:    input.ColumnID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Position:    positions.Next(existing),
		AssigneeID:  input.AssigneeID,
		CreatedByID: input.CreatedByID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reloadTask(task.ID)
}

// UpdateTaskInput uses nil to mean "field not provided".
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	AssigneeID    *uint64
	ClearAssignee bool
	ColumnID      *uint64
}

func (in UpdateTaskInput) onlyColumnChange() bool {
	return in.ColumnID != nil &&
		in.Title == nil && in.Description == nil && in.Priority == nil &&
		in.AssigneeID == nil && !in.ClearAssignee
}

// UpdateTask applies a partial update. Editors with CanEditAnyTask may change
// anything; an assignee without it may still move their own task to another
// column, but nothing else.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, access, err := s.resolveTask(taskID, actorID)
	if err != nil {
		return nil, err
	}

	if !access.Permissions.CanEditAnyTask {
		ownTask := task.AssigneeID != nil && *task.AssigneeID == actorID
		if !(access.Permissions.CanUpdateOwnTask && ownTask && input.onlyColumnChange()) {
			return nil, ErrAccessDenied
		}
	}

	if input.ColumnID != nil {
		var column models.Column
		if err := s.db.First(&column, *input.ColumnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrColumnNotFound
			}
			return nil, fmt.Errorf("failed to load column: %w", err)
		}
		if column.BoardID != task.BoardID {
			return nil, ErrColumnNotInBoard
		}
		task.ColumnID = column.ID
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.reloadTask(task.ID)
}

// DeleteTask removes the task and its comments.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, access, err := s.resolveTask(taskID, actorID)
	if err != nil {
		return err
	}
	if !access.Permissions.CanEditAnyTask {
		return ErrAccessDenied
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, task.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MoveTask relocates a task to (targetColumn, position) within the same
// board. Inside one transaction it first shifts every task in the target
// column at or after the slot up by one, then updates the moved row; the
// shift runs first so a unique (column, position) constraint can never trip.
// The source column keeps its gap; ordering only needs relative comparison.
func (s *TaskService) MoveTask(taskID, targetColumnID uint64, position int, actorID uint64) (*models.Task, error) {
	task, access, err := s.resolveTask(taskID, actorID)
	if err != nil {
		return nil, err
	}

	ownTask := task.AssigneeID != nil && *task.AssigneeID == actorID
	if !access.Permissions.CanMoveAnyTask && !(access.Permissions.CanUpdateOwnTask && ownTask) {
		return nil, ErrAccessDenied
	}

	var target models.Column
	if err := s.db.First(&target, targetColumnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to load target column: %w", err)
	}
	if target.BoardID != task.BoardID {
		return nil, ErrColumnNotInBoard
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Task{}).
			Where("column_id = ? AND position >= ?", target.ID, position).
			UpdateColumn("position", gorm.Expr("position + ?", 1)).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"column_id": target.ID,
				"position":  position,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return s.reloadTask(task.ID)
}

// ReorderTasks assigns dense positions 0..n-1 within a column following the
// input order. Every id must belong to the column.
func (s *TaskService) ReorderTasks(columnID uint64, orderedIDs []uint64, actorID uint64) error {
	var column models.Column
	if err := s.db.First(&column, columnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to load column: %w", err)
	}

	access, err := s.access.Resolve(column.BoardID, actorID)
	if err != nil {
		return err
	}
	if !access.Permissions.CanMoveAnyTask {
		return ErrAccessDenied
	}

	if len(orderedIDs) == 0 {
		return nil
	}

	var count int64
	err = s.db.Model(&models.Task{}).
		Where("column_id = ? AND id IN ?", columnID, orderedIDs).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to verify tasks: %w", err)
	}
	if count != int64(len(orderedIDs)) {
		return ErrTaskNotInColumn
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, placement := range positions.Dense(orderedIDs) {
			err := tx.Model(&models.Task{}).
				Where("id = ?", placement.ID).
				Update("position", placement.Position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

func (s *TaskService) resolveTask(taskID, actorID uint64) (*models.Task, *BoardAccess, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to load task: %w", err)
	}

	access, err := s.access.Resolve(task.BoardID, actorID)
	if err != nil {
		return nil, nil, err
	}
	return &task, access, nil
}

func (s *TaskService) reloadTask(taskID uint64) (*models.Task, error) {
	var task models.Task
	err := s.db.
		Preload("Assignee").
		Preload("CreatedBy").
		Preload("Column").
		First(&task, taskID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return &task, nil
}
