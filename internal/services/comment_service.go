package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erfnk/kanban-board-api/internal/models"
	"github.com/erfnk/kanban-board-api/internal/permissions"
)

// CommentService manages task comments. Comments are mutable only by their
// author; org admins may additionally delete.
type CommentService struct {
	db     *gorm.DB
	access *BoardAccessService
}

func NewCommentService(db *gorm.DB, access *BoardAccessService) *CommentService {
	return &CommentService{db: db, access: access}
}

// CreateComment adds a comment to a task on a board the author may comment on.
func (s *CommentService) CreateComment(boardID, taskID uint64, content string, authorID uint64) (*models.TaskComment, error) {
	access, err := s.access.Resolve(boardID, authorID)
	if err != nil {
		return nil, err
	}
	if !access.Permissions.CanComment {
		return nil, ErrAccessDenied
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.BoardID != boardID {
		return nil, ErrTaskNotInBoard
	}

	comment := models.TaskComment{
		TaskID:   task.ID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.reloadComment(comment.ID)
}

// ListComments returns a task's comments oldest first.
func (s *CommentService) ListComments(boardID, taskID, actorID uint64) ([]models.TaskComment, error) {
	access, err := s.access.Resolve(boardID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.Permissions.CanView {
		return nil, ErrAccessDenied
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.BoardID != boardID {
		return nil, ErrTaskNotInBoard
	}

	comments := []models.TaskComment{}
	err = s.db.
		Preload("Author").
		Where("task_id = ?", task.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment; author only.
func (s *CommentService) UpdateComment(commentID uint64, content string, actorID uint64) (*models.TaskComment, error) {
	comment, err := s.findComment(commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID {
		return nil, ErrAccessDenied
	}

	comment.Content = content
	if err := s.db.Save(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return s.reloadComment(comment.ID)
}

// DeleteComment removes a comment. Non-authors need at least the admin role
// in the board's organization.
func (s *CommentService) DeleteComment(commentID, actorID uint64) error {
	comment, err := s.findComment(commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		task, err := s.findTask(comment.TaskID)
		if err != nil {
			return err
		}

		access, err := s.access.Resolve(task.BoardID, actorID)
		if err != nil {
			return err
		}
		if !permissions.HasMinRole(access.OrgRole, models.RoleAdmin) {
			return ErrAccessDenied
		}
	}

	if err := s.db.Delete(&models.TaskComment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) findTask(taskID uint64) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return &task, nil
}

func (s *CommentService) findComment(commentID uint64) (*models.TaskComment, error) {
	var comment models.TaskComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

func (s *CommentService) reloadComment(commentID uint64) (*models.TaskComment, error) {
	var comment models.TaskComment
	err := s.db.
		Preload("Author").
		First(&comment, commentID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}
	return &comment, nil
}
