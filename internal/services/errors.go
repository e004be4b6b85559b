package services

import "errors"

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrAccessDenied          = errors.New("access denied")
	ErrNotOrganizationMember = errors.New("user is not a member of the organization")

	ErrColumnNotInBoard = errors.New("column does not belong to the board")
	ErrTaskNotInBoard   = errors.New("task does not belong to the board")
	ErrTaskNotInColumn  = errors.New("task does not belong to the column")
)
