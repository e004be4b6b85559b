package models

import (
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task positions are zero-based per column. BoardID is denormalized so the
// access resolver and the cross-board move check don't need a join.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	BoardID     uint64       `gorm:"not null;index" json:"board_id"`
	ColumnID    uint64       `gorm:"not null;index" json:"column_id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:varchar(2000)" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Position    int          `gorm:"not null" json:"position"`
	AssigneeID  *uint64      `json:"assignee_id"`
	CreatedByID uint64       `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Board     Board         `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Column    Column        `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignee  *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatedBy User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Comments  []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
