package models

import (
	"time"
)

// Column positions are zero-based per board and kept distinct by the
// reorder transaction; gaps are allowed, display order is position asc.
type Column struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	BoardID   uint64    `gorm:"not null;index" json:"board_id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}
