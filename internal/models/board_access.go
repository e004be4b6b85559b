package models

import "time"

// BoardAccess tracks the last time a user opened a board; upserted on every
// authenticated read and used to rank the "recent" sidebar section.
type BoardAccess struct {
	BoardID        uint64    `gorm:"primarykey" json:"board_id"`
	UserID         uint64    `gorm:"primarykey" json:"user_id"`
	LastAccessedAt time.Time `gorm:"not null" json:"last_accessed_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
