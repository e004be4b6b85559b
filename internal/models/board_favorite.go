package models

import "time"

// BoardFavorite existence means the board is favorited by the user.
type BoardFavorite struct {
	BoardID   uint64    `gorm:"primarykey" json:"board_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
