package models

import (
	"time"
)

type BoardVisibility string

const (
	VisibilityPrivate BoardVisibility = "private"
	VisibilityPublic  BoardVisibility = "public"
)

// Board is hard-deleted together with its columns, tasks, favorites and
// access rows; the cascade runs inside the board service transaction.
type Board struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	Title          string          `gorm:"type:varchar(100);not null" json:"title"`
	Slug           string          `gorm:"type:varchar(70);not null;uniqueIndex:idx_boards_org_slug" json:"slug"`
	Description    string          `gorm:"type:varchar(500)" json:"description"`
	Visibility     BoardVisibility `gorm:"type:varchar(10);not null;default:'private'" json:"visibility"`
	OrganizationID uint64          `gorm:"not null;uniqueIndex:idx_boards_org_slug" json:"organization_id"`
	CreatedByID    uint64          `gorm:"not null" json:"created_by_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Organization Organization    `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedBy    User            `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Columns      []Column        `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
	Favorites    []BoardFavorite `gorm:"foreignKey:BoardID" json:"favorites,omitempty"`
	Accesses     []BoardAccess   `gorm:"foreignKey:BoardID" json:"-"`
}
