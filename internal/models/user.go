package models

import (
	"time"
)

// User rows are provisioned by the external identity provider; this API only
// reads them for display data and foreign keys.
type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Image     string    `gorm:"type:varchar(512)" json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBoards []Board              `gorm:"foreignKey:CreatedByID" json:"-"`
	Memberships   []OrganizationMember `gorm:"foreignKey:UserID" json:"-"`
}
