// Package permissions computes the capability set a user holds on a board.
// Permissions are plain data computed fresh per request, never cached.
package permissions

import (
	"github.com/erfnk/kanban-board-api/internal/models"
)

// BoardRole is the user's relationship to a single board, distinct from
// their organization role.
type BoardRole string

const (
	BoardRoleOwner  BoardRole = "owner"
	BoardRoleViewer BoardRole = "viewer"
)

var roleHierarchy = map[models.OrganizationRole]int{
	models.RoleOwner:  3,
	models.RoleAdmin:  2,
	models.RoleMember: 1,
}

// HasMinRole reports whether role is at least required in the org hierarchy.
// Unknown roles rank below member.
func HasMinRole(role, required models.OrganizationRole) bool {
	return roleHierarchy[role] >= roleHierarchy[required]
}

// BoardPermissions is the full capability set for one (user, board) pair.
type BoardPermissions struct {
	CanEditBoard     bool `json:"canEditBoard"`
	CanDeleteBoard   bool `json:"canDeleteBoard"`
	CanManageColumns bool `json:"canManageColumns"`
	CanCreateTasks   bool `json:"canCreateTasks"`
	CanEditAnyTask   bool `json:"canEditAnyTask"`
	CanMoveAnyTask   bool `json:"canMoveAnyTask"`
	CanUpdateOwnTask bool `json:"canUpdateOwnTask"`
	CanComment       bool `json:"canComment"`
	CanFavorite      bool `json:"canFavorite"`
	CanView          bool `json:"canView"`
}

// ForOwner grants everything. The board creator is not gated by org role.
func ForOwner() BoardPermissions {
	return BoardPermissions{
		CanEditBoard:     true,
		CanDeleteBoard:   true,
		CanManageColumns: true,
		CanCreateTasks:   true,
		CanEditAnyTask:   true,
		CanMoveAnyTask:   true,
		CanUpdateOwnTask: true,
		CanComment:       true,
		CanFavorite:      true,
		CanView:          true,
	}
}

// ForViewer grants the member capability set on a public board. Structural
// capabilities require at least the admin org role; board settings stay with
// the creator only.
func ForViewer(orgRole models.OrganizationRole) BoardPermissions {
	isAdmin := HasMinRole(orgRole, models.RoleAdmin)
	return BoardPermissions{
		CanEditBoard:     false,
		CanDeleteBoard:   false,
		CanManageColumns: isAdmin,
		CanCreateTasks:   isAdmin,
		CanEditAnyTask:   isAdmin,
		CanMoveAnyTask:   isAdmin,
		CanUpdateOwnTask: true,
		CanComment:       true,
		CanFavorite:      true,
		CanView:          true,
	}
}
