package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyBoard  = "board"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Board defaults
const (
	SlugMaxLength     = 60
	SlugFallback      = "board"
	RecentBoardsLimit = 20
)
