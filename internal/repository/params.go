package repository

import "dating-app-backend/internal/pagination"

const (
	// DefaultMinAge and DefaultMaxAge bound the unfiltered age range; a
	// request carrying exactly these values applies no date-of-birth filter.
	DefaultMinAge = 18
	DefaultMaxAge = 99

	// OrderByCreated sorts listings by account creation, newest first.
	OrderByCreated = "created"

	ContainerInbox  = "Inbox"
	ContainerOutbox = "Outbox"
	ContainerUnread = "Unread"
)

// UserParams selects and orders a page of users
type UserParams struct {
	UserID     int
	Gender     string
	Likers     bool
	Likees     bool
	MinAge     int
	MaxAge     int
	OrderBy    string
	PageNumber int
	PageSize   int
}

// NewUserParams returns params with the default age range and paging.
// Start from it rather than a zero value: a zero MinAge is a real filter.
func NewUserParams(userID int) UserParams {
	return UserParams{
		UserID:     userID,
		MinAge:     DefaultMinAge,
		MaxAge:     DefaultMaxAge,
		PageNumber: pagination.DefaultPageNumber,
		PageSize:   pagination.DefaultPageSize,
	}
}

// MessageParams selects a page of one user's messages
type MessageParams struct {
	UserID           int
	MessageContainer string
	PageNumber       int
	PageSize         int
}

// NewMessageParams returns params for the unread container with default paging.
func NewMessageParams(userID int) MessageParams {
	return MessageParams{
		UserID:           userID,
		MessageContainer: ContainerUnread,
		PageNumber:       pagination.DefaultPageNumber,
		PageSize:         pagination.DefaultPageSize,
	}
}
