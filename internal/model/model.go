// Package model defines the domain types used across the application.
package model

import "time"

// LoopState is the mutable state of the poll loop.
type LoopState struct {
	// Cursor is the from_date of the next query in Unix seconds.
	// Zero means "now".
	Cursor           int64
	LastSentMessage  string
	LastErrorMessage string
	UpdatedAt        time.Time
}

// NotificationKind distinguishes status updates from error reports.
type NotificationKind string

// Supported notification kinds.
const (
	KindStatus NotificationKind = "status"
	KindError  NotificationKind = "error"
)

// Notification is a message that was delivered to the chat.
type Notification struct {
	ID     int64
	Kind   NotificationKind
	Text   string
	SentAt time.Time
}
