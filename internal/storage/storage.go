// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"homework_bot/internal/model"
)

// Storage is the interface for all persistence operations.
type Storage interface {
	LoadState(ctx context.Context) (model.LoopState, error)
	SaveState(ctx context.Context, state model.LoopState) error

	RecordNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, limit int) ([]model.Notification, error)

	Close() error
}
