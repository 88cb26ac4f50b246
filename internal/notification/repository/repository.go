package repository

import (
	"context"

	"grameengo/backend/internal/notification/domain"
)

// Repository defines persistence for notifications.
type Repository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) error
	// MarkRead sets read=true on the row when it belongs to userID.
	// A miss (wrong owner or unknown id) is not an error.
	MarkRead(ctx context.Context, id, userID string) error
}
