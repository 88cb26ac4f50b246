// Package service creates and lists notifications and fans created ones out
// to the event stream.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"grameengo/backend/internal/notification/domain"
	"grameengo/backend/internal/notification/repository"
)

const listLimit = 50

// Emitter publishes a created notification for out-of-band delivery.
type Emitter interface {
	Emit(ctx context.Context, n *domain.Notification) error
}

// Service persists notifications and emits them best-effort: a failed emit
// never fails the request that created the notification.
type Service struct {
	repo    repository.Repository
	emitter Emitter
}

// NewService returns a notification Service. emitter may be nil.
func NewService(repo repository.Repository, emitter Emitter) *Service {
	return &Service{repo: repo, emitter: emitter}
}

// Create stores a notification for userID and emits it to the event stream.
func (s *Service) Create(ctx context.Context, userID, title, message, typ, link string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if s.emitter != nil {
		if err := s.emitter.Emit(ctx, n); err != nil {
			slog.Error("notification emit", "error", err, "notification_id", n.ID)
		}
	}
	return n, nil
}

// List returns the newest notifications for userID.
func (s *Service) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, listLimit)
}

// MarkRead marks the notification read when it belongs to userID. Idempotent.
func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
