package repository

import (
	"context"

	"grameengo/backend/internal/session/domain"
)

// Repository defines persistence for exchanged sessions.
type Repository interface {
	// GetByToken returns the live session for token, or nil when the token is
	// unknown or its expiry has elapsed. Expired rows are not deleted.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, token string) error
}
