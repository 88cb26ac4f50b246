package repository

import (
	"context"

	"grameengo/backend/internal/application/domain"
)

// Update carries the mutable fields of a PATCH; nil pointers are left untouched.
type Update struct {
	Status          *string
	OfficerNotes    *string
	RejectionReason *string
	OfficerID       string
}

// Repository defines persistence for loan applications.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.LoanApplication, error)
	// List returns applications newest first, limited to limit. When userID is
	// non-empty only that borrower's applications are returned.
	List(ctx context.Context, userID string, limit int) ([]*domain.LoanApplication, error)
	Create(ctx context.Context, a *domain.LoanApplication) error
	Update(ctx context.Context, id string, u Update) error
}
