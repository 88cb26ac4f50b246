package repository

import (
	"context"

	"grameengo/backend/internal/mfi/domain"
)

// Repository defines persistence for the MFI catalog.
type Repository interface {
	List(ctx context.Context, limit int) ([]*domain.MFI, error)
	GetByID(ctx context.Context, id string) (*domain.MFI, error)
	Create(ctx context.Context, m *domain.MFI) error
}

// ProductRepository defines persistence for loan products.
type ProductRepository interface {
	List(ctx context.Context, mfiID string, limit int) ([]*domain.LoanProduct, error)
	Create(ctx context.Context, p *domain.LoanProduct) error
}
