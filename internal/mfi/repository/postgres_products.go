package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"grameengo/backend/internal/mfi/domain"
)

const productColumns = `id, mfi_id, name, description, min_amount, max_amount, interest_rate, tenure_months, eligibility_criteria, created_at`

type PostgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository returns a loan-product repository backed by the given db.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// List returns up to limit products, filtered by mfiID when non-empty.
func (r *PostgresProductRepository) List(ctx context.Context, mfiID string, limit int) ([]*domain.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products`
	args := []any{}
	if mfiID != "" {
		query += ` WHERE mfi_id = $1 ORDER BY created_at LIMIT $2`
		args = append(args, mfiID, limit)
	} else {
		query += ` ORDER BY created_at LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LoanProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create persists the loan product. The product must have ID set.
func (r *PostgresProductRepository) Create(ctx context.Context, p *domain.LoanProduct) error {
	tenure, err := json.Marshal(p.TenureMonths)
	if err != nil {
		return err
	}
	criteria, err := json.Marshal(p.EligibilityCriteria)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO loan_products (id, mfi_id, name, description, min_amount, max_amount, interest_rate, tenure_months, eligibility_criteria, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.MFIID, p.Name, nullString(p.Description),
		p.MinAmount, p.MaxAmount, p.InterestRate,
		tenure, criteria, p.CreatedAt,
	)
	return err
}

func scanProduct(row rowScanner) (*domain.LoanProduct, error) {
	var p domain.LoanProduct
	var description sql.NullString
	var tenure, criteria []byte
	err := row.Scan(&p.ID, &p.MFIID, &p.Name, &description,
		&p.MinAmount, &p.MaxAmount, &p.InterestRate,
		&tenure, &criteria, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	if len(tenure) > 0 {
		if err := json.Unmarshal(tenure, &p.TenureMonths); err != nil {
			return nil, err
		}
	}
	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &p.EligibilityCriteria); err != nil {
			return nil, err
		}
	}
	if p.TenureMonths == nil {
		p.TenureMonths = []int{}
	}
	if p.EligibilityCriteria == nil {
		p.EligibilityCriteria = []string{}
	}
	return &p, nil
}
