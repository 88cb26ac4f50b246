package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"grameengo/backend/internal/mfi/domain"
)

const mfiColumns = `id, name, description, min_loan_amount, max_loan_amount, interest_rate, processing_time_days, requirements, collateral_required, website, contact_email, contact_phone, logo_url, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an MFI repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns up to limit MFIs in insertion order.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*domain.MFI, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mfiColumns+` FROM mfis ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MFI
	for rows.Next() {
		m, err := scanMFI(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID returns the MFI for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.MFI, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mfiColumns+` FROM mfis WHERE id = $1`, id)
	m, err := scanMFI(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Create persists the MFI. The MFI must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.MFI) error {
	requirements, err := json.Marshal(m.Requirements)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mfis (id, name, description, min_loan_amount, max_loan_amount, interest_rate, processing_time_days, requirements, collateral_required, website, contact_email, contact_phone, logo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.Name, nullString(m.Description),
		m.MinLoanAmount, m.MaxLoanAmount, m.InterestRate, m.ProcessingTimeDays,
		requirements, m.CollateralRequired,
		nullString(m.Website), nullString(m.ContactEmail), nullString(m.ContactPhone), nullString(m.LogoURL),
		m.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMFI(row rowScanner) (*domain.MFI, error) {
	var m domain.MFI
	var description, website, contactEmail, contactPhone, logoURL sql.NullString
	var requirements []byte
	err := row.Scan(&m.ID, &m.Name, &description,
		&m.MinLoanAmount, &m.MaxLoanAmount, &m.InterestRate, &m.ProcessingTimeDays,
		&requirements, &m.CollateralRequired,
		&website, &contactEmail, &contactPhone, &logoURL, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	m.Website = website.String
	m.ContactEmail = contactEmail.String
	m.ContactPhone = contactPhone.String
	m.LogoURL = logoURL.String
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &m.Requirements); err != nil {
			return nil, err
		}
	}
	if m.Requirements == nil {
		m.Requirements = []string{}
	}
	return &m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
