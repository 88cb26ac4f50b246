package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grameengo/backend/internal/application/domain"
)

const applicationColumns = `id, user_id, mfi_id, loan_product_id, business_name, business_type, business_age_years, monthly_revenue, loan_amount, loan_purpose, tenure_months, documents, status, officer_id, officer_notes, rejection_reason, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an application repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the application for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// List returns applications newest first. A non-empty userID restricts the
// result to that borrower's applications.
func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*domain.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, userID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LoanApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create persists the application. The application must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.LoanApplication) error {
	documents, err := json.Marshal(a.Documents)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (id, user_id, mfi_id, loan_product_id, business_name, business_type, business_age_years, monthly_revenue, loan_amount, loan_purpose, tenure_months, documents, status, officer_id, officer_notes, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		a.ID, a.UserID, a.MFIID, nullString(a.LoanProductID),
		a.BusinessName, a.BusinessType, a.BusinessAgeYears, a.MonthlyRevenue,
		a.LoanAmount, a.LoanPurpose, a.TenureMonths,
		documents, a.Status,
		nullString(a.OfficerID), nullString(a.OfficerNotes), nullString(a.RejectionReason),
		a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// Update applies the set fields of u and bumps updated_at. Last write wins;
// there is no version check on concurrent updates.
func (r *PostgresRepository) Update(ctx context.Context, id string, u Update) error {
	set := []string{}
	args := []any{}
	idx := 1
	add := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.OfficerNotes != nil {
		add("officer_notes", *u.OfficerNotes)
	}
	if u.RejectionReason != nil {
		add("rejection_reason", *u.RejectionReason)
	}
	if u.OfficerID != "" {
		add("officer_id", u.OfficerID)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE applications SET %s WHERE id = $%d", joinSet(set), idx)
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func joinSet(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func scanApplication(row rowScanner) (*domain.LoanApplication, error) {
	var a domain.LoanApplication
	var loanProductID, officerID, officerNotes, rejectionReason sql.NullString
	var documents []byte
	err := row.Scan(&a.ID, &a.UserID, &a.MFIID, &loanProductID,
		&a.BusinessName, &a.BusinessType, &a.BusinessAgeYears, &a.MonthlyRevenue,
		&a.LoanAmount, &a.LoanPurpose, &a.TenureMonths,
		&documents, &a.Status,
		&officerID, &officerNotes, &rejectionReason,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.LoanProductID = loanProductID.String
	a.OfficerID = officerID.String
	a.OfficerNotes = officerNotes.String
	a.RejectionReason = rejectionReason.String
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &a.Documents); err != nil {
			return nil, err
		}
	}
	if a.Documents == nil {
		a.Documents = []domain.Document{}
	}
	return &a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
