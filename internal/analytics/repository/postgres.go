package repository

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an analytics repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Stats aggregates portfolio totals in one pass over applications. Pending
// covers submitted and under_review; the amount sum counts approved loans only.
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'approved'),
		       COUNT(*) FILTER (WHERE status = 'rejected'),
		       COUNT(*) FILTER (WHERE status IN ('submitted', 'under_review')),
		       COALESCE(SUM(loan_amount) FILTER (WHERE status = 'approved'), 0)
		FROM applications`).
		Scan(&s.TotalApplications, &s.Approved, &s.Rejected, &s.Pending, &s.TotalLoanAmount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Trends returns per-month application counts and amounts, oldest first,
// capped at buckets months.
func (r *PostgresRepository) Trends(ctx context.Context, buckets int) ([]*TrendBucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(YEAR FROM created_at)::int,
		       EXTRACT(MONTH FROM created_at)::int,
		       COUNT(*),
		       COALESCE(SUM(loan_amount), 0)
		FROM applications
		GROUP BY 1, 2
		ORDER BY 1, 2
		LIMIT $1`, buckets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*TrendBucket
	for rows.Next() {
		var b TrendBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Count, &b.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
