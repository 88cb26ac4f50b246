package repository

import "context"

// Stats is the portfolio summary shown on the officer dashboard.
type Stats struct {
	TotalApplications int     `json:"total_applications"`
	Approved          int     `json:"approved"`
	Rejected          int     `json:"rejected"`
	Pending           int     `json:"pending"`
	TotalLoanAmount   float64 `json:"total_loan_amount"`
}

// TrendBucket is one month of application volume.
type TrendBucket struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Repository aggregates application data for reporting.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	Trends(ctx context.Context, buckets int) ([]*TrendBucket, error)
}
