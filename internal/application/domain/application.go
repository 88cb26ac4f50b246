// Package domain defines loan applications and their status lifecycle.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation marks rejected input; handlers map it to HTTP 400.
var ErrValidation = errors.New("validation failed")

// Application statuses. Every application starts as StatusSubmitted; officers
// and admins may set any of the others at any time.
const (
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusDisbursed   = "disbursed"
)

// Document is an uploaded supporting document reference.
type Document struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
	Type string `json:"type,omitempty"`
}

// LoanApplication is a borrower's request for a loan from an MFI.
type LoanApplication struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	MFIID         string `json:"mfi_id"`
	LoanProductID string `json:"loan_product_id,omitempty"`

	BusinessName     string  `json:"business_name"`
	BusinessType     string  `json:"business_type"`
	BusinessAgeYears int     `json:"business_age_years"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`

	LoanAmount   float64 `json:"loan_amount"`
	LoanPurpose  string  `json:"loan_purpose"`
	TenureMonths int     `json:"tenure_months"`

	Documents []Document `json:"documents"`

	Status          string `json:"status"`
	OfficerID       string `json:"officer_id,omitempty"`
	OfficerNotes    string `json:"officer_notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields a new application cannot do without.
func (a *LoanApplication) Validate() error {
	if a.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if a.MFIID == "" {
		return fmt.Errorf("%w: mfi_id is required", ErrValidation)
	}
	if a.BusinessName == "" {
		return fmt.Errorf("%w: business_name is required", ErrValidation)
	}
	if a.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan_amount must be positive", ErrValidation)
	}
	if a.TenureMonths <= 0 {
		return fmt.Errorf("%w: tenure_months must be positive", ErrValidation)
	}
	return nil
}
