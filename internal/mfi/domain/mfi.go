// Package domain defines the MFI catalog entities: microfinance
// institutions and the loan products they offer.
package domain

import (
	"errors"
	"time"
)

// MFI is a microfinance institution listed in the catalog.
type MFI struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	MinLoanAmount      float64   `json:"min_loan_amount"`
	MaxLoanAmount      float64   `json:"max_loan_amount"`
	InterestRate       float64   `json:"interest_rate"`
	ProcessingTimeDays int       `json:"processing_time_days"`
	Requirements       []string  `json:"requirements"`
	CollateralRequired bool      `json:"collateral_required"`
	Website            string    `json:"website,omitempty"`
	ContactEmail       string    `json:"contact_email,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	LogoURL            string    `json:"logo_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Validate checks the fields a catalog entry cannot do without.
func (m *MFI) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.MinLoanAmount < 0 || m.MaxLoanAmount < 0 {
		return errors.New("loan amounts must not be negative")
	}
	if m.MaxLoanAmount > 0 && m.MinLoanAmount > m.MaxLoanAmount {
		return errors.New("min_loan_amount exceeds max_loan_amount")
	}
	if m.InterestRate < 0 {
		return errors.New("interest_rate must not be negative")
	}
	return nil
}

// LoanProduct is a loan offering tied to an MFI.
type LoanProduct struct {
	ID                  string    `json:"id"`
	MFIID               string    `json:"mfi_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	MinAmount           float64   `json:"min_amount"`
	MaxAmount           float64   `json:"max_amount"`
	InterestRate        float64   `json:"interest_rate"`
	TenureMonths        []int     `json:"tenure_months"`
	EligibilityCriteria []string  `json:"eligibility_criteria"`
	CreatedAt           time.Time `json:"created_at"`
}
