package domain

import (
	"errors"
	"testing"
)

func TestLoanApplication_Validate(t *testing.T) {
	valid := func() LoanApplication {
		return LoanApplication{
			UserID:       "u1",
			MFIID:        "m1",
			BusinessName: "Tea Stall",
			LoanAmount:   40000,
			TenureMonths: 12,
		}
	}

	ok := valid()
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid application: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*LoanApplication)
	}{
		{"missing user_id", func(a *LoanApplication) { a.UserID = "" }},
		{"missing mfi_id", func(a *LoanApplication) { a.MFIID = "" }},
		{"missing business_name", func(a *LoanApplication) { a.BusinessName = "" }},
		{"zero loan_amount", func(a *LoanApplication) { a.LoanAmount = 0 }},
		{"negative loan_amount", func(a *LoanApplication) { a.LoanAmount = -1 }},
		{"zero tenure_months", func(a *LoanApplication) { a.TenureMonths = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := valid()
			c.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should wrap ErrValidation", err)
			}
		})
	}
}
