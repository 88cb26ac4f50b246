// Package service implements the loan-application lifecycle: submission,
// role-scoped listing, and officer status transitions with borrower
// notifications.
package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"grameengo/backend/internal/application/domain"
	"grameengo/backend/internal/application/repository"
	notifdomain "grameengo/backend/internal/notification/domain"
	userdomain "grameengo/backend/internal/user/domain"
)

const listLimit = 100

// ErrNotFound is returned when the application does not exist.
var ErrNotFound = errors.New("application not found")

// Borrower-facing messages per status. A status outside this map still
// notifies with a generic message.
var statusMessages = map[string]string{
	domain.StatusApproved:    "Your loan application has been approved!",
	domain.StatusRejected:    "Your loan application has been rejected.",
	domain.StatusUnderReview: "Your loan application is under review.",
	domain.StatusDisbursed:   "Your loan has been disbursed successfully!",
}

// Notifier stores a notification for a user. Satisfied by the notification service.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ, link string) (*notifdomain.Notification, error)
}

// CreateInput holds the borrower-supplied fields of a new application.
type CreateInput struct {
	MFIID            string
	LoanProductID    string
	BusinessName     string
	BusinessType     string
	BusinessAgeYears int
	MonthlyRevenue   float64
	LoanAmount       float64
	LoanPurpose      string
	TenureMonths     int
}

// UpdateInput holds the officer-supplied fields of a PATCH. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Status          *string
	OfficerNotes    *string
	RejectionReason *string
}

// Service owns application state transitions. It does not authorize callers;
// handlers gate access before invoking it.
type Service struct {
	repo     repository.Repository
	notifier Notifier
}

// NewService returns an application Service.
func NewService(repo repository.Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create submits a new application for userID with status submitted and
// notifies the borrower.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.LoanApplication, error) {
	now := time.Now().UTC()
	a := &domain.LoanApplication{
		ID:               uuid.New().String(),
		UserID:           userID,
		MFIID:            in.MFIID,
		LoanProductID:    in.LoanProductID,
		BusinessName:     in.BusinessName,
		BusinessType:     in.BusinessType,
		BusinessAgeYears: in.BusinessAgeYears,
		MonthlyRevenue:   in.MonthlyRevenue,
		LoanAmount:       in.LoanAmount,
		LoanPurpose:      in.LoanPurpose,
		TenureMonths:     in.TenureMonths,
		Documents:        []domain.Document{},
		Status:           domain.StatusSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	amount := strconv.FormatFloat(a.LoanAmount, 'f', -1, 64)
	_, err := s.notifier.Create(ctx, userID,
		"Application Submitted",
		"Your loan application for BDT "+amount+" has been submitted successfully.",
		notifdomain.TypeSuccess,
		"/applications/"+a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns the application for id, or nil if not found.
func (s *Service) Get(ctx context.Context, id string) (*domain.LoanApplication, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns applications visible to caller, newest first: borrowers see
// their own, officers and admins see all.
func (s *Service) List(ctx context.Context, caller *userdomain.User) ([]*domain.LoanApplication, error) {
	userID := ""
	if caller.Role == userdomain.RoleBorrower {
		userID = caller.ID
	}
	return s.repo.List(ctx, userID, listLimit)
}

// Update applies an officer's PATCH: any status may be set from any current
// state, the acting officer is recorded, and a status-carrying update always
// notifies the borrower, even when the status is unchanged. Unrecognized
// status values are stored and notify with the generic message.
func (s *Service) Update(ctx context.Context, id string, officer *userdomain.User, in UpdateInput) (*domain.LoanApplication, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	err = s.repo.Update(ctx, id, repository.Update{
		Status:          in.Status,
		OfficerNotes:    in.OfficerNotes,
		RejectionReason: in.RejectionReason,
		OfficerID:       officer.ID,
	})
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		message, ok := statusMessages[*in.Status]
		if !ok {
			message = "Your application status has been updated."
		}
		typ := notifdomain.TypeInfo
		if *in.Status == domain.StatusRejected {
			typ = notifdomain.TypeWarning
		}
		_, err = s.notifier.Create(ctx, a.UserID,
			"Application Status Update", message, typ, "/applications/"+a.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}
