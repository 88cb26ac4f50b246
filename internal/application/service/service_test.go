package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"grameengo/backend/internal/application/domain"
	"grameengo/backend/internal/application/repository"
	notifdomain "grameengo/backend/internal/notification/domain"
	userdomain "grameengo/backend/internal/user/domain"
)

type fakeRepo struct {
	apps map[string]*domain.LoanApplication
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: map[string]*domain.LoanApplication{}}
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.LoanApplication, error) {
	return r.apps[id], nil
}

func (r *fakeRepo) List(_ context.Context, userID string, limit int) ([]*domain.LoanApplication, error) {
	var out []*domain.LoanApplication
	for _, a := range r.apps {
		if userID == "" || a.UserID == userID {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, a *domain.LoanApplication) error {
	r.apps[a.ID] = a
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id string, u repository.Update) error {
	a := r.apps[id]
	if a == nil {
		return nil
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.OfficerNotes != nil {
		a.OfficerNotes = *u.OfficerNotes
	}
	if u.RejectionReason != nil {
		a.RejectionReason = *u.RejectionReason
	}
	if u.OfficerID != "" {
		a.OfficerID = u.OfficerID
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

type notified struct {
	userID, title, message, typ, link string
}

type fakeNotifier struct {
	sent []notified
	err  error
}

func (n *fakeNotifier) Create(_ context.Context, userID, title, message, typ, link string) (*notifdomain.Notification, error) {
	if n.err != nil {
		return nil, n.err
	}
	n.sent = append(n.sent, notified{userID, title, message, typ, link})
	return &notifdomain.Notification{ID: "n", UserID: userID}, nil
}

var officer = &userdomain.User{ID: "off-1", Role: userdomain.RoleOfficer}

func validInput() CreateInput {
	return CreateInput{
		MFIID:        "m1",
		BusinessName: "Tea Stall",
		BusinessType: "retail",
		LoanAmount:   50000,
		LoanPurpose:  "inventory",
		TenureMonths: 12,
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	s := NewService(repo, notifier)

	a, err := s.Create(context.Background(), "u1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != domain.StatusSubmitted || a.UserID != "u1" || a.ID == "" {
		t.Errorf("application = %+v", a)
	}
	if len(a.Documents) != 0 || a.Documents == nil {
		t.Errorf("documents = %v", a.Documents)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.userID != "u1" || n.title != "Application Submitted" || n.typ != notifdomain.TypeSuccess {
		t.Errorf("notification = %+v", n)
	}
	if n.message != "Your loan application for BDT 50000 has been submitted successfully." {
		t.Errorf("message = %q", n.message)
	}
	if n.link != "/applications/"+a.ID {
		t.Errorf("link = %q", n.link)
	}
}

func TestCreate_ValidationError(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	s := NewService(repo, notifier)

	in := validInput()
	in.MFIID = ""
	_, err := s.Create(context.Background(), "u1", in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if len(repo.apps) != 0 || len(notifier.sent) != 0 {
		t.Error("nothing should be stored on validation failure")
	}
}

func TestList_RoleScoping(t *testing.T) {
	repo := newFakeRepo()
	repo.apps["a1"] = &domain.LoanApplication{ID: "a1", UserID: "u1"}
	repo.apps["a2"] = &domain.LoanApplication{ID: "a2", UserID: "u2"}
	s := NewService(repo, &fakeNotifier{})

	own, err := s.List(context.Background(), &userdomain.User{ID: "u1", Role: userdomain.RoleBorrower})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 1 || own[0].ID != "a1" {
		t.Errorf("borrower list = %+v", own)
	}

	all, err := s.List(context.Background(), officer)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("officer list len = %d", len(all))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := NewService(newFakeRepo(), &fakeNotifier{})
	status := domain.StatusApproved
	_, err := s.Update(context.Background(), "missing", officer, UpdateInput{Status: &status})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestUpdate_StatusNotifies(t *testing.T) {
	cases := []struct {
		status      string
		wantType    string
		wantMessage string
	}{
		{domain.StatusApproved, notifdomain.TypeInfo, "Your loan application has been approved!"},
		{domain.StatusRejected, notifdomain.TypeWarning, "Your loan application has been rejected."},
		{domain.StatusUnderReview, notifdomain.TypeInfo, "Your loan application is under review."},
		{domain.StatusDisbursed, notifdomain.TypeInfo, "Your loan has been disbursed successfully!"},
		{"archived", notifdomain.TypeInfo, "Your application status has been updated."},
	}
	for _, c := range cases {
		t.Run(c.status, func(t *testing.T) {
			repo := newFakeRepo()
			repo.apps["a1"] = &domain.LoanApplication{ID: "a1", UserID: "u1", Status: domain.StatusSubmitted}
			notifier := &fakeNotifier{}
			s := NewService(repo, notifier)

			status := c.status
			a, err := s.Update(context.Background(), "a1", officer, UpdateInput{Status: &status})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if a.Status != c.status {
				t.Errorf("status = %q", a.Status)
			}
			if a.OfficerID != officer.ID {
				t.Errorf("officer_id = %q", a.OfficerID)
			}
			if len(notifier.sent) != 1 {
				t.Fatalf("sent %d notifications", len(notifier.sent))
			}
			n := notifier.sent[0]
			if n.userID != "u1" || n.title != "Application Status Update" {
				t.Errorf("notification = %+v", n)
			}
			if n.typ != c.wantType || n.message != c.wantMessage {
				t.Errorf("type/message = %q / %q", n.typ, n.message)
			}
		})
	}
}

func TestUpdate_NoStatusNoNotification(t *testing.T) {
	repo := newFakeRepo()
	repo.apps["a1"] = &domain.LoanApplication{ID: "a1", UserID: "u1", Status: domain.StatusSubmitted}
	notifier := &fakeNotifier{}
	s := NewService(repo, notifier)

	notes := "looks solid"
	a, err := s.Update(context.Background(), "a1", officer, UpdateInput{OfficerNotes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.OfficerNotes != notes || a.Status != domain.StatusSubmitted {
		t.Errorf("application = %+v", a)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("notes-only update must not notify, sent %d", len(notifier.sent))
	}
}

func TestUpdate_RepeatedStatusNotifiesAgain(t *testing.T) {
	repo := newFakeRepo()
	repo.apps["a1"] = &domain.LoanApplication{ID: "a1", UserID: "u1", Status: domain.StatusSubmitted}
	notifier := &fakeNotifier{}
	s := NewService(repo, notifier)

	status := domain.StatusApproved
	for i := 0; i < 2; i++ {
		if _, err := s.Update(context.Background(), "a1", officer, UpdateInput{Status: &status}); err != nil {
			t.Fatalf("Update #%d: %v", i+1, err)
		}
	}
	if len(notifier.sent) != 2 {
		t.Errorf("repeat PATCH should notify each time, sent %d", len(notifier.sent))
	}
}

func TestCreate_AmountFormatting(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	s := NewService(repo, notifier)

	in := validInput()
	in.LoanAmount = 12500.5
	if _, err := s.Create(context.Background(), "u1", in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(notifier.sent[0].message, "BDT 12500.5") {
		t.Errorf("message = %q", notifier.sent[0].message)
	}
}
