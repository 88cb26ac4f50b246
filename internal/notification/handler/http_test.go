package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/notification/domain"
	"grameengo/backend/internal/notification/service"
	userdomain "grameengo/backend/internal/user/domain"
)

type fakeRepo struct {
	rows []*domain.Notification
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, n *domain.Notification) error {
	r.rows = append(r.rows, n)
	return nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func newRouter(repo *fakeRepo) chi.Router {
	r := chi.NewRouter()
	NewHandler(service.NewService(repo, nil)).Mount(r)
	return r
}

func do(router chi.Router, method, path string, user *userdomain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList_OwnOnly(t *testing.T) {
	repo := &fakeRepo{rows: []*domain.Notification{
		{ID: "n1", UserID: "u1", Title: "A", CreatedAt: time.Now()},
		{ID: "n2", UserID: "u2", Title: "B", CreatedAt: time.Now()},
	}}
	router := newRouter(repo)

	rec := do(router, http.MethodGet, "/notifications", &userdomain.User{ID: "u1", Role: userdomain.RoleBorrower})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 1 || got[0]["id"] != "n1" {
		t.Errorf("got = %v", got)
	}
}

func TestList_Unauthenticated(t *testing.T) {
	rec := do(newRouter(&fakeRepo{}), http.MethodGet, "/notifications", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestList_Empty(t *testing.T) {
	rec := do(newRouter(&fakeRepo{}), http.MethodGet, "/notifications", &userdomain.User{ID: "u1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", rec.Body.String())
	}
}

func TestMarkRead(t *testing.T) {
	repo := &fakeRepo{rows: []*domain.Notification{{ID: "n1", UserID: "u1"}}}
	router := newRouter(repo)

	rec := do(router, http.MethodPatch, "/notifications/n1/read", &userdomain.User{ID: "u1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !repo.rows[0].Read {
		t.Error("row should be marked read")
	}

	// Another user's attempt answers 200 but leaves the row alone.
	repo.rows[0].Read = false
	rec = do(router, http.MethodPatch, "/notifications/n1/read", &userdomain.User{ID: "u2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if repo.rows[0].Read {
		t.Error("foreign mark-read must not flip the row")
	}
}
