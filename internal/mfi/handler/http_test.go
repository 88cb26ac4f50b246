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

	"grameengo/backend/internal/mfi/domain"
	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/platform/rbac"
	userdomain "grameengo/backend/internal/user/domain"
)

type fakeMFIRepo struct {
	mfis []*domain.MFI
}

func (r *fakeMFIRepo) List(_ context.Context, limit int) ([]*domain.MFI, error) {
	if len(r.mfis) > limit {
		return r.mfis[:limit], nil
	}
	return r.mfis, nil
}

func (r *fakeMFIRepo) GetByID(_ context.Context, id string) (*domain.MFI, error) {
	for _, m := range r.mfis {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMFIRepo) Create(_ context.Context, m *domain.MFI) error {
	r.mfis = append(r.mfis, m)
	return nil
}

type fakeProductRepo struct {
	products []*domain.LoanProduct
}

func (r *fakeProductRepo) List(_ context.Context, mfiID string, limit int) ([]*domain.LoanProduct, error) {
	var out []*domain.LoanProduct
	for _, p := range r.products {
		if mfiID == "" || p.MFIID == mfiID {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.LoanProduct) error {
	r.products = append(r.products, p)
	return nil
}

func newRouter(t *testing.T, mfis *fakeMFIRepo, products *fakeProductRepo) chi.Router {
	t.Helper()
	guard, err := rbac.NewGuard()
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}
	r := chi.NewRouter()
	NewHandler(mfis, products, guard).Mount(r)
	return r
}

func do(router chi.Router, method, path, body string, user *userdomain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListMFIs(t *testing.T) {
	mfis := &fakeMFIRepo{mfis: []*domain.MFI{
		{ID: "m1", Name: "Alpha", Requirements: []string{"NID"}, CreatedAt: time.Now()},
		{ID: "m2", Name: "Beta", Requirements: []string{}, CreatedAt: time.Now()},
	}}
	router := newRouter(t, mfis, &fakeProductRepo{})

	rec := do(router, http.MethodGet, "/mfis", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d", len(got))
	}
}

func TestListMFIs_Empty(t *testing.T) {
	router := newRouter(t, &fakeMFIRepo{}, &fakeProductRepo{})
	rec := do(router, http.MethodGet, "/mfis", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", rec.Body.String())
	}
}

func TestGetMFI_NotFound(t *testing.T) {
	router := newRouter(t, &fakeMFIRepo{}, &fakeProductRepo{})
	rec := do(router, http.MethodGet, "/mfis/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "MFI not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreateMFI_AdminOnly(t *testing.T) {
	body := `{"name":"Gamma","min_loan_amount":1000,"max_loan_amount":50000,"interest_rate":12,"processing_time_days":5,"unknown_field":"dropped"}`

	cases := []struct {
		name string
		user *userdomain.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"borrower", &userdomain.User{ID: "u1", Role: userdomain.RoleBorrower}, http.StatusForbidden},
		{"officer", &userdomain.User{ID: "u2", Role: userdomain.RoleOfficer}, http.StatusForbidden},
		{"admin", &userdomain.User{ID: "u3", Role: userdomain.RoleAdmin}, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			router := newRouter(t, &fakeMFIRepo{}, &fakeProductRepo{})
			rec := do(router, http.MethodPost, "/mfis", body, c.user)
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, c.want, rec.Body.String())
			}
		})
	}
}

func TestCreateMFI_IgnoresUnknownFields(t *testing.T) {
	mfis := &fakeMFIRepo{}
	router := newRouter(t, mfis, &fakeProductRepo{})
	admin := &userdomain.User{ID: "u3", Role: userdomain.RoleAdmin}

	body := `{"name":"Gamma","min_loan_amount":1000,"max_loan_amount":50000,"interest_rate":12,"processing_time_days":5,"sneaky":"value"}`
	rec := do(router, http.MethodPost, "/mfis", body, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "sneaky") {
		t.Error("unknown field should not be stored or echoed")
	}
	if len(mfis.mfis) != 1 || mfis.mfis[0].ID == "" {
		t.Errorf("stored = %+v", mfis.mfis)
	}
}

func TestCreateMFI_Validation(t *testing.T) {
	router := newRouter(t, &fakeMFIRepo{}, &fakeProductRepo{})
	admin := &userdomain.User{ID: "u3", Role: userdomain.RoleAdmin}

	rec := do(router, http.MethodPost, "/mfis", `{"min_loan_amount":1000}`, admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name: status = %d", rec.Code)
	}
	rec = do(router, http.MethodPost, "/mfis", `{"name":"X","min_loan_amount":9000,"max_loan_amount":100}`, admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inverted bounds: status = %d", rec.Code)
	}
}

func TestListProducts_FilterByMFI(t *testing.T) {
	products := &fakeProductRepo{products: []*domain.LoanProduct{
		{ID: "p1", MFIID: "m1", Name: "Micro"},
		{ID: "p2", MFIID: "m2", Name: "Agri"},
	}}
	router := newRouter(t, &fakeMFIRepo{}, products)

	rec := do(router, http.MethodGet, "/loan-products?mfi_id=m1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 1 || got[0]["id"] != "p1" {
		t.Errorf("got = %v", got)
	}

	rec = do(router, http.MethodGet, "/loan-products", "", nil)
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("unfiltered len = %d", len(got))
	}
}
