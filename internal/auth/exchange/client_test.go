package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExchange_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Session-ID"); got != "sid-1" {
			t.Errorf("X-Session-ID = %q, want sid-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"a@x.com","name":"Ana","picture":"p.png","session_token":"tok-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	data, err := c.Exchange(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if data.Email != "a@x.com" || data.SessionToken != "tok-1" {
		t.Errorf("Exchange data = %+v", data)
	}
}

func TestExchange_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Exchange(context.Background(), "bad")
	if !errors.Is(err, ErrInvalidSessionID) {
		t.Errorf("Exchange non-200: want ErrInvalidSessionID, got %v", err)
	}
}

func TestExchange_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.Exchange(context.Background(), "sid")
	if err == nil {
		t.Fatal("Exchange should fail on timeout")
	}
	if errors.Is(err, ErrInvalidSessionID) {
		t.Error("timeout must not be reported as an invalid session id")
	}
}
