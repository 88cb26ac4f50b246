package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"grameengo/backend/internal/notification/domain"
)

type fakeRepo struct {
	rows []*domain.Notification
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
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

type fakeEmitter struct {
	emitted []*domain.Notification
	err     error
}

func (e *fakeEmitter) Emit(_ context.Context, n *domain.Notification) error {
	e.emitted = append(e.emitted, n)
	return e.err
}

func TestCreate_PersistsAndEmits(t *testing.T) {
	repo := &fakeRepo{}
	emitter := &fakeEmitter{}
	s := NewService(repo, emitter)

	n, err := s.Create(context.Background(), "u1", "Application Submitted", "msg", domain.TypeSuccess, "/applications/a1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID == "" || n.Read {
		t.Errorf("notification = %+v", n)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("stored %d rows", len(repo.rows))
	}
	if len(emitter.emitted) != 1 || emitter.emitted[0].ID != n.ID {
		t.Errorf("emitted = %+v", emitter.emitted)
	}
}

func TestCreate_EmitFailureIsBestEffort(t *testing.T) {
	repo := &fakeRepo{}
	emitter := &fakeEmitter{err: errors.New("kafka down")}
	s := NewService(repo, emitter)

	if _, err := s.Create(context.Background(), "u1", "t", "m", domain.TypeInfo, ""); err != nil {
		t.Errorf("Create should succeed despite emit failure, got %v", err)
	}
	if len(repo.rows) != 1 {
		t.Errorf("stored %d rows", len(repo.rows))
	}
}

func TestCreate_NilEmitter(t *testing.T) {
	s := NewService(&fakeRepo{}, nil)
	if _, err := s.Create(context.Background(), "u1", "t", "m", domain.TypeInfo, ""); err != nil {
		t.Errorf("Create with nil emitter: %v", err)
	}
}

func TestList_OwnRowsNewestFirst(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, nil)
	now := time.Now()
	for i, uid := range []string{"u1", "u2", "u1"} {
		repo.rows = append(repo.rows, &domain.Notification{
			ID: string(rune('a' + i)), UserID: uid, CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}

	got, err := s.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Errorf("List = %+v", got)
	}
}

func TestMarkRead_OtherUsersRowUntouched(t *testing.T) {
	repo := &fakeRepo{rows: []*domain.Notification{{ID: "n1", UserID: "u1"}}}
	s := NewService(repo, nil)

	if err := s.MarkRead(context.Background(), "n1", "u2"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if repo.rows[0].Read {
		t.Error("another user's mark-read must not flip the row")
	}
	if err := s.MarkRead(context.Background(), "n1", "u1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !repo.rows[0].Read {
		t.Error("owner mark-read should flip the row")
	}
}
