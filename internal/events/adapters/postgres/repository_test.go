package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"website-stats-service/internal/events/core/domain"

	"github.com/lib/pq"
)

// fakeResult implements sql.Result for tests.
type fakeResult struct {
	rowsAffected int64
}

func (f *fakeResult) LastInsertId() (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// fakeDB implements DB interface for tests.
type fakeDB struct {
	ExecFn     func(ctx context.Context, query string, args ...any) (sql.Result, error)
	lastQuery  string
	lastArgs   []any
	execCalled bool
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execCalled = true
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

func testEvent() *domain.Event {
	return &domain.Event{
		EventID:   "e1",
		WebsiteID: "w1",
		SessionID: "s1",
		VisitID:   "v1",
		CreatedAt: time.Now().UTC(),
		URLPath:   "/",
		EventType: domain.EventTypePageView,
		Country:   "DE",
		DedupeKey: "dk",
	}
}

// ------------------------------------------------------------
// SUCCESS (created)
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Created(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO website_event") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewEventRepository(db)

	created, err := repo.InsertEvent(context.Background(), testEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true, got false")
	}
	if !db.execCalled {
		t.Fatalf("expected ExecContext to be called")
	}
	if len(db.lastArgs) != 18 {
		t.Fatalf("expected 18 args, got %d", len(db.lastArgs))
	}
	// url_query is empty and must be stored as NULL
	if db.lastArgs[6] != nil {
		t.Fatalf("expected nil url_query, got %v", db.lastArgs[6])
	}
	if db.lastArgs[14] != "DE" {
		t.Fatalf("expected country DE, got %v", db.lastArgs[14])
	}
}

// ------------------------------------------------------------
// DUPLICATE (rowsAffected=0)
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Duplicate(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return &fakeResult{rowsAffected: 0}, nil
		},
	}

	repo := NewEventRepository(db)

	created, err := repo.InsertEvent(context.Background(), testEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for duplicate")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Error(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("db error")
		},
	}

	repo := NewEventRepository(db)

	created, err := repo.InsertEvent(context.Background(), testEvent())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if errors.Is(err, domain.ErrUnknownWebsite) {
		t.Fatalf("generic error must not map to ErrUnknownWebsite")
	}
	if created {
		t.Fatalf("expected created=false on error")
	}
}

func TestEventRepository_InsertEvent_UnknownWebsite(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "23503", Message: "violates foreign key constraint"}
		},
	}

	repo := NewEventRepository(db)

	_, err := repo.InsertEvent(context.Background(), testEvent())
	if !errors.Is(err, domain.ErrUnknownWebsite) {
		t.Fatalf("expected ErrUnknownWebsite, got %v", err)
	}
}
