package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
)

type fakeActivityStore struct {
	err   error
	calls int
}

func (f *fakeActivityStore) Record(context.Context, model.ActivityEvent) error {
	f.calls++
	return f.err
}

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent(`{"user_id":7,"action":"login","ip":"10.0.0.1","at":"2025-02-01T08:00:00Z"}`)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if ev.UserID != 7 || ev.Action != model.ActivityLogin || ev.IP != "10.0.0.1" {
		t.Fatalf("decodeEvent() = %+v", ev)
	}
	if !ev.At.Equal(time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("At = %v", ev.At)
	}
}

func TestDecodeEvent_DefaultsTimestamp(t *testing.T) {
	ev, err := decodeEvent(`{"user_id":1,"action":"register"}`)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if ev.At.IsZero() {
		t.Fatal("missing timestamp was not defaulted")
	}
}

func TestDecodeEvent_Rejects(t *testing.T) {
	for _, raw := range []string{`not json`, `{"action":"login"}`, `{"user_id":3}`} {
		if _, err := decodeEvent(raw); err == nil {
			t.Errorf("decodeEvent(%q) succeeded, want error", raw)
		}
	}
}

func TestActivityWorker_RecordRequeuesOnlyTransientErrors(t *testing.T) {
	const raw = `{"user_id":42,"action":"login"}`

	tests := []struct {
		name        string
		err         error
		wantRequeue bool
	}{
		{"stored", nil, false},
		{"deleted user", &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}, false},
		{"wrapped not null", fmt.Errorf("insert activity: %w", &pgconn.PgError{Code: "23502"}), false},
		{"bad value", &pgconn.PgError{Code: "22P02"}, false},
		{"connection lost", errors.New("conn closed"), true},
		{"timeout", context.DeadlineExceeded, true},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeActivityStore{err: tt.err}
			w := NewActivityWorker(store, nil, time.Second, zerolog.Nop())

			if got := w.record(context.Background(), raw); got != tt.wantRequeue {
				t.Fatalf("record() requeue = %v, want %v", got, tt.wantRequeue)
			}
			if store.calls != 1 {
				t.Fatalf("Record called %d times, want 1", store.calls)
			}
		})
	}
}

func TestActivityWorker_RecordDropsMalformed(t *testing.T) {
	store := &fakeActivityStore{}
	w := NewActivityWorker(store, nil, time.Second, zerolog.Nop())

	if w.record(context.Background(), `{"action":"login"}`) {
		t.Fatal("malformed event was requeued")
	}
	if store.calls != 0 {
		t.Fatalf("Record called %d times for a malformed event", store.calls)
	}
}
