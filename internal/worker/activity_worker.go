package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ActivityStore persists activity events.
type ActivityStore interface {
	Record(ctx context.Context, ev model.ActivityEvent) error
}

// ActivityWorker consumes the activity queue and records login bookkeeping in PostgreSQL.
type ActivityWorker struct {
	store        ActivityStore
	rdb          *redis.Client
	log          zerolog.Logger
	queue        string
	retryDelay   time.Duration
	drainTimeout time.Duration
}

// NewActivityWorker creates a new ActivityWorker.
func NewActivityWorker(store ActivityStore, rdb *redis.Client, drainTimeout time.Duration, log zerolog.Logger) *ActivityWorker {
	return &ActivityWorker{
		store:        store,
		rdb:          rdb,
		log:          log.With().Str("component", "activity_worker").Logger(),
		queue:        config.WorkerKey.ActivityQueue,
		retryDelay:   5 * time.Second,
		drainTimeout: drainTimeout,
	}
}

// Start begins the worker loop and blocks until ctx is cancelled. Call in a goroutine.
func (w *ActivityWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			drainCtx, cancel := context.WithTimeout(context.Background(), w.drainTimeout)
			w.drain(drainCtx)
			cancel()
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ActivityWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout passes.
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(time.Second)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if w.record(ctx, result[1]) {
		w.rdb.RPush(ctx, w.queue, result[1])
		time.Sleep(w.retryDelay)
	}
}

// record decodes and persists one queued event. It reports whether the event
// should go back on the queue; malformed events and rows the database rejects
// outright are dropped.
func (w *ActivityWorker) record(ctx context.Context, raw string) (requeue bool) {
	ev, err := decodeEvent(raw)
	if err != nil {
		w.log.Error().Err(err).Msg("Dropping malformed activity event")
		return false
	}

	err = w.store.Record(ctx, ev)
	switch {
	case err == nil:
		return false
	case isPermanent(err):
		w.log.Warn().Err(err).
			Int("user_id", ev.UserID).
			Str("action", string(ev.Action)).
			Msg("Activity event rejected by database, dropping")
		return false
	default:
		w.log.Error().Err(err).
			Int("user_id", ev.UserID).
			Str("action", string(ev.Action)).
			Dur("retry_in", w.retryDelay).
			Msg("Persist error, requeueing")
		return true
	}
}

// drain records whatever is left in the queue before shutdown.
func (w *ActivityWorker) drain(ctx context.Context) {
	drained := 0
	for ctx.Err() == nil {
		raw, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}

		if w.record(ctx, raw) {
			w.rdb.RPush(context.Background(), w.queue, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

// isPermanent reports whether retrying err can never succeed: integrity
// violations (class 23) and data exceptions (class 22).
func isPermanent(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22")
}

func decodeEvent(raw string) (model.ActivityEvent, error) {
	var ev model.ActivityEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return ev, fmt.Errorf("unmarshal activity event: %w", err)
	}
	if ev.UserID <= 0 || ev.Action == "" {
		return ev, fmt.Errorf("incomplete activity event: %q", raw)
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	return ev, nil
}

// ActivityQueue publishes activity events for the worker.
type ActivityQueue struct {
	rdb   *redis.Client
	queue string
}

// NewActivityQueue creates a publisher on the configured activity queue.
func NewActivityQueue(rdb *redis.Client) *ActivityQueue {
	return &ActivityQueue{rdb: rdb, queue: config.WorkerKey.ActivityQueue}
}

// Publish enqueues one event.
func (q *ActivityQueue) Publish(ctx context.Context, ev model.ActivityEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	return q.rdb.RPush(ctx, q.queue, payload).Err()
}
