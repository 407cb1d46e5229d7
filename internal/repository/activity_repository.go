package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ActivityRepository persists login bookkeeping written by the activity worker.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Record inserts the event and, for logins, stamps users.last_login in the same transaction.
func (r *ActivityRepository) Record(ctx context.Context, ev model.ActivityEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO activity_logs (user_id, action, ip, user_agent, created_at) VALUES ($1, $2, $3, $4, $5)`,
		ev.UserID, ev.Action, ev.IP, ev.UserAgent, ev.At,
	); err != nil {
		return err
	}

	if ev.Action == model.ActivityLogin {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET last_login = GREATEST(COALESCE(last_login, $1), $1) WHERE id = $2`,
			ev.At, ev.UserID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListRecent retrieves the latest activity joined with user emails.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.user_id, u.email, a.action, a.ip, a.created_at
		 FROM activity_logs a JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.ActivityLog{}
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Email, &l.Action, &l.IP, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
