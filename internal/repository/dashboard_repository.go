package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetOverview retrieves the headline counters. Users created after since count as recent.
func (r *DashboardRepository) GetOverview(ctx context.Context, since time.Time) (model.DashboardOverview, error) {
	var o model.DashboardOverview
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM internships),
			(SELECT COUNT(*) FROM publications),
			(SELECT COUNT(*) FROM quizzes),
			(SELECT COUNT(*) FROM resources),
			(SELECT COUNT(*) FROM users WHERE created_at >= $1)`, since,
	).Scan(&o.TotalUsers, &o.ActiveUsers, &o.TotalCourses, &o.TotalInternships, &o.TotalPublications,
		&o.TotalQuizzes, &o.TotalResources, &o.RecentUsers)
	return o, err
}

// GetRoleCounts retrieves the distribution of users by role.
func (r *DashboardRepository) GetRoleCounts(ctx context.Context) ([]model.RoleCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []model.RoleCount{}
	for rows.Next() {
		var rc model.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, rc)
	}
	return counts, rows.Err()
}
