package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// PlagiarismRepository persists plagiarism analysis runs.
type PlagiarismRepository struct {
	pool *pgxpool.Pool
}

// NewPlagiarismRepository creates a new PlagiarismRepository.
func NewPlagiarismRepository(pool *pgxpool.Pool) *PlagiarismRepository {
	return &PlagiarismRepository{pool: pool}
}

// Create stores a report. The analysis is kept as JSONB.
func (r *PlagiarismRepository) Create(ctx context.Context, rep *model.PlagiarismReport) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO plagiarism_reports (user_id, source, title, description, file_name, file_size, text_length,
			analysis, is_fallback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, analysis_date`,
		rep.UserID, rep.Source, rep.Title, rep.Description, rep.FileName, rep.FileSize, rep.TextLength,
		rep.Analysis, rep.IsFallback,
	).Scan(&rep.ID, &rep.AnalysisDate)
}

// ListByUser retrieves a user's reports, newest first.
func (r *PlagiarismRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.PlagiarismReport, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, source, title, description, file_name, file_size, text_length, analysis,
			is_fallback, analysis_date
		 FROM plagiarism_reports WHERE user_id = $1
		 ORDER BY analysis_date DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.PlagiarismReport{}
	for rows.Next() {
		var rep model.PlagiarismReport
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Source, &rep.Title, &rep.Description, &rep.FileName,
			&rep.FileSize, &rep.TextLength, &rep.Analysis, &rep.IsFallback, &rep.AnalysisDate); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
