package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// QuizRepository handles stored quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// ListWithQuestions retrieves every quiz with its questions, answer keys included.
func (r *QuizRepository) ListWithQuestions(ctx context.Context) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, subject, created_at FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	index := map[int]int{}
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Subject, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Questions = []model.QuizQuestion{}
		index[q.ID] = len(quizzes)
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	qrows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, text, options, correct_answer FROM quiz_questions ORDER BY quiz_id, position, id`)
	if err != nil {
		return nil, err
	}
	defer qrows.Close()

	for qrows.Next() {
		var qq model.QuizQuestion
		if err := qrows.Scan(&qq.ID, &qq.QuizID, &qq.Text, &qq.Options, &qq.CorrectAnswer); err != nil {
			return nil, err
		}
		if i, ok := index[qq.QuizID]; ok {
			quizzes[i].Questions = append(quizzes[i].Questions, qq)
		}
	}
	return quizzes, qrows.Err()
}

// GetWithQuestions retrieves one quiz and its questions.
func (r *QuizRepository) GetWithQuestions(ctx context.Context, id int) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := r.pool.QueryRow(ctx, `SELECT id, title, subject, created_at FROM quizzes WHERE id = $1`, id).
		Scan(&q.ID, &q.Title, &q.Subject, &q.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, text, options, correct_answer FROM quiz_questions WHERE quiz_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	q.Questions = []model.QuizQuestion{}
	for rows.Next() {
		var qq model.QuizQuestion
		if err := rows.Scan(&qq.ID, &qq.QuizID, &qq.Text, &qq.Options, &qq.CorrectAnswer); err != nil {
			return nil, err
		}
		q.Questions = append(q.Questions, qq)
	}
	return q, rows.Err()
}

// CreateIfAbsent inserts a quiz and its questions unless a quiz with the same title exists.
// It reports whether a new quiz was written.
func (r *QuizRepository) CreateIfAbsent(ctx context.Context, q *model.Quiz) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (title, subject) VALUES ($1, $2)
		 ON CONFLICT (title) DO NOTHING
		 RETURNING id, created_at`,
		q.Title, q.Subject,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"quiz_questions"},
		[]string{"quiz_id", "text", "options", "correct_answer", "position"},
		pgx.CopyFromSlice(len(q.Questions), func(i int) ([]any, error) {
			qq := q.Questions[i]
			return []any{q.ID, qq.Text, qq.Options, qq.CorrectAnswer, i}, nil
		}),
	)
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
