package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const courseColumns = `id, name, code, description, credits, instructor, semester, year, progress, exam_date,
	created_at, updated_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credits, &c.Instructor, &c.Semester, &c.Year,
		&c.Progress, &c.ExamDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return c, nil
}

func collectCourses(rows pgx.Rows) ([]model.Course, error) {
	defer rows.Close()
	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// ListAll retrieves every course ordered by name.
func (r *CourseRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// ListRecent retrieves the most recently created courses.
func (r *CourseRepository) ListRecent(ctx context.Context, limit int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// ListPaginated retrieves courses newest first with an ILIKE search over
// name, code and description, and an ILIKE instructor filter.
func (r *CourseRepository) ListPaginated(ctx context.Context, f model.CourseFilter, limit, offset int) ([]model.Course, int, error) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, `(name ILIKE $`+n+` OR code ILIKE $`+n+` OR description ILIKE $`+n+`)`)
	}
	if s := strings.TrimSpace(f.Instructor); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, `instructor ILIKE $`+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT ` + courseColumns + ` FROM courses` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	courses, err := collectCourses(rows)
	return courses, total, err
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, code, description, credits, instructor, semester, year, progress, exam_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.Description, c.Credits, c.Instructor, c.Semester, c.Year, c.Progress, c.ExamDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Upsert inserts a course or refreshes the existing row with the same code.
func (r *CourseRepository) Upsert(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, code, description, credits, instructor, semester, year, progress, exam_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, credits = EXCLUDED.credits,
			instructor = EXCLUDED.instructor, semester = EXCLUDED.semester, year = EXCLUDED.year,
			updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.Description, c.Credits, c.Instructor, c.Semester, c.Year, c.Progress, c.ExamDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Delete removes a course by ID.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
