package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// SubjectRepository handles academic record data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// ListByUser retrieves a user's subjects ordered by semester.
func (r *SubjectRepository) ListByUser(ctx context.Context, userID int) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, grade, credits, semester
		 FROM subjects WHERE user_id = $1 ORDER BY semester, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Grade, &s.Credits, &s.Semester); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// starterSubjects is the record every new student starts with.
var starterSubjects = []model.Subject{
	{Name: "Mathematics", Grade: "A", Credits: 4, Semester: 1},
	{Name: "Physics", Grade: "B+", Credits: 4, Semester: 1},
	{Name: "English", Grade: "A-", Credits: 3, Semester: 1},
	{Name: "Chemistry", Grade: "B", Credits: 4, Semester: 2},
	{Name: "Computer Science", Grade: "A+", Credits: 3, Semester: 2},
}

// SeedStarter writes the starter subjects and two weeks of attendance for a new student.
func (r *SubjectRepository) SeedStarter(ctx context.Context, userID int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"subjects"},
		[]string{"user_id", "name", "grade", "credits", "semester"},
		pgx.CopyFromSlice(len(starterSubjects), func(i int) ([]any, error) {
			s := starterSubjects[i]
			return []any{userID, s.Name, s.Grade, s.Credits, s.Semester}, nil
		}),
	)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var rows [][]any
	for day := 1; day <= 14; day++ {
		date := today.AddDate(0, 0, -day)
		for i, s := range starterSubjects {
			status := model.AttendancePresent
			if (day+i)%6 == 0 {
				status = model.AttendanceAbsent
			}
			rows = append(rows, []any{userID, s.Name, date, string(status)})
		}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"attendance"},
		[]string{"user_id", "subject", "date", "status"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ListByUser retrieves a user's attendance, most recent first.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, subject, date, status
		 FROM attendance WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.Subject, &a.Date, &a.Status); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
