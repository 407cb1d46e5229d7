package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
)

type seedRecorder struct {
	courses     map[string]model.Course
	resources   int
	internships int
	quizTitles  map[string]bool
}

func (s *seedRecorder) upsertCourse(_ context.Context, c *model.Course) error {
	s.courses[c.Code] = *c
	return nil
}

type courseSeedFunc func(context.Context, *model.Course) error

func (f courseSeedFunc) Upsert(ctx context.Context, c *model.Course) error { return f(ctx, c) }

type resourceSeedFunc func(context.Context, *model.Resource) error

func (f resourceSeedFunc) Upsert(ctx context.Context, r *model.Resource) error { return f(ctx, r) }

type internshipSeedFunc func(context.Context, *model.Internship) error

func (f internshipSeedFunc) Upsert(ctx context.Context, in *model.Internship) error { return f(ctx, in) }

func (s *seedRecorder) CreateIfAbsent(_ context.Context, q *model.Quiz) (bool, error) {
	if s.quizTitles[q.Title] {
		return false, nil
	}
	s.quizTitles[q.Title] = true
	return true, nil
}

func newSeeder(rec *seedRecorder) *SeedService {
	return NewSeedService(
		courseSeedFunc(rec.upsertCourse),
		resourceSeedFunc(func(context.Context, *model.Resource) error { rec.resources++; return nil }),
		internshipSeedFunc(func(context.Context, *model.Internship) error { rec.internships++; return nil }),
		rec,
		zerolog.Nop(),
	)
}

func TestSeedService_Idempotent(t *testing.T) {
	rec := &seedRecorder{courses: map[string]model.Course{}, quizTitles: map[string]bool{}}
	s := newSeeder(rec)

	first, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !first.QuizCreated || first.Internships != 3 {
		t.Fatalf("first run = %+v", first)
	}

	second, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.QuizCreated {
		t.Error("sample quiz created twice")
	}
	if len(rec.courses) != first.Courses {
		t.Errorf("distinct courses = %d, want %d", len(rec.courses), first.Courses)
	}
}

func TestStarterCourses_MatchClassFilter(t *testing.T) {
	courses := StarterCourses()

	for _, c := range courses {
		if !strings.Contains(c.Name, " - Class ") {
			t.Fatalf("course %q does not follow the Subject - Class N pattern", c.Name)
		}
	}

	var class10 int
	for _, c := range courses {
		if CourseMatchesClass(c.Name, "10") {
			class10++
		}
	}
	if class10 != 4 {
		t.Fatalf("class 10 courses = %d, want 4", class10)
	}
}
