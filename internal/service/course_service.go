package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// CourseStore is the course storage the catalogue needs.
type CourseStore interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int) error
}

// CourseService handles the course catalogue.
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courses.ListAll(ctx)
}

// ListForClass returns the courses whose name mentions the class as
// "class N", "-N" or "classN". An empty class returns every course.
func (s *CourseService) ListForClass(ctx context.Context, class string) ([]model.Course, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	class = strings.ToLower(strings.TrimSpace(class))
	if class == "" {
		return courses, nil
	}

	return lo.Filter(courses, func(c model.Course, _ int) bool {
		return CourseMatchesClass(c.Name, class)
	}), nil
}

// CourseMatchesClass reports whether a course name targets the given class.
// The class must end on a digit boundary, so class 1 does not match Class 10.
func CourseMatchesClass(name, class string) bool {
	name = strings.ToLower(name)
	class = strings.ToLower(class)
	return containsClass(name, "class "+class) ||
		containsClass(name, "-"+class) ||
		containsClass(name, "class"+class)
}

func containsClass(name, marker string) bool {
	for rest := name; ; {
		i := strings.Index(rest, marker)
		if i < 0 {
			return false
		}
		end := i + len(marker)
		if end == len(rest) || !unicode.IsDigit(rune(rest[end])) {
			return true
		}
		rest = rest[i+1:]
	}
}

// Create inserts a course.
func (s *CourseService) Create(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error) {
	c := &model.Course{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Description: req.Description,
		Credits:     req.Credits,
		Instructor:  req.Instructor,
		Semester:    req.Semester,
		Year:        req.Year,
		Progress:    req.Progress,
		ExamDate:    req.ExamDate,
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves one course.
func (s *CourseService) Get(ctx context.Context, id int) (*model.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// Delete removes a course. A missing course yields repository.ErrNotFound.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courses.Delete(ctx, id)
}
