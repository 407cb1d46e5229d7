package service

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/model"
)

type fakeCourseStore struct {
	courses []model.Course
}

func (f *fakeCourseStore) GetByID(context.Context, int) (*model.Course, error) { return nil, nil }
func (f *fakeCourseStore) ListAll(context.Context) ([]model.Course, error) { return f.courses, nil }
func (f *fakeCourseStore) Create(context.Context, *model.Course) error { return nil }
func (f *fakeCourseStore) Delete(context.Context, int) error { return nil }

type fakeListings struct {
	resources []model.Resource
}

func (f *fakeListings) ListAll(context.Context) ([]model.Resource, error) { return f.resources, nil }

func TestCourseMatchesClass(t *testing.T) {
	tests := []struct {
		name  string
		class string
		want  bool
	}{
		{"Mathematics - Class 10", "10", true},
		{"Science - Class 9", "10", false},
		{"English-5", "5", true},
		{"Physics class7", "7", true},
		{"Chemistry", "8", false},
		{"Mathematics - Class 10", "1", false},
		{"Science - Class 12", "1", false},
		{"Science - Class 1", "1", true},
		{"Grade-1 Reading", "1", true},
		{"Grade-12 Calculus", "1", false},
		{"Class 12 and Class 1 Review", "1", true},
	}

	for _, tt := range tests {
		if got := CourseMatchesClass(tt.name, tt.class); got != tt.want {
			t.Errorf("CourseMatchesClass(%q, %q) = %v, want %v", tt.name, tt.class, got, tt.want)
		}
	}
}

func TestCourseService_ListForClass(t *testing.T) {
	store := &fakeCourseStore{courses: []model.Course{
		{ID: 1, Name: "Mathematics - Class 10"},
		{ID: 2, Name: "Science - Class 9"},
		{ID: 3, Name: "History - Class 10"},
	}}
	svc := NewCourseService(store)

	got, err := svc.ListForClass(context.Background(), " 10 ")
	if err != nil {
		t.Fatalf("ListForClass: %v", err)
	}
	if ids := lo.Map(got, func(c model.Course, _ int) int { return c.ID }); len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("ids = %v, want [1 3]", ids)
	}

	all, _ := svc.ListForClass(context.Background(), "")
	if len(all) != 3 {
		t.Fatalf("empty class returned %d courses, want 3", len(all))
	}
}

func TestListingService_ResourcesFuzzy(t *testing.T) {
	svc := NewListingService(&fakeListings{resources: []model.Resource{
		{ID: 1, Subject: "Math", Title: "Algebra Basics"},
		{ID: 2, Subject: "Biology", Title: "Photosynthesis Explained"},
	}}, nil)

	tests := []struct {
		q    string
		want []int
	}{
		{"", []int{1, 2}},
		{"ALG", []int{1}},
		{"bio", []int{2}},
		{"alg bio", []int{1, 2}},
		{"zzz", []int{}},
	}

	for _, tt := range tests {
		got, err := svc.Resources(context.Background(), tt.q)
		if err != nil {
			t.Fatalf("Resources(%q): %v", tt.q, err)
		}
		ids := lo.Map(got, func(r model.Resource, _ int) int { return r.ID })
		if len(ids) != len(tt.want) {
			t.Errorf("Resources(%q) = %v, want %v", tt.q, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("Resources(%q) = %v, want %v", tt.q, ids, tt.want)
				break
			}
		}
	}
}
