package service

import (
	"context"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ─── Academic record ────────────────────────────────────────────────────────

// SubjectStore lists a user's subjects.
type SubjectStore interface {
	ListByUser(ctx context.Context, userID int) ([]model.Subject, error)
}

// AttendanceStore lists a user's attendance.
type AttendanceStore interface {
	ListByUser(ctx context.Context, userID int) ([]model.Attendance, error)
}

// RecordService serves a user's own subjects and attendance.
type RecordService struct {
	subjects   SubjectStore
	attendance AttendanceStore
}

// NewRecordService creates a new RecordService.
func NewRecordService(subjects SubjectStore, attendance AttendanceStore) *RecordService {
	return &RecordService{subjects: subjects, attendance: attendance}
}

// Subjects returns the user's subjects sorted by semester.
func (s *RecordService) Subjects(ctx context.Context, userID int) ([]model.Subject, error) {
	return s.subjects.ListByUser(ctx, userID)
}

// Attendance returns the user's attendance records.
func (s *RecordService) Attendance(ctx context.Context, userID int) ([]model.Attendance, error) {
	return s.attendance.ListByUser(ctx, userID)
}

// ─── Publications ───────────────────────────────────────────────────────────

// PublicationStore persists publications.
type PublicationStore interface {
	ListByUser(ctx context.Context, userID int) ([]model.Publication, error)
	Create(ctx context.Context, p *model.Publication) error
}

// PublicationService manages a postgraduate's publications.
type PublicationService struct {
	pubs PublicationStore
}

// NewPublicationService creates a new PublicationService.
func NewPublicationService(pubs PublicationStore) *PublicationService {
	return &PublicationService{pubs: pubs}
}

// List returns the user's publications.
func (s *PublicationService) List(ctx context.Context, userID int) ([]model.Publication, error) {
	return s.pubs.ListByUser(ctx, userID)
}

// Create adds a publication owned by userID.
func (s *PublicationService) Create(ctx context.Context, userID int, req model.CreatePublicationRequest) (*model.Publication, error) {
	p := &model.Publication{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Journal: strings.TrimSpace(req.Journal),
		Year:    req.Year,
	}
	if err := s.pubs.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ─── Resources & internships ────────────────────────────────────────────────

// ResourceStore lists curated resources.
type ResourceStore interface {
	ListAll(ctx context.Context) ([]model.Resource, error)
}

// InternshipStore lists internships.
type InternshipStore interface {
	ListAll(ctx context.Context) ([]model.Internship, error)
}

// ListingService serves the shared resource and internship listings.
type ListingService struct {
	resources   ResourceStore
	internships InternshipStore
}

// NewListingService creates a new ListingService.
func NewListingService(resources ResourceStore, internships InternshipStore) *ListingService {
	return &ListingService{resources: resources, internships: internships}
}

// Resources returns every resource, or those whose title or subject fuzzily
// matches any whitespace-separated term of q.
func (s *ListingService) Resources(ctx context.Context, q string) ([]model.Resource, error) {
	all, err := s.resources.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return all, nil
	}

	return lo.Filter(all, func(r model.Resource, _ int) bool {
		return lo.SomeBy(terms, func(term string) bool {
			return fuzzy.MatchFold(term, r.Title) || fuzzy.MatchFold(term, r.Subject)
		})
	}), nil
}

// Internships returns every internship.
func (s *ListingService) Internships(ctx context.Context) ([]model.Internship, error) {
	return s.internships.ListAll(ctx)
}
