package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// Material errors.
var (
	ErrNotOwner    = errors.New("not the owner of this resource")
	ErrFileMissing = errors.New("file not found on server")
)

// MaterialStore persists material metadata.
type MaterialStore interface {
	GetByID(ctx context.Context, id int) (*model.Material, error)
	List(ctx context.Context, f model.MaterialFilter) ([]model.Material, error)
	Create(ctx context.Context, m *model.Material) error
	IncrementViews(ctx context.Context, id int) error
	IncrementDownloads(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

// CourseLookup resolves a course by ID.
type CourseLookup interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
}

// MaterialService stores uploaded course materials on disk and their metadata in Postgres.
type MaterialService struct {
	materials MaterialStore
	courses   CourseLookup
	dir       string
	log       zerolog.Logger
}

// NewMaterialService creates a new MaterialService storing files under uploadDir/materials.
func NewMaterialService(materials MaterialStore, courses CourseLookup, uploadDir string, log zerolog.Logger) *MaterialService {
	return &MaterialService{
		materials: materials,
		courses:   courses,
		dir:       filepath.Join(uploadDir, "materials"),
		log:       log.With().Str("component", "material_service").Logger(),
	}
}

// Upload validates the file, checks the course, writes the file and records it.
// The written file is removed again if the metadata insert fails.
func (s *MaterialService) Upload(ctx context.Context, uploaderID int, req model.UploadMaterialRequest, file multipart.File, header *multipart.FileHeader) (*model.Material, error) {
	inferred, err := MaterialUploads.Check(header)
	if err != nil {
		return nil, err
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	path, err := saveFile(s.dir, file, header)
	if err != nil {
		return nil, err
	}

	m := &model.Material{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		CourseID:    req.CourseID,
		UploadedBy:  uploaderID,
		FilePath:    path,
		FileName:    filepath.Base(header.Filename),
		FileSize:    header.Size,
		MimeType:    header.Header.Get("Content-Type"),
		Duration:    req.Duration,
		SlideCount:  req.SlideCount,
		IsPublic:    req.IsPublic == nil || *req.IsPublic,
		Tags:        SplitTags(req.Tags),
	}
	if m.Type == "" {
		m.Type = model.MaterialType(inferred)
	}

	if err := s.materials.Create(ctx, m); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("create material: %w", err)
	}
	return m, nil
}

// SplitTags splits a comma-separated tag field, dropping blanks.
func SplitTags(raw string) []string {
	tags := lo.Map(strings.Split(raw, ","), func(t string, _ int) string { return strings.TrimSpace(t) })
	return lo.Compact(tags)
}

// ListByCourse returns a course's materials, optionally of one type.
func (s *MaterialService) ListByCourse(ctx context.Context, courseID int, typ model.MaterialType) ([]model.Material, error) {
	return s.materials.List(ctx, model.MaterialFilter{CourseID: &courseID, Type: typ})
}

// ListPublic returns public materials, optionally narrowed by course and type.
func (s *MaterialService) ListPublic(ctx context.Context, courseID *int, typ model.MaterialType) ([]model.Material, error) {
	return s.materials.List(ctx, model.MaterialFilter{CourseID: courseID, Type: typ, PublicOnly: true})
}

// Get returns a material and counts the view.
func (s *MaterialService) Get(ctx context.Context, id int) (*model.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.materials.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	m.ViewCount++
	return m, nil
}

// Download resolves the file for an attachment response and counts the download.
func (s *MaterialService) Download(ctx context.Context, id int) (*model.Material, error) {
	m, err := s.File(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.materials.IncrementDownloads(ctx, id); err != nil {
		return nil, fmt.Errorf("increment downloads: %w", err)
	}
	m.DownloadCount++
	return m, nil
}

// File resolves a material whose file still exists on disk.
func (s *MaterialService) File(ctx context.Context, id int) (*model.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(m.FilePath); err != nil {
		return nil, ErrFileMissing
	}
	return m, nil
}

// Delete removes a material uploaded by userID: the file first, then the row.
func (s *MaterialService) Delete(ctx context.Context, userID, id int) error {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.UploadedBy != userID {
		return ErrNotOwner
	}

	if err := os.Remove(m.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return s.materials.Delete(ctx, id)
}
