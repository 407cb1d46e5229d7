package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const materialSelect = `SELECT m.id, m.title, m.description, m.type, m.course_id, m.uploaded_by, m.file_path,
	m.file_name, m.file_size, m.mime_type, m.duration, m.thumbnail, m.slide_count, m.is_public, m.tags,
	m.download_count, m.view_count, m.upload_date, m.last_modified,
	c.name, c.code, u.first_name, u.last_name
	FROM materials m
	JOIN courses c ON c.id = m.course_id
	JOIN users u ON u.id = m.uploaded_by`

// MaterialRepository handles course material data access.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

func scanMaterial(row pgx.Row) (*model.Material, error) {
	m := &model.Material{Course: &model.CourseRef{}, Uploader: &model.UserRef{}}
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Type, &m.CourseID, &m.UploadedBy, &m.FilePath,
		&m.FileName, &m.FileSize, &m.MimeType, &m.Duration, &m.Thumbnail, &m.SlideCount, &m.IsPublic, &m.Tags,
		&m.DownloadCount, &m.ViewCount, &m.UploadDate, &m.LastModified,
		&m.Course.Name, &m.Course.Code, &m.Uploader.FirstName, &m.Uploader.LastName)
	if err != nil {
		return nil, mapNoRows(err)
	}
	m.Course.ID = m.CourseID
	m.Uploader.ID = m.UploadedBy
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, nil
}

// GetByID retrieves a material with its course and uploader summaries.
func (r *MaterialRepository) GetByID(ctx context.Context, id int) (*model.Material, error) {
	return scanMaterial(r.pool.QueryRow(ctx, materialSelect+` WHERE m.id = $1`, id))
}

// List retrieves materials newest first.
func (r *MaterialRepository) List(ctx context.Context, f model.MaterialFilter) ([]model.Material, error) {
	var (
		conds []string
		args  []any
	)
	if f.CourseID != nil {
		args = append(args, *f.CourseID)
		conds = append(conds, `m.course_id = $`+strconv.Itoa(len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, `m.type = $`+strconv.Itoa(len(args)))
	}
	if f.PublicOnly {
		conds = append(conds, `m.is_public`)
	}

	query := materialSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY m.upload_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, *m)
	}
	return materials, rows.Err()
}

// Create inserts a new material row.
func (r *MaterialRepository) Create(ctx context.Context, m *model.Material) error {
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO materials (title, description, type, course_id, uploaded_by, file_path, file_name, file_size,
			mime_type, duration, thumbnail, slide_count, is_public, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, upload_date, last_modified`,
		m.Title, m.Description, m.Type, m.CourseID, m.UploadedBy, m.FilePath, m.FileName, m.FileSize,
		m.MimeType, m.Duration, m.Thumbnail, m.SlideCount, m.IsPublic, m.Tags,
	).Scan(&m.ID, &m.UploadDate, &m.LastModified)
}

// IncrementViews bumps the view counter.
func (r *MaterialRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE materials SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

// IncrementDownloads bumps the download counter.
func (r *MaterialRepository) IncrementDownloads(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE materials SET download_count = download_count + 1 WHERE id = $1`, id)
	return err
}

// Delete removes a material row.
func (r *MaterialRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
