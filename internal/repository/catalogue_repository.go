package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ─── Publications ───────────────────────────────────────────────────────────

// PublicationRepository handles publication data access.
type PublicationRepository struct {
	pool *pgxpool.Pool
}

// NewPublicationRepository creates a new PublicationRepository.
func NewPublicationRepository(pool *pgxpool.Pool) *PublicationRepository {
	return &PublicationRepository{pool: pool}
}

// ListByUser retrieves a user's publications, newest year first.
func (r *PublicationRepository) ListByUser(ctx context.Context, userID int) ([]model.Publication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, journal, year, created_at
		 FROM publications WHERE user_id = $1 ORDER BY year DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pubs := []model.Publication{}
	for rows.Next() {
		var p model.Publication
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Journal, &p.Year, &p.CreatedAt); err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// Create inserts a publication.
func (r *PublicationRepository) Create(ctx context.Context, p *model.Publication) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO publications (user_id, title, journal, year) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.UserID, p.Title, p.Journal, p.Year,
	).Scan(&p.ID, &p.CreatedAt)
}

// ─── Resources ──────────────────────────────────────────────────────────────

// ResourceRepository handles curated resource data access.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

// ListAll retrieves every resource grouped by subject.
func (r *ResourceRepository) ListAll(ctx context.Context) ([]model.Resource, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, subject, title, type, url FROM resources ORDER BY subject, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(&res.ID, &res.Subject, &res.Title, &res.Type, &res.URL); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Upsert inserts a resource or refreshes the row with the same title.
func (r *ResourceRepository) Upsert(ctx context.Context, res *model.Resource) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resources (subject, title, type, url) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (title) DO UPDATE SET subject = EXCLUDED.subject, type = EXCLUDED.type, url = EXCLUDED.url
		 RETURNING id`,
		res.Subject, res.Title, res.Type, res.URL,
	).Scan(&res.ID)
}

// ─── Internships ────────────────────────────────────────────────────────────

// InternshipRepository handles internship data access.
type InternshipRepository struct {
	pool *pgxpool.Pool
}

// NewInternshipRepository creates a new InternshipRepository.
func NewInternshipRepository(pool *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{pool: pool}
}

// ListAll retrieves every internship.
func (r *InternshipRepository) ListAll(ctx context.Context) ([]model.Internship, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, company, location, description, apply_url FROM internships ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	internships := []model.Internship{}
	for rows.Next() {
		var in model.Internship
		if err := rows.Scan(&in.ID, &in.Title, &in.Company, &in.Location, &in.Description, &in.ApplyURL); err != nil {
			return nil, err
		}
		internships = append(internships, in)
	}
	return internships, rows.Err()
}

// Upsert inserts an internship or refreshes the row with the same title and company.
func (r *InternshipRepository) Upsert(ctx context.Context, in *model.Internship) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO internships (title, company, location, description, apply_url) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (title, company) DO UPDATE SET
			location = EXCLUDED.location, description = EXCLUDED.description, apply_url = EXCLUDED.apply_url
		 RETURNING id`,
		in.Title, in.Company, in.Location, in.Description, in.ApplyURL,
	).Scan(&in.ID)
}
