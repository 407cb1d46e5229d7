package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const userColumns = `id, email, password_hash, role, first_name, last_name, profile_picture, class,
	is_active, last_login, created_at, updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.ProfilePicture,
		&u.Class, &u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, first_name, last_name, profile_picture, class, is_active)
		 VALUES (LOWER($1), $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, email, created_at, updated_at`,
		u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, u.ProfilePicture, u.Class, u.IsActive,
	).Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ExistsByRole reports whether at least one user holds role.
func (r *UserRepository) ExistsByRole(ctx context.Context, role model.Role) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists)
	return exists, err
}

// ListPaginated retrieves users newest first, filtered by role, active flag and an
// ILIKE search over email and names.
func (r *UserRepository) ListPaginated(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.User, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, `role = $`+strconv.Itoa(len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conds = append(conds, `is_active = $`+strconv.Itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, `(email ILIKE $`+n+` OR first_name ILIKE $`+n+` OR last_name ILIKE $`+n+`)`)
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " AND ")
	}

	// 1. Get total count
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	argIdx := len(args) + 1
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Update applies the non-nil fields of req and returns the updated user.
func (r *UserRepository) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+` = $`+strconv.Itoa(len(args)))
	}
	if req.Role != nil {
		set("role", *req.Role)
	}
	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.ProfilePicture != nil {
		set("profile_picture", *req.ProfilePicture)
	}
	if req.IsActive != nil {
		set("is_active", *req.IsActive)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// BulkUpdate applies the same changes to every listed user and returns the number of rows changed.
func (r *UserRepository) BulkUpdate(ctx context.Context, ids []int, u model.BulkUserUpdates) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET
			is_active = COALESCE($1, is_active),
			role = COALESCE($2, role),
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ANY($3)`,
		u.IsActive, u.Role, ids,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin records a successful login time.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

// RecentLogins lists users by most recent login. A non-zero since drops older logins.
func (r *UserRepository) RecentLogins(ctx context.Context, since time.Time, limit int) ([]model.LoginEntry, error) {
	query := `SELECT id, email, first_name, last_name, role, last_login FROM users WHERE last_login IS NOT NULL`
	args := []any{}
	if !since.IsZero() {
		args = append(args, since)
		query += ` AND last_login >= $1`
	}
	args = append(args, limit)
	query += ` ORDER BY last_login DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.LoginEntry{}
	for rows.Next() {
		var e model.LoginEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.Role, &e.LastLogin); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
