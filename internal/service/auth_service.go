package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrRoleNotAssignable  = errors.New("role cannot be self-assigned")
)

// Claims extends JWT standard claims with the principal.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
	Class  string     `json:"class,omitempty"`
}

// UserAccounts is the user storage the auth flows need.
type UserAccounts interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	ExistsByRole(ctx context.Context, role model.Role) (bool, error)
}

// TokenDenylist records logged-out token IDs.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ActivityPublisher hands activity events to the background worker.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev model.ActivityEvent) error
}

// StarterRecords provisions the academic record of a newly registered student.
type StarterRecords interface {
	SeedStarter(ctx context.Context, userID int) error
}

// ClientMeta identifies the caller of an auth request for activity logging.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// AuthService handles registration, login, JWT issuance and revocation.
type AuthService struct {
	cfg      *config.Config
	users    UserAccounts
	denylist TokenDenylist
	events   ActivityPublisher
	starter  StarterRecords
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService. events and starter may be nil.
func NewAuthService(
	cfg *config.Config,
	users UserAccounts,
	denylist TokenDenylist,
	events ActivityPublisher,
	starter StarterRecords,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		denylist: denylist,
		events:   events,
		starter:  starter,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register creates an account and returns a session token.
// An existing email yields ErrEmailTaken and no record is written.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, meta ClientMeta) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	// Admins are only created through the bootstrap flow.
	if role == model.RoleAdmin {
		return nil, ErrRoleNotAssignable
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Class:        strings.TrimSpace(req.Class),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if user.Role == model.RoleStudent && s.starter != nil {
		if err := s.starter.SeedStarter(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Int("user_id", user.ID).Msg("Failed to seed starter records")
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, user.ID, model.ActivityRegister, meta)

	return &model.AuthResponse{Token: token, User: *user}, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, meta ClientMeta) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	// last_login is written by the activity worker.
	s.publish(ctx, user.ID, model.ActivityLogin, meta)

	return &model.AuthResponse{Token: token, User: *user}, nil
}

// Logout denylists the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *Claims, meta ClientMeta) error {
	ttl := s.cfg.JWTExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.publish(ctx, claims.UserID, model.ActivityLogout, meta)
	return nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, userID int) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CreateFirstAdmin bootstraps the admin account. It refuses once any admin exists.
func (s *AuthService) CreateFirstAdmin(ctx context.Context, req model.CreateAdminRequest) (*model.User, error) {
	exists, err := s.users.ExistsByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil, ErrAdminExists
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	firstName, lastName := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if firstName == "" {
		firstName = "Admin"
	}
	if lastName == "" {
		lastName = "User"
	}

	admin := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// CheckRevoked returns ErrTokenRevoked when the token ID was logged out.
func (s *AuthService) CheckRevoked(ctx context.Context, jti string) error {
	revoked, err := s.denylist.IsRevoked(ctx, jti)
	if err != nil {
		return fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

func (s *AuthService) issueToken(u *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: u.ID,
		Role:   u.Role,
		Class:  u.Class,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// publish is best effort.
func (s *AuthService) publish(ctx context.Context, userID int, action model.ActivityAction, meta ClientMeta) {
	if s.events == nil {
		return
	}
	ev := model.ActivityEvent{
		UserID:    userID,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		At:        time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Str("action", string(action)).Msg("Failed to enqueue activity")
	}
}
