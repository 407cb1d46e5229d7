package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type fakeDenylist struct {
	revoked map[string]time.Duration
}

func (d *fakeDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

func authFixture(users *fakeUsers) (*gin.Engine, *service.AuthService, *fakeDenylist) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 5 * time.Hour, BcryptCost: bcrypt.MinCost}
	deny := &fakeDenylist{revoked: map[string]time.Duration{}}
	svc := service.NewAuthService(cfg, users, deny, nil, nil, zerolog.Nop())
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/admin/create-admin", h.CreateFirstAdmin)
	return r, svc, deny
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUsers(model.User{ID: 1, Email: "taken@example.com", Role: model.RoleStudent})
	r, _, _ := authFixture(users)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "taken@example.com",
		"password": "secret123",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Error == nil || env.Error.Code != "EMAIL_ALREADY_REGISTERED" {
		t.Fatalf("error = %+v, want EMAIL_ALREADY_REGISTERED", env.Error)
	}
	if users.created != 0 {
		t.Fatalf("created = %d, want 0", users.created)
	}
	if string(env.Data) != "null" && len(env.Data) != 0 {
		t.Fatalf("data = %s, want no token", env.Data)
	}
}

func TestRegister_IssuesValidToken(t *testing.T) {
	users := newFakeUsers()
	r, svc, _ := authFixture(users)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "New@Example.com",
		"password": "secret123",
		"role":     "ug",
		"class":    "10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", w.Code, w.Body.String())
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Role != model.RoleUG || claims.Class != "10" || claims.UserID != resp.User.ID {
		t.Fatalf("claims = %+v", claims)
	}
	if resp.User.Email != "new@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
}

func TestRegister_AdminRoleRefused(t *testing.T) {
	users := newFakeUsers()
	r, _, _ := authFixture(users)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "boss@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	if w.Code != http.StatusBadRequest || users.created != 0 {
		t.Fatalf("status = %d created = %d, want 400 and 0", w.Code, users.created)
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	users := newFakeUsers(
		model.User{ID: 1, Email: "a@example.com", PasswordHash: string(hash), Role: model.RoleStudent, IsActive: true},
		model.User{ID: 2, Email: "off@example.com", PasswordHash: string(hash), Role: model.RoleStudent},
	)
	r, _, _ := authFixture(users)

	tests := []struct {
		name  string
		email string
		pass  string
		want  int
	}{
		{"ok", "a@example.com", "secret123", http.StatusOK},
		{"wrong password", "a@example.com", "nope", http.StatusBadRequest},
		{"unknown email", "x@example.com", "secret123", http.StatusBadRequest},
		{"disabled", "off@example.com", "secret123", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"email": tt.email, "password": tt.pass})
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCreateFirstAdmin_OnlyOnce(t *testing.T) {
	users := newFakeUsers()
	r, _, _ := authFixture(users)
	body := map[string]any{"email": "root@example.com", "password": "secret123"}

	if w, _ := doJSON(t, r, http.MethodPost, "/api/admin/create-admin", body); w.Code != http.StatusCreated {
		t.Fatalf("first: status = %d, want 201", w.Code)
	}
	body["email"] = "second@example.com"
	if w, _ := doJSON(t, r, http.MethodPost, "/api/admin/create-admin", body); w.Code != http.StatusBadRequest {
		t.Fatalf("second: status = %d, want 400", w.Code)
	}
}
