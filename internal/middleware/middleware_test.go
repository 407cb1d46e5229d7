package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	tokens  map[string]*service.Claims
	revoked map[string]bool
}

func (f *fakeValidator) ValidateToken(tok string) (*service.Claims, error) {
	c, ok := f.tokens[tok]
	if !ok {
		return nil, errors.New("bad token")
	}
	return c, nil
}

func (f *fakeValidator) CheckRevoked(_ context.Context, jti string) error {
	if f.revoked[jti] {
		return service.ErrTokenRevoked
	}
	return nil
}

func newValidator() *fakeValidator {
	return &fakeValidator{
		tokens: map[string]*service.Claims{
			"student-token": {RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}, UserID: 1, Role: model.RoleStudent},
			"admin-token":   {RegisteredClaims: jwt.RegisteredClaims{ID: "jti-2"}, UserID: 2, Role: model.RoleAdmin},
		},
		revoked: map[string]bool{},
	}
}

func protectedRouter(v *fakeValidator, roles ...model.Role) *gin.Engine {
	r := gin.New()
	r.GET("/p", RequireAuth(v), RejectRevoked(v), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", GetClaims(c).UserID)
	})
	return r
}

func TestRequireAuth_TokenSources(t *testing.T) {
	r := protectedRouter(newValidator(), model.Roles...)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		target string
		want   int
	}{
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer student-token") }, "/p", http.StatusOK},
		{"legacy header", func(req *http.Request) { req.Header.Set(HeaderLegacyToken, "student-token") }, "/p", http.StatusOK},
		{"query", func(*http.Request) {}, "/p?token=student-token", http.StatusOK},
		{"missing", func(*http.Request) {}, "/p", http.StatusUnauthorized},
		{"invalid", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, "/p", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRejectRevoked(t *testing.T) {
	v := newValidator()
	v.revoked["jti-1"] = true
	r := protectedRouter(v, model.Roles...)

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "TOKEN_REVOKED") {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(newValidator(), model.RoleAdmin)

	for tok, want := range map[string]int{"admin-token": http.StatusOK, "student-token": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("%s: status = %d, want %d", tok, w.Code, want)
		}
	}
}

func TestRateLimiter_AllowAndRefill(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil)
	now := time.Now()

	if !rl.allow("k", now) || !rl.allow("k", now) {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("k", now) {
		t.Fatal("third request should be limited")
	}
	if !rl.allow("other", now) {
		t.Fatal("buckets must be independent per key")
	}
	if !rl.allow("k", now.Add(time.Minute)) {
		t.Fatal("bucket should refill after the interval")
	}
}

func TestBrotli(t *testing.T) {
	r := gin.New()
	r.Use(Brotli())
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusOK, strings.Repeat("a", 4096)) })
	r.GET("/api/materials/1/download", func(c *gin.Context) { c.String(http.StatusOK, strings.Repeat("a", 4096)) })

	tests := []struct {
		path     string
		encoding string
	}{
		{"/small", ""},
		{"/big", "br"},
		{"/api/materials/1/download", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Content-Encoding"); got != tt.encoding {
			t.Errorf("%s: Content-Encoding = %q, want %q", tt.path, got, tt.encoding)
		}
	}
}
