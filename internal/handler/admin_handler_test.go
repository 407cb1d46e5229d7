package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/service"
)

// fakeUsers is an in-memory user table shared by the admin and auth tests.
type fakeUsers struct {
	byID    map[int]*model.User
	nextID  int
	deleted []int
	created int
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]*model.User{}, nextID: 1}
	for _, u := range users {
		u := u
		f.byID[u.ID] = &u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.created++
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) ExistsByRole(_ context.Context, role model.Role) (bool, error) {
	for _, u := range f.byID {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) ListPaginated(context.Context, model.UserFilter, int, int) ([]model.User, int, error) {
	var out []model.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeUsers) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) BulkUpdate(context.Context, []int, model.BulkUserUpdates) (int64, error) {
	return 0, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUsers) RecentLogins(context.Context, time.Time, int) ([]model.LoginEntry, error) {
	return nil, nil
}

func adminRouter(users *fakeUsers) *gin.Engine {
	h := NewAdminHandler(service.NewAdminService(users, nil, nil, nil))

	r := gin.New()
	r.DELETE("/api/admin/users/:id", h.DeleteUser)
	r.PUT("/api/admin/users/:id", h.UpdateUser)
	return r
}

func TestAdminDeleteUser(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int
		code    string
		deleted int
	}{
		{"admin is protected", "/api/admin/users/1", http.StatusBadRequest, "ADMIN_UNDELETABLE", 0},
		{"student is removed", "/api/admin/users/2", http.StatusOK, "", 1},
		{"unknown user", "/api/admin/users/99", http.StatusNotFound, "NOT_FOUND", 0},
		{"bad id", "/api/admin/users/abc", http.StatusBadRequest, "INVALID_ID", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers(
				model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin},
				model.User{ID: 2, Email: "kid@example.com", Role: model.RoleStudent},
			)

			w, env := doJSON(t, adminRouter(users), http.MethodDelete, tt.path, nil)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d; body = %s", w.Code, tt.want, w.Body.String())
			}
			if tt.code != "" && (env.Error == nil || env.Error.Code != tt.code) {
				t.Fatalf("error = %+v, want %s", env.Error, tt.code)
			}
			if len(users.deleted) != tt.deleted {
				t.Fatalf("deleted = %v, want %d deletions", users.deleted, tt.deleted)
			}
		})
	}
}

func TestAdminUpdateUser_EmptyBody(t *testing.T) {
	users := newFakeUsers(model.User{ID: 2, Role: model.RoleStudent})

	w, _ := doJSON(t, adminRouter(users), http.MethodPut, "/api/admin/users/2", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
