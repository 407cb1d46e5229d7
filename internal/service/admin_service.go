package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
)

// Admin errors.
var (
	ErrAdminUndeletable = errors.New("cannot delete admin users")
	ErrEmptyUpdate      = errors.New("no fields to update")
)

const (
	recentWindow        = 7 * 24 * time.Hour
	dashboardActivityN  = 10
	logsRecentCoursesN  = 10
	logsDefaultLoginsN  = 50
	logsRecentActivityN = 20
)

// AdminUserStore is the user storage the admin panel needs.
type AdminUserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	ListPaginated(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.User, int, error)
	Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error)
	BulkUpdate(ctx context.Context, ids []int, u model.BulkUserUpdates) (int64, error)
	Delete(ctx context.Context, id int) error
	RecentLogins(ctx context.Context, since time.Time, limit int) ([]model.LoginEntry, error)
}

// AdminCourseStore is the course storage the admin panel needs.
type AdminCourseStore interface {
	ListPaginated(ctx context.Context, f model.CourseFilter, limit, offset int) ([]model.Course, int, error)
	ListRecent(ctx context.Context, limit int) ([]model.Course, error)
	Delete(ctx context.Context, id int) error
}

// DashboardStore provides the dashboard aggregates.
type DashboardStore interface {
	GetOverview(ctx context.Context, since time.Time) (model.DashboardOverview, error)
	GetRoleCounts(ctx context.Context) ([]model.RoleCount, error)
}

// ActivityLogStore lists recorded activity.
type ActivityLogStore interface {
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

// AdminService backs the admin panel: dashboard, user and course management, logs.
type AdminService struct {
	users     AdminUserStore
	courses   AdminCourseStore
	dashboard DashboardStore
	activity  ActivityLogStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(users AdminUserStore, courses AdminCourseStore, dashboard DashboardStore, activity ActivityLogStore) *AdminService {
	return &AdminService{users: users, courses: courses, dashboard: dashboard, activity: activity}
}

// Dashboard aggregates counters, the role distribution and logins from the last 7 days.
func (s *AdminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	since := time.Now().Add(-recentWindow)

	overview, err := s.dashboard.GetOverview(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	roles, err := s.dashboard.GetRoleCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("role counts: %w", err)
	}
	recent, err := s.users.RecentLogins(ctx, since, dashboardActivityN)
	if err != nil {
		return nil, fmt.Errorf("recent logins: %w", err)
	}

	return &model.DashboardStats{Overview: overview, UserStats: roles, RecentActivity: recent}, nil
}

// ListUsers retrieves users with pagination and filters.
func (s *AdminService) ListUsers(ctx context.Context, q model.ListUsersQuery) ([]model.User, *response.Pagination, error) {
	page, perPage, offset := pageWindow(q.Page, q.Limit)

	users, total, err := s.users.ListPaginated(ctx, model.UserFilter{Role: q.Role, Search: q.Search, IsActive: q.IsActive}, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, response.NewPagination(page, perPage, total), nil
}

// GetUser retrieves one user.
func (s *AdminService) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser changes a user's profile, role or active flag.
func (s *AdminService) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	if req.Role == nil && req.FirstName == nil && req.LastName == nil && req.ProfilePicture == nil && req.IsActive == nil {
		return nil, ErrEmptyUpdate
	}
	return s.users.Update(ctx, id, req)
}

// DeleteUser removes a non-admin user. Admin accounts are never deleted.
func (s *AdminService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == model.RoleAdmin {
		return ErrAdminUndeletable
	}
	return s.users.Delete(ctx, id)
}

// BulkUpdateUsers applies one change set to many users and returns how many rows changed.
func (s *AdminService) BulkUpdateUsers(ctx context.Context, req model.BulkUpdateUsersRequest) (int64, error) {
	if req.Updates.IsActive == nil && req.Updates.Role == nil {
		return 0, ErrEmptyUpdate
	}
	return s.users.BulkUpdate(ctx, req.UserIDs, req.Updates)
}

// ListCourses retrieves courses with pagination, search and instructor filter.
func (s *AdminService) ListCourses(ctx context.Context, q model.ListCoursesQuery) ([]model.Course, *response.Pagination, error) {
	page, perPage, offset := pageWindow(q.Page, q.Limit)

	courses, total, err := s.courses.ListPaginated(ctx, model.CourseFilter{Search: q.Search, Instructor: q.Instructor}, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, response.NewPagination(page, perPage, total), nil
}

// DeleteCourse removes a course and, through the foreign key, its materials.
func (s *AdminService) DeleteCourse(ctx context.Context, id int) error {
	return s.courses.Delete(ctx, id)
}

// Logs collects recent logins, recently created courses and the activity trail.
// limit bounds the login list; zero uses the default of 50.
func (s *AdminService) Logs(ctx context.Context, limit int) (*model.SystemLogs, error) {
	if limit <= 0 {
		limit = logsDefaultLoginsN
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}

	logins, err := s.users.RecentLogins(ctx, time.Time{}, limit)
	if err != nil {
		return nil, fmt.Errorf("recent logins: %w", err)
	}
	courses, err := s.courses.ListRecent(ctx, logsRecentCoursesN)
	if err != nil {
		return nil, fmt.Errorf("recent courses: %w", err)
	}
	activity, err := s.activity.ListRecent(ctx, logsRecentActivityN)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	return &model.SystemLogs{
		RecentLogins:   logins,
		RecentCourses:  courses,
		RecentActivity: activity,
		Timestamp:      time.Now().UTC(),
	}, nil
}
