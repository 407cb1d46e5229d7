package model

import "time"

// ActivityAction names a recorded user action.
type ActivityAction string

const (
	ActivityLogin    ActivityAction = "login"
	ActivityRegister ActivityAction = "register"
	ActivityLogout   ActivityAction = "logout"
)

// ActivityEvent is the queue message published by request handlers
// and consumed by the activity worker.
type ActivityEvent struct {
	UserID    int            `json:"user_id"`
	Action    ActivityAction `json:"action"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	At        time.Time      `json:"at"`
}

// ActivityLog is a persisted activity event joined with its user.
type ActivityLog struct {
	ID        int            `json:"id"`
	UserID    int            `json:"userId"`
	Email     string         `json:"email"`
	Action    ActivityAction `json:"action"`
	IP        string         `json:"ip"`
	CreatedAt time.Time      `json:"createdAt"`
}

// LoginEntry is a user row in the recent-login listings.
type LoginEntry struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
}

// DashboardOverview holds the admin headline counters.
type DashboardOverview struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	TotalCourses      int `json:"totalCourses"`
	TotalInternships  int `json:"totalInternships"`
	TotalPublications int `json:"totalPublications"`
	TotalQuizzes      int `json:"totalQuizzes"`
	TotalResources    int `json:"totalResources"`
	RecentUsers       int `json:"recentUsers"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Overview       DashboardOverview `json:"overview"`
	UserStats      []RoleCount       `json:"userStats"`
	RecentActivity []LoginEntry      `json:"recentActivity"`
}

// SystemLogs is the admin log payload.
type SystemLogs struct {
	RecentLogins   []LoginEntry  `json:"recentLogins"`
	RecentCourses  []Course      `json:"recentCourses"`
	RecentActivity []ActivityLog `json:"recentActivity"`
	Timestamp      time.Time     `json:"timestamp"`
}
