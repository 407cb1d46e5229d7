package model

import (
	"strings"
	"time"
)

// Role is the account role used for route authorization.
type Role string

const (
	RoleStudent Role = "student"
	RoleUG      Role = "ug"
	RolePG      Role = "pg"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Roles lists every assignable role.
var Roles = []Role{RoleStudent, RoleUG, RolePG, RoleTeacher, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a platform account.
type User struct {
	ID             int        `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Role           Role       `json:"role"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	ProfilePicture string     `json:"profilePicture"`
	Class          string     `json:"class"`
	IsActive       bool       `json:"isActive"`
	LastLogin      *time.Time `json:"lastLogin"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	Role      Role   `json:"role" binding:"omitempty,role"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Class     string `json:"class" binding:"max=10"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse is returned after a successful register or login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateAdminRequest is the payload for bootstrapping the first admin.
type CreateAdminRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// UpdateUserRequest is the admin payload for editing a user. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Role           *Role   `json:"role" binding:"omitempty,role"`
	FirstName      *string `json:"firstName" binding:"omitempty,max=100"`
	LastName       *string `json:"lastName" binding:"omitempty,max=100"`
	ProfilePicture *string `json:"profilePicture" binding:"omitempty,max=500"`
	IsActive       *bool   `json:"isActive"`
}

// BulkUserUpdates holds the fields a bulk update may change.
type BulkUserUpdates struct {
	IsActive *bool `json:"isActive"`
	Role     *Role `json:"role" binding:"omitempty,role"`
}

// BulkUpdateUsersRequest applies one set of updates to many users.
type BulkUpdateUsersRequest struct {
	UserIDs []int           `json:"userIds" binding:"required,min=1,dive,gt=0"`
	Updates BulkUserUpdates `json:"updates" binding:"required"`
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role     Role
	Search   string
	IsActive *bool
}

// ListUsersQuery is bound from the admin user listing query string.
type ListUsersQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Role     Role   `form:"role" binding:"omitempty,role"`
	Search   string `form:"search" binding:"max=100"`
	IsActive *bool  `form:"isActive"`
}

// RoleCount is one row of the role distribution.
type RoleCount struct {
	Role  Role `json:"role"`
	Count int  `json:"count"`
}
