package model

import "time"

// Course represents a catalogue course.
type Course struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Credits     int        `json:"credits"`
	Instructor  string     `json:"instructor"`
	Semester    string     `json:"semester"`
	Year        string     `json:"year"`
	Progress    int        `json:"progress"`
	ExamDate    *time.Time `json:"examDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Code        string     `json:"code" binding:"required,max=50"`
	Description string     `json:"description" binding:"required"`
	Credits     int        `json:"credits" binding:"required,min=1,max=20"`
	Instructor  string     `json:"instructor" binding:"required,max=200"`
	Semester    string     `json:"semester" binding:"required,max=50"`
	Year        string     `json:"year" binding:"required,max=20"`
	Progress    int        `json:"progress" binding:"min=0,max=100"`
	ExamDate    *time.Time `json:"examDate"`
}

// CourseFilter narrows the admin course listing.
type CourseFilter struct {
	Search     string
	Instructor string
}

// ListCoursesQuery is bound from the admin course listing query string.
type ListCoursesQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search" binding:"max=100"`
	Instructor string `form:"instructor" binding:"max=200"`
}
