package model

import "time"

// Subject is one graded subject on a user's academic record.
type Subject struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Name     string `json:"name"`
	Grade    string `json:"grade"`
	Credits  int    `json:"credits"`
	Semester int    `json:"semester"`
}

// AttendanceStatus is a single attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is one attendance record for a user and subject.
type Attendance struct {
	ID      int              `json:"id"`
	UserID  int              `json:"userId"`
	Subject string           `json:"subject"`
	Date    time.Time        `json:"date"`
	Status  AttendanceStatus `json:"status"`
}
