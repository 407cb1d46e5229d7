package model

import "time"

// MaterialType classifies an uploaded course material.
type MaterialType string

const (
	MaterialVideo  MaterialType = "video"
	MaterialPDF    MaterialType = "pdf"
	MaterialSlides MaterialType = "slides"
)

// Material represents an uploaded file attached to a course.
type Material struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Type          MaterialType `json:"type"`
	CourseID      int          `json:"courseId"`
	UploadedBy    int          `json:"uploadedBy"`
	FilePath      string       `json:"-"`
	FileName      string       `json:"fileName"`
	FileSize      int64        `json:"fileSize"`
	MimeType      string       `json:"mimeType"`
	Duration      *int         `json:"duration"`
	Thumbnail     *string      `json:"thumbnail"`
	SlideCount    *int         `json:"slideCount"`
	IsPublic      bool         `json:"isPublic"`
	Tags          []string     `json:"tags"`
	DownloadCount int          `json:"downloadCount"`
	ViewCount     int          `json:"viewCount"`
	UploadDate    time.Time    `json:"uploadDate"`
	LastModified  time.Time    `json:"lastModified"`

	// Populated by joins on read.
	Course   *CourseRef `json:"course,omitempty"`
	Uploader *UserRef   `json:"uploader,omitempty"`
}

// CourseRef is the course summary embedded in material listings.
type CourseRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UserRef is the uploader summary embedded in material listings.
type UserRef struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UploadMaterialRequest is bound from the multipart upload form.
type UploadMaterialRequest struct {
	Title       string       `form:"title" binding:"required,max=200"`
	Description string       `form:"description" binding:"max=2000"`
	CourseID    int          `form:"courseId" binding:"required,gt=0"`
	Type        MaterialType `form:"type" binding:"omitempty,oneof=video pdf slides"`
	Tags        string       `form:"tags" binding:"max=500"`
	Duration    *int         `form:"duration" binding:"omitempty,min=0"`
	SlideCount  *int         `form:"slideCount" binding:"omitempty,min=0"`
	IsPublic    *bool        `form:"isPublic"`
}

// MaterialFilter narrows material listings.
type MaterialFilter struct {
	CourseID   *int
	Type       MaterialType
	PublicOnly bool
}

// MaterialQuery is bound from material listing query strings.
type MaterialQuery struct {
	CourseID *int         `form:"courseId" binding:"omitempty,gt=0"`
	Type     MaterialType `form:"type" binding:"omitempty,oneof=video pdf slides"`
}
