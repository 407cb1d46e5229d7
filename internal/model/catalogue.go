package model

import "time"

// Publication is a research publication owned by a postgraduate user.
type Publication struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Journal   string    `json:"journal"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePublicationRequest is the payload for adding a publication.
type CreatePublicationRequest struct {
	Title   string `json:"title" binding:"required,max=300"`
	Journal string `json:"journal" binding:"required,max=300"`
	Year    int    `json:"year" binding:"required,min=1900,max=2100"`
}

// ResourceType is the kind of external learning resource.
type ResourceType string

const (
	ResourceYouTube ResourceType = "YouTube"
	ResourceBlog    ResourceType = "Blog"
)

// Resource is a curated external learning link.
type Resource struct {
	ID      int          `json:"id"`
	Subject string       `json:"subject"`
	Title   string       `json:"title"`
	Type    ResourceType `json:"type"`
	URL     string       `json:"url"`
}

// Internship is a listed internship opening.
type Internship struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyURL    string `json:"apply_url"`
}
