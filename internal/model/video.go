package model

// Video is a normalized video search hit.
type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
	EmbedURL     string `json:"embedUrl"`
	Course       string `json:"course,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Category     string `json:"category,omitempty"`
}

// VideoResult is the envelope for every video search flavour.
type VideoResult struct {
	Query         string  `json:"query,omitempty"`
	Course        string  `json:"course,omitempty"`
	Subject       string  `json:"subject,omitempty"`
	Category      string  `json:"category,omitempty"`
	Videos        []Video `json:"videos"`
	TotalResults  int     `json:"totalResults"`
	QuotaExceeded bool    `json:"quotaExceeded,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// VideoSearchRequest is a free-text educational video search.
type VideoSearchRequest struct {
	Query      string `json:"query" binding:"required,max=200"`
	MaxResults int    `json:"maxResults" binding:"omitempty,min=1,max=25"`
}

// CourseVideosRequest searches videos for a course.
type CourseVideosRequest struct {
	CourseName string `json:"courseName" binding:"required,max=200"`
	Subject    string `json:"subject" binding:"max=100"`
}

// TrendingVideosRequest optionally narrows the trending search.
type TrendingVideosRequest struct {
	Category string `json:"category" binding:"max=50"`
}
