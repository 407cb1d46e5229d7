// Package youtube searches educational videos through the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stemsi/eduverse-backend/internal/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Ordering accepted by the search endpoint.
const (
	OrderRelevance = "relevance"
	OrderViewCount = "viewCount"
)

// Query is one educational video search.
type Query struct {
	Q              string
	MaxResults     int64
	Order          string
	PublishedAfter time.Time
}

// Searcher runs video searches. Implemented by *Client and by test fakes.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]model.Video, error)
}

// Client is a Searcher backed by the YouTube Data API v3.
type Client struct {
	svc *yt.Service
}

// NewClient builds an API-key authenticated client.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: api key is empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: new service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search lists medium-length, HD, embeddable videos with moderate safe search.
func (c *Client) Search(ctx context.Context, q Query) ([]model.Video, error) {
	order := q.Order
	if order == "" {
		order = OrderRelevance
	}

	call := c.svc.Search.List([]string{"snippet"}).
		Q(q.Q).
		Type("video").
		MaxResults(q.MaxResults).
		Order(order).
		VideoDuration("medium").
		VideoDefinition("high").
		VideoEmbeddable("true").
		SafeSearch("moderate")
	if !q.PublishedAfter.IsZero() {
		call = call.PublishedAfter(q.PublishedAfter.UTC().Format(time.RFC3339))
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		videos = append(videos, toVideo(item.Id.VideoId, item.Snippet))
	}
	return videos, nil
}

func toVideo(id string, s *yt.SearchResultSnippet) model.Video {
	return model.Video{
		VideoID:      id,
		Title:        s.Title,
		Description:  s.Description,
		Thumbnail:    thumbnailURL(s.Thumbnails),
		ChannelTitle: s.ChannelTitle,
		PublishedAt:  s.PublishedAt,
		URL:          "https://www.youtube.com/watch?v=" + id,
		EmbedURL:     "https://www.youtube.com/embed/" + id,
	}
}

// thumbnailURL prefers the medium rendition.
func thumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}

// IsQuotaExceeded reports whether err is the API's 403 quota rejection.
func IsQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		return false
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
		return true
	}
	for _, item := range apiErr.Errors {
		if strings.Contains(strings.ToLower(item.Reason), "quota") ||
			strings.Contains(strings.ToLower(item.Message), "quota") {
			return true
		}
	}
	return false
}
