package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
	yt "google.golang.org/api/youtube/v3"
)

func TestIsQuotaExceeded(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("quota exceeded"), false},
		{"403 message", &googleapi.Error{Code: http.StatusForbidden, Message: "The request cannot be completed because you have exceeded your quota."}, true},
		{"403 reason", &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}}}, true},
		{"403 other", &googleapi.Error{Code: http.StatusForbidden, Message: "forbidden"}, false},
		{"400 quota", &googleapi.Error{Code: http.StatusBadRequest, Message: "quota"}, false},
		{"wrapped", fmt.Errorf("search: %w", &googleapi.Error{Code: http.StatusForbidden, Message: "Quota"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaExceeded(tt.err); got != tt.want {
				t.Fatalf("IsQuotaExceeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToVideo(t *testing.T) {
	v := toVideo("abc123", &yt.SearchResultSnippet{
		Title:        "Go in 20 minutes",
		ChannelTitle: "Gophers",
		PublishedAt:  "2025-01-02T03:04:05Z",
		Thumbnails: &yt.ThumbnailDetails{
			Default: &yt.Thumbnail{Url: "default.jpg"},
			Medium:  &yt.Thumbnail{Url: "medium.jpg"},
		},
	})

	if v.URL != "https://www.youtube.com/watch?v=abc123" || v.EmbedURL != "https://www.youtube.com/embed/abc123" {
		t.Fatalf("urls = %q, %q", v.URL, v.EmbedURL)
	}
	if v.Thumbnail != "medium.jpg" {
		t.Fatalf("Thumbnail = %q, want medium.jpg", v.Thumbnail)
	}
}

func TestThumbnailURL_FallsBackToDefault(t *testing.T) {
	got := thumbnailURL(&yt.ThumbnailDetails{Default: &yt.Thumbnail{Url: "default.jpg"}})
	if got != "default.jpg" {
		t.Fatalf("thumbnailURL() = %q", got)
	}
	if thumbnailURL(nil) != "" {
		t.Fatal("thumbnailURL(nil) should be empty")
	}
}
