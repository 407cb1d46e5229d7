package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/youtube"
	"google.golang.org/api/googleapi"
)

type stubSearcher struct {
	videos []model.Video
	err    error
}

func (s stubSearcher) Search(context.Context, youtube.Query) ([]model.Video, error) {
	return s.videos, s.err
}

func youtubeRouter(searcher youtube.Searcher) *gin.Engine {
	h := NewYouTubeHandler(service.NewVideoService(searcher, zerolog.Nop()))

	r := gin.New()
	r.POST("/api/youtube/search", h.Search)
	r.POST("/api/youtube/trending", h.Trending)
	return r
}

func TestYouTubeSearch_QuotaExceededServesPlaceholder(t *testing.T) {
	quota := &googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "The request cannot be completed because you have exceeded your quota.",
		Errors:  []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
	}
	r := youtubeRouter(stubSearcher{err: quota})

	w, env := doJSON(t, r, http.MethodPost, "/api/youtube/search", map[string]any{"query": "fractions"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var res model.VideoResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !res.QuotaExceeded {
		t.Error("quotaExceeded = false, want true")
	}
	if len(res.Videos) != 1 || res.TotalResults != 1 {
		t.Fatalf("videos = %d total = %d, want 1 and 1", len(res.Videos), res.TotalResults)
	}
	if res.Videos[0].VideoID != "fallback-1" {
		t.Errorf("videoId = %q, want fallback-1", res.Videos[0].VideoID)
	}
}

func TestYouTubeSearch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		searcher youtube.Searcher
		body     map[string]any
		want     int
		code     string
	}{
		{"disabled", nil, map[string]any{"query": "x"}, http.StatusServiceUnavailable, "VIDEO_SEARCH_NOT_CONFIGURED"},
		{"upstream failure", stubSearcher{err: errors.New("boom")}, map[string]any{"query": "x"}, http.StatusBadGateway, "VIDEO_SEARCH_FAILED"},
		{"missing query", stubSearcher{}, map[string]any{}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, youtubeRouter(tt.searcher), http.MethodPost, "/api/youtube/search", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("error = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}

func TestYouTubeTrending_EmptyBody(t *testing.T) {
	r := youtubeRouter(stubSearcher{videos: []model.Video{{VideoID: "v1"}, {VideoID: "v2"}}})

	w, env := doJSON(t, r, http.MethodPost, "/api/youtube/trending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var res model.VideoResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res.TotalResults != 2 || res.Videos[0].Category != "trending" {
		t.Fatalf("result = %+v", res)
	}
}
