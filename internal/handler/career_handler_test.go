package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/service"
)

// replyProvider opens every model onto a generator with a fixed reply.
type replyProvider string

func (p replyProvider) Open(context.Context, string) (ai.Generator, error) { return p, nil }

func (p replyProvider) Generate(context.Context, string) (string, error) { return string(p), nil }

func careerRouter(p ai.Provider) *gin.Engine {
	svc := service.NewCareerService(ai.NewGateway(p, 0, zerolog.Nop()), zerolog.Nop())
	r := gin.New()
	r.POST("/api/career-path/recommendations", NewCareerHandler(svc).Recommendations)
	return r
}

func TestCareerRecommendations_Errors(t *testing.T) {
	body := map[string]any{"field": "Computer Science", "cgpa": 8.2, "preferredCountry": "Canada"}

	tests := []struct {
		name     string
		provider ai.Provider
		body     map[string]any
		status   int
		code     string
	}{
		{"no programs", replyProvider(`{"personalAnalysis":"strong profile"}`), body, http.StatusBadGateway, "AI_GENERATION_FAILED"},
		{"prose reply", replyProvider("Consider a masters degree."), body, http.StatusBadGateway, "AI_GENERATION_FAILED"},
		{"no provider", nil, body, http.StatusServiceUnavailable, "AI_UNAVAILABLE"},
		{"missing cgpa", replyProvider("{}"), map[string]any{"field": "CS", "preferredCountry": "Canada"}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, careerRouter(tt.provider), http.MethodPost, "/api/career-path/recommendations", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("error = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}

func TestCareerRecommendations_OK(t *testing.T) {
	reply := replyProvider(`{"programs":[{"name":"MSc Computer Science","duration":"2 years"}]}`)
	w, env := doJSON(t, careerRouter(reply), http.MethodPost, "/api/career-path/recommendations",
		map[string]any{"field": "Computer Science", "cgpa": 8.2, "preferredCountry": "Canada"})

	if w.Code != http.StatusOK || env.Error != nil {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}
