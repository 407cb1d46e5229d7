package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ErrTextTooShort is returned when resume or document text is below the minimum length.
var ErrTextTooShort = errors.New("text too short")

const minResumeLength = 50

// Fallbacks for each resume pass.
var (
	fallbackResumeAnalysis = model.ResumeAnalysis{
		Strengths:        []string{"Resume content provided"},
		Weaknesses:       []string{"Unable to provide detailed analysis at this time"},
		MissingSections:  []string{"Please try again later"},
		Suggestions:      []string{"Please contact support if issue persists"},
		SkillsGap:        []string{},
		FormattingIssues: []string{},
	}
	fallbackResumeQuestions = model.ResumeQuestions{
		TechnicalQuestions:   []string{"Can you describe your technical background?"},
		BehavioralQuestions:  []string{"Tell me about a project you're proud of"},
		SituationalQuestions: []string{"How would you handle a challenging deadline?"},
	}
	fallbackCareerRecommendations = model.CareerRecommendations{
		NextSteps:                []string{"Continue building your professional experience"},
		SkillRecommendations:     []string{"Consider expanding your technical skills"},
		CertificationSuggestions: []string{"Explore industry-relevant certifications"},
		ProjectIdeas:             []string{"Build a portfolio project to showcase your skills"},
	}
)

// ResumeService analyzes resumes in three passes on one resolved model.
type ResumeService struct {
	gateway *ai.Gateway
	timeout time.Duration
	log     zerolog.Logger
}

// NewResumeService creates a new ResumeService. timeout bounds all three passes together.
func NewResumeService(gateway *ai.Gateway, timeout time.Duration, log zerolog.Logger) *ResumeService {
	return &ResumeService{
		gateway: gateway,
		timeout: timeout,
		log:     log.With().Str("component", "resume_service").Logger(),
	}
}

// Analyze returns the analysis, tailored interview questions and career
// recommendations for resume text. Each pass falls back independently.
func (s *ResumeService) Analyze(ctx context.Context, resumeText string) (*model.ResumeReport, error) {
	resumeText = strings.TrimSpace(resumeText)
	if len(resumeText) < minResumeLength {
		return nil, fmt.Errorf("%w: got %d characters, need at least %d", ErrTextTooShort, len(resumeText), minResumeLength)
	}

	report := &model.ResumeReport{
		Analysis:              fallbackResumeAnalysis,
		Questions:             fallbackResumeQuestions,
		CareerRecommendations: fallbackCareerRecommendations,
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	h, err := s.gateway.Acquire(ctx, ai.GeneralModels)
	if err != nil {
		s.log.Warn().Err(err).Msg("No model for resume analysis, using fallbacks")
		return report, nil
	}

	report.Analysis = resumePass(ctx, s, h, "analysis", `Analyze this resume and provide a comprehensive assessment. Return ONLY a JSON object with this exact structure:
{
    "strengths": ["strength1", "strength2", "strength3"],
    "weaknesses": ["weakness1", "weakness2", "weakness3"],
    "missingSections": ["section1", "section2"],
    "suggestions": ["suggestion1", "suggestion2", "suggestion3"],
    "skillsGap": ["skill1", "skill2"],
    "formattingIssues": ["issue1", "issue2"]
}

Resume text: `+resumeText, fallbackResumeAnalysis)

	report.Questions = resumePass(ctx, s, h, "questions", `Based on this resume, generate personalized interview questions. Return ONLY a JSON object with:
{
    "technicalQuestions": ["question1", "question2", "question3"],
    "behavioralQuestions": ["question1", "question2", "question3"],
    "situationalQuestions": ["question1", "question2", "question3"]
}

Resume text: `+resumeText, fallbackResumeQuestions)

	report.CareerRecommendations = resumePass(ctx, s, h, "career", `Based on this resume, provide career development recommendations. Return ONLY a JSON object with:
{
    "nextSteps": ["step1", "step2", "step3"],
    "skillRecommendations": ["skill1", "skill2", "skill3"],
    "certificationSuggestions": ["cert1", "cert2"],
    "projectIdeas": ["project1", "project2", "project3"]
}

Resume text: `+resumeText, fallbackCareerRecommendations)

	return report, nil
}

// resumePass runs one prompt and decodes it, returning fallback on any failure.
func resumePass[T any](ctx context.Context, s *ResumeService, h *ai.Handle, pass, prompt string, fallback T) T {
	text, err := h.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Str("pass", pass).Msg("Resume pass failed, using fallback")
		return fallback
	}
	out, ok := ai.Decode[T](text)
	if !ok {
		s.log.Warn().Str("pass", pass).Str("model", h.Model).Msg("Resume pass unparseable, using fallback")
		return fallback
	}
	return out
}
