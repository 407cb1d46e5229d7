package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const careerPromptTemplate = `You are an expert career counselor and education advisor. Analyze the following student profile and provide COMPLETE, DETAILED, and PERSONALIZED career recommendations.

STUDENT PROFILE:
- Field of Study: %[1]s
- Current CGPA: %.2[2]f/10
- Preferred Country/Region: %[3]s

Based on this profile, provide comprehensive career guidance as a single JSON object with these keys:
- "personalAnalysis": 2-3 sentences on the profile's strengths and opportunities
- "programs": [{"name", "duration", "description"}]
- "topUniversities": [{"name", "country", "ranking", "admissionRate", "tuitionFee", "requiredCGPA", "specialization"}]
- "requiredExams": [{"examName", "importance", "preparationTime", "averageScore", "cost", "description"}]
- "scholarships": [{"name", "provider", "coverage", "eligibility", "deadline", "website"}]
- "careerProspects": [{"position", "averageSalary", "companies", "growth", "description"}]
- "estimatedCosts": {"tuitionPerYear", "livingExpenses", "totalCost", "fundingOptions"}
- "roadmap": [{"step", "title", "duration", "description", "resources"}]
- "eligibilityAssessment": {"overallEligibility", "strengths", "challenges", "recommendations", "alternativeOptions"}
- "costComparison": {"description", "valueForMoney", "roi"}
- "timelineAndMilestones": {"monthsToApplication", "applicationDeadline", "decisionTimeline", "enrollmentDate", "completionDate"}

IMPORTANT GUIDELINES:
1. Make ALL information SPECIFIC and PERSONALIZED based on the CGPA and field
2. Consider the chosen country (%[3]s) and adjust all recommendations accordingly
3. If CGPA is high (>8.5), recommend top-tier universities; if medium (6-8.5), recommend good universities; if lower (<6), suggest universities with moderate requirements
4. Generate AT LEAST 3-5 programs, 5-8 universities, 4-6 exams, 3-5 scholarships, 5-7 career options
5. Include REAL information about costs, admission rates, salaries in the chosen country
6. Provide a detailed 7-10 step roadmap
7. Return ONLY valid JSON, no markdown, no extra text
8. Make recommendations challenging but achievable based on CGPA`

// CareerService produces study-abroad and career guidance.
type CareerService struct {
	gateway *ai.Gateway
	log     zerolog.Logger
}

// NewCareerService creates a new CareerService.
func NewCareerService(gateway *ai.Gateway, log zerolog.Logger) *CareerService {
	return &CareerService{
		gateway: gateway,
		log:     log.With().Str("component", "career_service").Logger(),
	}
}

// Recommend returns the generated guidance merged with the request profile.
// A response without a "programs" array is rejected with ai.ErrGenerationFailed.
func (s *CareerService) Recommend(ctx context.Context, req model.CareerPathRequest) (map[string]any, error) {
	prompt := fmt.Sprintf(careerPromptTemplate, req.Field, *req.CGPA, req.PreferredCountry)

	text, modelID, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		return nil, err
	}

	rec, ok := ai.Decode[map[string]any](text)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unparseable recommendations", ai.ErrGenerationFailed, modelID)
	}
	if _, isList := rec["programs"].([]any); !isList {
		s.log.Warn().Str("model", modelID).Msg("Career recommendations missing programs")
		return nil, fmt.Errorf("%w: %s: response has no programs", ai.ErrGenerationFailed, modelID)
	}

	rec["field"] = req.Field
	rec["cgpa"] = *req.CGPA
	rec["preferredCountry"] = req.PreferredCountry
	rec["generatedAt"] = time.Now().UTC().Format(time.RFC3339)
	rec["aiGenerated"] = true
	rec["model"] = modelID
	return rec, nil
}
