package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const (
	defaultQuizDifficulty = "medium"
	defaultQuizQuestions  = 5
	schoolQuizQuestions   = 5

	allCoursesCompletePlan = "Great job! All your courses are complete. Time to focus on final exam preparation."
)

// AIService backs the study helpers and the quiz generators.
type AIService struct {
	gateway *ai.Gateway
	log     zerolog.Logger
	now     func() time.Time
}

// NewAIService creates a new AIService.
func NewAIService(gateway *ai.Gateway, log zerolog.Logger) *AIService {
	return &AIService{
		gateway: gateway,
		log:     log.With().Str("component", "ai_service").Logger(),
		now:     time.Now,
	}
}

// ─── Study helpers ──────────────────────────────────────────────────────────
// These have no fallback; gateway errors reach the caller.

// Explain returns a plain-language explanation of a concept.
func (s *AIService) Explain(ctx context.Context, concept string) (string, error) {
	prompt := fmt.Sprintf(`Explain the concept of "%s" in a simple and concise way for a university student.`, concept)
	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	return text, err
}

// Insight comments on a student's grades and suggests a next topic.
func (s *AIService) Insight(ctx context.Context, subjects []model.SubjectGrade) (string, error) {
	data, err := json.Marshal(subjects)
	if err != nil {
		return "", fmt.Errorf("encode subjects: %w", err)
	}

	prompt := fmt.Sprintf(`You are an encouraging academic advisor. Based on the following student data (subjects and grades): %s.
1. Provide one piece of positive feedback about their strong performance in a subject.
2. Suggest one relevant, more advanced topic or subject they should aim for next.
Keep your response concise, friendly, and under 50 words. Format it as a single paragraph.`, data)

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	return text, err
}

// AttendanceAdvice maps an attendance percentage to fixed advice.
func AttendanceAdvice(pct float64) string {
	switch {
	case pct >= 90:
		return "Your excellent attendance is a strong indicator of success. Keep it up!"
	case pct >= 75:
		return "Your attendance is good, but be careful not to let it slip as it's closely linked to performance."
	default:
		return "Warning: Your attendance is below the recommended 75%. This is a strong predictor of a potential drop in grades. Please prioritize attending classes to stay on track."
	}
}

// Predict turns the attendance advice into a short generated forecast.
func (s *AIService) Predict(ctx context.Context, pct float64) (*model.PredictResponse, error) {
	advice := AttendanceAdvice(pct)
	prompt := fmt.Sprintf(`Based on the following analysis: "%s", generate a short, encouraging, and predictive insight for a student. Frame it as a forecast. Keep it under 30 words.`, advice)

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		return nil, err
	}
	return &model.PredictResponse{Advice: advice, Prediction: strings.TrimSpace(text)}, nil
}

// PracticeQuiz generates a 3-question multiple-choice quiz on a topic.
func (s *AIService) PracticeQuiz(ctx context.Context, topic string) ([]model.PracticeQuestion, error) {
	prompt := fmt.Sprintf(`You are a quiz generator. Create a 3-question multiple-choice quiz on the topic of "%s".
Provide the response as a valid JSON array of objects.
Each object must have "text", "options" (an array of 4 strings), and "correctAnswer" keys.
Do not include any text outside of the JSON array.`, topic)

	text, modelID, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		return nil, err
	}

	questions, ok := ai.Decode[[]model.PracticeQuestion](text)
	if !ok || len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s: unparseable practice quiz", ai.ErrGenerationFailed, modelID)
	}
	return questions, nil
}

// Recommend suggests search queries and resources for a topic.
func (s *AIService) Recommend(ctx context.Context, topic string) (*model.Recommendations, error) {
	prompt := fmt.Sprintf(`You are a learning assistant AI. A student needs resources on: "%s".
Provide a valid JSON object with "search_queries" (an array of 3 precise search strings) and "recommended_resources" (an array of 3 objects, each with "title", "type" ['YouTube' or 'Blog'], and a plausible "url").
Do not include text outside the JSON object.`, topic)

	text, modelID, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		return nil, err
	}

	rec, ok := ai.Decode[model.Recommendations](text)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unparseable recommendations", ai.ErrGenerationFailed, modelID)
	}
	return &rec, nil
}

// StudyPlan builds a weekly plan for the least advanced courses.
// When every course is complete no model is called.
func (s *AIService) StudyPlan(ctx context.Context, courses []model.CourseProgress) (string, error) {
	incomplete := lo.Filter(courses, func(c model.CourseProgress, _ int) bool { return c.Progress < 100 })
	if len(incomplete) == 0 {
		return allCoursesCompletePlan, nil
	}

	data, err := json.Marshal(incomplete)
	if err != nil {
		return "", fmt.Errorf("encode courses: %w", err)
	}

	prompt := fmt.Sprintf(`You are an AI academic advisor. A student has the following course progress: %s.
1. Identify the 1-2 courses with the lowest progress.
2. Create a simple, actionable 3-step study plan for the week for these priority areas.
3. Keep it encouraging and under 100 words. Format as a single string.`, data)

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	return text, err
}

// EnhanceResume returns bullet-point suggestions for resume text.
func (s *AIService) EnhanceResume(ctx context.Context, resumeText string) (string, error) {
	prompt := fmt.Sprintf(`You are a professional career coach reviewing a student's resume. The resume content is: "%s".
Provide 3-4 specific, actionable suggestions for improvement.
Focus on using stronger action verbs, quantifying achievements, and improving clarity.
Format your response as a single string with each suggestion on a new line, starting with a bullet point (•).`, resumeText)

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	return text, err
}

// InterviewQuestion returns one behavioral interview question.
func (s *AIService) InterviewQuestion(ctx context.Context) (string, error) {
	const prompt = `You are a mock interviewer. Generate one common behavioral interview question for a software development intern role. For example: "Tell me about a challenging project you worked on."`

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	return strings.TrimSpace(text), err
}

// ─── Quiz generation ────────────────────────────────────────────────────────

// QuizSpecFrom applies the request defaults: medium difficulty and 5 questions.
func QuizSpecFrom(req model.GenerateQuizRequest) ai.QuizSpec {
	spec := ai.QuizSpec{
		Standard:     strings.TrimSpace(req.Standard),
		Subject:      strings.TrimSpace(req.Subject),
		Topic:        strings.TrimSpace(req.Topic),
		Difficulty:   req.Difficulty,
		NumQuestions: req.NumQuestions,
	}
	if spec.Difficulty == "" {
		spec.Difficulty = defaultQuizDifficulty
	}
	if spec.NumQuestions <= 0 {
		spec.NumQuestions = defaultQuizQuestions
	}
	return spec
}

// GenerateQuiz runs the quiz pipeline: complete, extract, validate.
// Any failure along the way yields the deterministic fallback quiz, so it never errors.
func (s *AIService) GenerateQuiz(ctx context.Context, req model.GenerateQuizRequest) ai.GeneratedQuiz {
	spec := QuizSpecFrom(req)

	prompt := fmt.Sprintf(`Generate a %s level quiz for Class %s students on %s - %s.

Requirements:
- Create exactly %d multiple choice questions
- Each question should have 4 options (A, B, C, D)
- Include the correct answer for each question, copied verbatim from its options
- Make questions age-appropriate for Class %s
- Cover the topic: %s
- Difficulty level: %s

Respond with a single JSON object matching this JSON Schema and nothing else:
%s`, spec.Difficulty, spec.Standard, spec.Subject, spec.Topic, spec.NumQuestions,
		spec.Standard, spec.Topic, spec.Difficulty, ai.QuizSchemaJSON())

	return s.quizOrFallback(ctx, prompt, ai.QuizModels, spec)
}

// SchoolQuiz generates a 5-question quiz for a grade, with the same fallback rules.
func (s *AIService) SchoolQuiz(ctx context.Context, req model.SchoolQuizRequest) ai.GeneratedQuiz {
	spec := ai.QuizSpec{
		Standard:     strings.TrimSpace(req.Grade),
		Subject:      strings.TrimSpace(req.Subject),
		Topic:        strings.TrimSpace(req.Topic),
		Difficulty:   defaultQuizDifficulty,
		NumQuestions: schoolQuizQuestions,
	}

	prompt := fmt.Sprintf(`Create a quiz for %s students studying %s on the topic "%s".

Requirements:
- Generate %d multiple choice questions
- Each question should have 4 options
- Questions should be age-appropriate for %s level
- Include one correct answer per question, copied verbatim from its options
- Make questions clear and educational
- Focus on the specific topic: %s

Return the response in this exact JSON format:
{
    "title": "Quiz Title",
    "questions": [
        {
            "id": "q1",
            "question": "Question text here?",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correctAnswer": "Option A"
        }
    ]
}`, spec.Standard, spec.Subject, spec.Topic, spec.NumQuestions, spec.Standard, spec.Topic)

	return s.quizOrFallback(ctx, prompt, ai.GeneralModels, spec)
}

func (s *AIService) quizOrFallback(ctx context.Context, prompt string, candidates []string, spec ai.QuizSpec) ai.GeneratedQuiz {
	text, modelID, err := s.gateway.Complete(ctx, prompt, candidates)
	if err != nil {
		s.log.Warn().Err(err).Str("subject", spec.Subject).Str("topic", spec.Topic).Msg("Quiz generation failed, using fallback")
		return s.fallbackQuiz(spec)
	}

	raw, ok := ai.Decode[json.RawMessage](text)
	if !ok {
		s.log.Warn().Str("model", modelID).Msg("No JSON in quiz response, using fallback")
		return s.fallbackQuiz(spec)
	}

	quiz, err := ai.ValidateQuiz([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("model", modelID).Msg("Generated quiz rejected, using fallback")
		return s.fallbackQuiz(spec)
	}

	// Extra questions are cut; a short quiz cannot honor the requested count.
	switch n := len(quiz.Questions); {
	case n > spec.NumQuestions:
		quiz.Questions = quiz.Questions[:spec.NumQuestions]
	case n < spec.NumQuestions:
		s.log.Warn().Str("model", modelID).Int("got", n).Int("want", spec.NumQuestions).Msg("Generated quiz too short, using fallback")
		return s.fallbackQuiz(spec)
	}

	out := quiz.Stamp(spec, s.now())
	out.Model = modelID
	return out
}

func (s *AIService) fallbackQuiz(spec ai.QuizSpec) ai.GeneratedQuiz {
	out := ai.FallbackQuiz(spec).Stamp(spec, s.now())
	out.IsFallback = true
	return out
}
