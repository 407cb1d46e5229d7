package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/textextract"
)

// ErrInterviewMismatch is returned when questions and answers differ in count.
var ErrInterviewMismatch = errors.New("questions and answers must have the same length")

const interviewQuestionCount = 5

// FallbackInterviewQuestions is served whenever generation cannot produce exactly five questions.
var FallbackInterviewQuestions = []string{
	"Tell me about yourself and your background.",
	"What are your key strengths and how do they relate to this role?",
	"Describe a challenging project you worked on and how you overcame obstacles.",
	"Where do you see yourself in 5 years?",
	"What questions do you have for us about this position?",
}

const fallbackInterviewFeedback = `Thank you for completing the voice interview practice! Here's some general feedback:

Strengths:
• You completed all interview questions
• Your responses show engagement with the process

Areas for Improvement:
• Practice speaking clearly and at a moderate pace
• Structure your answers with specific examples
• Prepare stories that highlight your skills and experiences
• Research common interview questions in your field

Tips for Future Interviews:
• Practice with friends or family
• Record yourself answering questions
• Prepare 3-5 examples of your achievements
• Research the company and role beforehand
• Ask thoughtful questions about the position

Keep practicing and you'll continue to improve!`

// InterviewService runs the voice interview practice flow.
type InterviewService struct {
	gateway *ai.Gateway
	log     zerolog.Logger
}

// NewInterviewService creates a new InterviewService.
func NewInterviewService(gateway *ai.Gateway, log zerolog.Logger) *InterviewService {
	return &InterviewService{
		gateway: gateway,
		log:     log.With().Str("component", "interview_service").Logger(),
	}
}

// Questions generates exactly five interview questions from an uploaded resume.
// Any failure, including a wrong question count, yields the fallback list.
func (s *InterviewService) Questions(ctx context.Context, fileName, mimeType string, data []byte) model.InterviewQuestions {
	content, err := textextract.Extract(fileName, mimeType, data)
	if err != nil {
		s.log.Debug().Err(err).Str("file", fileName).Msg("Resume text not extractable, prompting with file name")
		content = fmt.Sprintf("Resume file: %s (%s)", fileName, mimeType)
	}

	prompt := fmt.Sprintf(`Based on the following resume content, generate exactly 5 interview questions that would be appropriate for an undergraduate student. The questions should be:

1. Relevant to their experience and skills
2. Appropriate for entry-level positions
3. Mix of technical and behavioral questions
4. Clear and concise
5. Suitable for voice-based interview

Resume Content:
%s

Generate 5 interview questions in JSON format:
{
  "questions": [
    "Question 1 here",
    "Question 2 here",
    "Question 3 here",
    "Question 4 here",
    "Question 5 here"
  ]
}`, content)

	text, modelID, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		s.log.Warn().Err(err).Msg("Interview question generation failed, using fallback")
		return fallbackQuestions("Fallback questions generated (AI service unavailable)")
	}

	var empty struct {
		Questions []string `json:"questions"`
	}
	parsed := ai.Normalize(text, empty)
	if len(parsed.Questions) != interviewQuestionCount {
		s.log.Warn().Str("model", modelID).Int("count", len(parsed.Questions)).Msg("Invalid question count, using fallback")
		return fallbackQuestions("Fallback questions generated due to processing error")
	}

	return model.InterviewQuestions{
		Questions: parsed.Questions,
		Message:   "Interview questions generated successfully",
	}
}

func fallbackQuestions(msg string) model.InterviewQuestions {
	return model.InterviewQuestions{
		Questions:  append([]string(nil), FallbackInterviewQuestions...),
		IsFallback: true,
		Message:    msg,
	}
}

// Feedback reviews the transcript. A provider failure yields the generic feedback text.
func (s *InterviewService) Feedback(ctx context.Context, req model.InterviewFeedbackRequest) (model.InterviewFeedback, error) {
	if len(req.Questions) != len(req.Answers) {
		return model.InterviewFeedback{}, ErrInterviewMismatch
	}

	pairs := make([]string, len(req.Questions))
	for i, q := range req.Questions {
		pairs[i] = fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, q, i+1, req.Answers[i].Answer)
	}

	prompt := fmt.Sprintf(`Based on the following interview responses from an undergraduate student, provide constructive feedback. The feedback should be:

1. Encouraging and supportive
2. Specific and actionable
3. Focus on areas for improvement
4. Highlight strengths
5. Provide tips for future interviews
6. Keep it concise but comprehensive

Interview Responses:
%s

Provide feedback in a friendly, mentor-like tone that helps the student improve their interview skills.`, strings.Join(pairs, "\n\n"))

	text, _, err := s.gateway.Complete(ctx, prompt, ai.GeneralModels)
	if err != nil {
		s.log.Warn().Err(err).Msg("Interview feedback failed, using fallback")
		return model.InterviewFeedback{
			Feedback:   fallbackInterviewFeedback,
			IsFallback: true,
			Message:    "Feedback generated successfully",
		}, nil
	}

	return model.InterviewFeedback{Feedback: text, Message: "Feedback generated successfully"}, nil
}
