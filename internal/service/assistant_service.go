package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
)

const assistantFallbackNotice = "AI service temporarily unavailable, providing general response"

const assistantBasePrompt = `You are a helpful AI assistant for an educational platform.

CRITICAL RESPONSE FORMAT RULES:
- NEVER write in paragraph format
- ALWAYS use bullet points (•) or numbered lists (1. 2. 3.)
- Keep responses under 100 words
- Use short, punchy sentences
- One idea per bullet point
- Be direct and actionable
- NO long explanations or paragraphs
- Format: Bullet points only, no paragraphs`

// assistantAudiences maps a user type to its audience brief and focus areas.
var assistantAudiences = map[string]struct {
	brief string
	focus []string
}{
	"student": {"You are helping students with academic and career questions.",
		[]string{"Short, actionable tips", "Step-by-step numbered lists when needed", "Resource recommendations", "Study strategies", "Career advice"}},
	"ug": {"You are helping undergraduate students.",
		[]string{"Course planning tips", "Study techniques", "Career preparation", "Skill development", "Internship guidance"}},
	"pg": {"You are helping postgraduate students with research and advanced studies.",
		[]string{"Research methodology tips", "Academic writing guidance", "Career opportunities", "Publishing advice", "Professional development"}},
}

// assistantFallbacks are the canned resources per user type.
var assistantFallbacks = map[string][]string{
	"student": {
		"Academic help: Consult professors or advisors",
		"Career guidance: Check LinkedIn, Indeed, Glassdoor",
		"Technical skills: Try Coursera, Udemy, freeCodeCamp",
		"Study tips: Use Pomodoro Technique or spaced repetition",
	},
	"ug": {
		"Academic planning: Consult your academic advisor",
		"Study resources: Use university library and online platforms",
		"Career development: Visit career services office",
		"Internships: Check university job board and company websites",
	},
	"pg": {
		"Research guidance: Consult your thesis supervisor",
		"Academic writing: Use Purdue OWL or university writing center",
		"Career opportunities: Explore academic job boards",
		"Publishing: Check journal submission guidelines",
	},
	"default": {
		"Consult relevant experts or resources",
		"Check official documentation or help centers",
		"Look for community forums or support groups",
		"Reach out to mentors or colleagues",
	},
}

// AssistantService answers free-form questions tailored to the asker's user type.
type AssistantService struct {
	gateway *ai.Gateway
	log     zerolog.Logger
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(gateway *ai.Gateway, log zerolog.Logger) *AssistantService {
	return &AssistantService{
		gateway: gateway,
		log:     log.With().Str("component", "assistant_service").Logger(),
	}
}

// Ask answers a question. When the provider is missing or fails the canned
// answer for the user type is returned instead, flagged as a fallback.
func (s *AssistantService) Ask(ctx context.Context, req model.AskRequest) model.AskResponse {
	userType := req.UserType
	if userType == "" {
		userType = "student"
	}

	resp := model.AskResponse{
		Question:  req.Question,
		UserType:  userType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	prompt := AssistantPrompt(userType) + "\n\nUser Question: " + req.Question
	answer, _, err := s.gateway.Complete(ctx, prompt, ai.QuizModels)
	if err != nil {
		s.log.Warn().Err(err).Str("user_type", userType).Msg("Assistant falling back to canned answer")
		resp.Answer = AssistantFallback(req.Question, userType)
		resp.IsFallback = true
		resp.Notice = assistantFallbackNotice
		return resp
	}

	resp.Answer = answer
	return resp
}

// AssistantPrompt builds the system prompt for a user type; unknown types get the base prompt.
func AssistantPrompt(userType string) string {
	aud, ok := assistantAudiences[userType]
	if !ok {
		return assistantBasePrompt
	}

	var b strings.Builder
	b.WriteString(assistantBasePrompt)
	b.WriteString("\n\n")
	b.WriteString(aud.brief)
	b.WriteString(" ALWAYS respond with:\n• Bullet points only\n")
	for _, f := range aud.focus {
		b.WriteString("• " + f + "\n")
	}
	b.WriteString("\nNEVER use paragraphs. Use bullet points for everything.")
	return b.String()
}

// AssistantFallback returns the canned answer for a user type.
func AssistantFallback(question, userType string) string {
	items, ok := assistantFallbacks[userType]
	if !ok {
		userType = "default"
		items = assistantFallbacks[userType]
	}

	var b strings.Builder
	switch userType {
	case "default":
		fmt.Fprintf(&b, "I understand you're asking about %q. While I'm experiencing technical difficulties, here are quick suggestions:\n\n", question)
	case "student":
		fmt.Fprintf(&b, "I understand you're asking about %q. While my AI service is temporarily unavailable, here are quick resources:\n\n", question)
	default:
		fmt.Fprintf(&b, "I understand your question about %q. While my AI service is temporarily unavailable, here are quick resources:\n\n", question)
	}
	for _, item := range items {
		b.WriteString("• " + item + "\n")
	}
	b.WriteString("\nPlease try again shortly when my service is restored.")
	return b.String()
}
