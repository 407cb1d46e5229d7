package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// cannedGenerator answers every prompt with the same text or error.
type cannedGenerator struct {
	text string
	err  error
}

func (g cannedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

// cannedProvider opens every model onto one generator, or refuses with openErr.
type cannedProvider struct {
	gen     cannedGenerator
	openErr error
}

func (p cannedProvider) Open(context.Context, string) (ai.Generator, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.gen, nil
}

func answering(text string) *ai.Gateway {
	return ai.NewGateway(cannedProvider{gen: cannedGenerator{text: text}}, 0, zerolog.Nop())
}

// Provider states every fallback path must survive.
func brokenGateways() map[string]*ai.Gateway {
	return map[string]*ai.Gateway{
		"no provider":    ai.NewGateway(nil, 0, zerolog.Nop()),
		"open fails":     ai.NewGateway(cannedProvider{openErr: errors.New("model not found")}, 0, zerolog.Nop()),
		"generate fails": ai.NewGateway(cannedProvider{gen: cannedGenerator{err: errors.New("quota")}}, 0, zerolog.Nop()),
		"empty response": answering("   "),
		"prose only":     answering("I'm sorry, I can't help with that."),
		"json null":      answering("null"),
		"truncated json": answering(`{"strengths": ["clear`),
	}
}

// ─── Assistant ──────────────────────────────────────────────────────────────

func TestAssistantService_FallsBackWhenProviderFails(t *testing.T) {
	for name, gw := range map[string]*ai.Gateway{
		"no provider":    ai.NewGateway(nil, 0, zerolog.Nop()),
		"generate fails": ai.NewGateway(cannedProvider{gen: cannedGenerator{err: errors.New("quota")}}, 0, zerolog.Nop()),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewAssistantService(gw, zerolog.Nop())
			resp := svc.Ask(context.Background(), model.AskRequest{Question: "How do I study?", UserType: "pg"})

			if !resp.IsFallback || resp.Notice == "" {
				t.Fatalf("expected fallback, got %+v", resp)
			}
			if !strings.Contains(resp.Answer, "How do I study?") || !strings.Contains(resp.Answer, "thesis supervisor") {
				t.Fatalf("answer is not the pg fallback: %q", resp.Answer)
			}
		})
	}
}

func TestAssistantService_ReturnsModelAnswer(t *testing.T) {
	svc := NewAssistantService(answering("• Use spaced repetition"), zerolog.Nop())
	resp := svc.Ask(context.Background(), model.AskRequest{Question: "How do I study?"})

	if resp.IsFallback || resp.Answer != "• Use spaced repetition" || resp.UserType != "student" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// ─── Interview ──────────────────────────────────────────────────────────────

var resumeFile = []byte("Jane Doe. Computer science undergraduate. Built a Go web service and led a robotics club.")

func TestInterviewService_QuestionsFallback(t *testing.T) {
	gateways := brokenGateways()
	gateways["four questions"] = answering(`{"questions":["a","b","c","d"]}`)
	gateways["six questions"] = answering(`{"questions":["a","b","c","d","e","f"]}`)

	for name, gw := range gateways {
		t.Run(name, func(t *testing.T) {
			svc := NewInterviewService(gw, zerolog.Nop())
			got := svc.Questions(context.Background(), "cv.txt", "text/plain", resumeFile)

			if !got.IsFallback {
				t.Fatalf("expected fallback questions, got %+v", got)
			}
			if !reflect.DeepEqual(got.Questions, FallbackInterviewQuestions) {
				t.Fatalf("questions = %v", got.Questions)
			}
		})
	}
}

func TestInterviewService_QuestionsFromModel(t *testing.T) {
	svc := NewInterviewService(answering("Here you go:\n"+`{"questions":["q1","q2","q3","q4","q5"]}`), zerolog.Nop())
	got := svc.Questions(context.Background(), "cv.txt", "text/plain", resumeFile)

	if got.IsFallback || len(got.Questions) != 5 || got.Questions[4] != "q5" {
		t.Fatalf("unexpected questions: %+v", got)
	}
}

func TestInterviewService_Feedback(t *testing.T) {
	req := model.InterviewFeedbackRequest{
		Questions: []string{"Tell me about yourself."},
		Answers:   []model.InterviewAnswer{{Answer: "I study CS."}},
	}

	t.Run("provider fails", func(t *testing.T) {
		svc := NewInterviewService(ai.NewGateway(nil, 0, zerolog.Nop()), zerolog.Nop())
		got, err := svc.Feedback(context.Background(), req)
		if err != nil {
			t.Fatalf("Feedback() error = %v", err)
		}
		if !got.IsFallback || got.Feedback != fallbackInterviewFeedback {
			t.Fatalf("expected fallback feedback, got %+v", got)
		}
	})

	t.Run("model answers", func(t *testing.T) {
		svc := NewInterviewService(answering("Great structure."), zerolog.Nop())
		got, err := svc.Feedback(context.Background(), req)
		if err != nil || got.IsFallback || got.Feedback != "Great structure." {
			t.Fatalf("Feedback() = %+v, %v", got, err)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		svc := NewInterviewService(answering("unused"), zerolog.Nop())
		bad := req
		bad.Answers = nil
		if _, err := svc.Feedback(context.Background(), bad); !errors.Is(err, ErrInterviewMismatch) {
			t.Fatalf("error = %v, want ErrInterviewMismatch", err)
		}
	})
}

// ─── Resume ─────────────────────────────────────────────────────────────────

const resumeText = "Jane Doe\nComputer Science undergraduate with Go, SQL and cloud experience. Led a robotics club."

func TestResumeService_EveryPassFallsBack(t *testing.T) {
	for name, gw := range brokenGateways() {
		t.Run(name, func(t *testing.T) {
			svc := NewResumeService(gw, 0, zerolog.Nop())
			got, err := svc.Analyze(context.Background(), resumeText)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if !reflect.DeepEqual(got.Analysis, fallbackResumeAnalysis) {
				t.Errorf("analysis = %+v, want fallback", got.Analysis)
			}
			if !reflect.DeepEqual(got.Questions, fallbackResumeQuestions) {
				t.Errorf("questions = %+v, want fallback", got.Questions)
			}
			if !reflect.DeepEqual(got.CareerRecommendations, fallbackCareerRecommendations) {
				t.Errorf("career = %+v, want fallback", got.CareerRecommendations)
			}
		})
	}
}

func TestResumeService_TooShort(t *testing.T) {
	svc := NewResumeService(answering("{}"), 0, zerolog.Nop())
	if _, err := svc.Analyze(context.Background(), "  short resume  "); !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("error = %v, want ErrTextTooShort", err)
	}
}

// ─── Plagiarism ─────────────────────────────────────────────────────────────

type fakePlagiarismStore struct {
	created []model.PlagiarismReport
}

func (f *fakePlagiarismStore) Create(_ context.Context, rep *model.PlagiarismReport) error {
	rep.ID = len(f.created) + 1
	f.created = append(f.created, *rep)
	return nil
}

func (f *fakePlagiarismStore) ListByUser(context.Context, int, int) ([]model.PlagiarismReport, error) {
	return f.created, nil
}

func TestPlagiarismService_FallbackIsPersisted(t *testing.T) {
	for name, gw := range brokenGateways() {
		t.Run(name, func(t *testing.T) {
			store := &fakePlagiarismStore{}
			svc := NewPlagiarismService(gw, store, 0, zerolog.Nop())

			rep, err := svc.AnalyzeText(context.Background(), 9, "An essay about photosynthesis.")
			if err != nil {
				t.Fatalf("AnalyzeText() error = %v", err)
			}
			a := rep.Analysis
			if !rep.IsFallback || a.OverallScore != 75 || a.PlagiarismPercentage != 25 || a.OriginalityScore != 75 {
				t.Fatalf("expected fallback scores, got fallback=%v %+v", rep.IsFallback, a)
			}
			if len(store.created) != 1 || !store.created[0].IsFallback || store.created[0].UserID != 9 {
				t.Fatalf("stored reports = %+v", store.created)
			}
		})
	}
}

func TestPlagiarismService_ModelVerdict(t *testing.T) {
	store := &fakePlagiarismStore{}
	svc := NewPlagiarismService(answering("```json\n"+`{"overallScore":90,"plagiarismPercentage":10,"originalityScore":90,"summary":"mostly original"}`+"\n```"), store, 0, zerolog.Nop())

	rep, err := svc.AnalyzeText(context.Background(), 9, "An essay about photosynthesis.")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if rep.IsFallback || rep.Analysis.OverallScore != 90 || rep.Analysis.Summary != "mostly original" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Analysis.FlaggedSections == nil || rep.Analysis.Recommendations == nil {
		t.Fatal("missing lists were not normalized to empty")
	}
}

func TestPlagiarismService_TextLimits(t *testing.T) {
	svc := NewPlagiarismService(answering("{}"), &fakePlagiarismStore{}, 0, zerolog.Nop())

	if _, err := svc.AnalyzeText(context.Background(), 1, "   "); !errors.Is(err, ErrTextTooShort) {
		t.Errorf("blank text: error = %v, want ErrTextTooShort", err)
	}
	if _, err := svc.AnalyzeText(context.Background(), 1, strings.Repeat("a", maxPlagiarismText+1)); !errors.Is(err, ErrTextTooLong) {
		t.Errorf("long text: error = %v, want ErrTextTooLong", err)
	}
}

// ─── Career ─────────────────────────────────────────────────────────────────

func careerRequest() model.CareerPathRequest {
	cgpa := 8.7
	return model.CareerPathRequest{Field: "Computer Science", CGPA: &cgpa, PreferredCountry: "Germany"}
}

func TestCareerService_Errors(t *testing.T) {
	tests := []struct {
		name string
		gw   *ai.Gateway
		want error
	}{
		{"no provider", ai.NewGateway(nil, 0, zerolog.Nop()), ai.ErrProviderUnavailable},
		{"generate fails", ai.NewGateway(cannedProvider{gen: cannedGenerator{err: errors.New("quota")}}, 0, zerolog.Nop()), ai.ErrGenerationFailed},
		{"prose only", answering("Study hard and apply early."), ai.ErrGenerationFailed},
		{"json null", answering("null"), ai.ErrGenerationFailed},
		{"no programs", answering(`{"personalAnalysis":"strong profile"}`), ai.ErrGenerationFailed},
		{"programs not a list", answering(`{"programs":"MSc"}`), ai.ErrGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCareerService(tt.gw, zerolog.Nop())
			if _, err := svc.Recommend(context.Background(), careerRequest()); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCareerService_MergesProfile(t *testing.T) {
	svc := NewCareerService(answering(`Sure: {"programs":[{"name":"MSc Informatics"}]}`), zerolog.Nop())
	rec, err := svc.Recommend(context.Background(), careerRequest())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if rec["field"] != "Computer Science" || rec["preferredCountry"] != "Germany" || rec["aiGenerated"] != true {
		t.Fatalf("profile not merged: %v", rec)
	}
}

// ─── Quiz pipeline ──────────────────────────────────────────────────────────

func quizRequest(n int) model.GenerateQuizRequest {
	return model.GenerateQuizRequest{Standard: "5", Subject: "Math", Topic: "Fractions", Difficulty: "easy", NumQuestions: n}
}

func TestAIService_GenerateQuizRejectsAnswerOutsideOptions(t *testing.T) {
	reply := "Here is your quiz!\n" +
		`{"title":"Fractions","questions":[` +
		`{"question":"1/2 + 1/4?","options":["3/4","1/6","2/6","1"],"correctAnswer":"3/4"},` +
		`{"question":"Larger?","options":["1/3","1/2","1/4","1/5"],"correctAnswer":"2/3"}]}` +
		"\nGood luck!"
	svc := NewAIService(answering(reply), zerolog.Nop())

	got := svc.GenerateQuiz(context.Background(), quizRequest(2))
	if !got.IsFallback {
		t.Fatalf("expected fallback, got %+v", got.QuizPayload)
	}
	if len(got.Questions) != 2 || !strings.Contains(got.Title, "Math") {
		t.Fatalf("fallback quiz = %+v", got.QuizPayload)
	}
}

func TestAIService_GenerateQuizQuestionCount(t *testing.T) {
	q := `{"question":"Q","options":["a","b","c","d"],"correctAnswer":"a"}`
	three := `{"title":"T","questions":[` + q + "," + q + "," + q + `]}`

	tests := []struct {
		name         string
		requested    int
		wantFallback bool
		wantCount    int
	}{
		{"exact", 3, false, 3},
		{"extra questions cut", 2, false, 2},
		{"too few", 5, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAIService(answering(three), zerolog.Nop())
			got := svc.GenerateQuiz(context.Background(), quizRequest(tt.requested))
			if got.IsFallback != tt.wantFallback || len(got.Questions) != tt.wantCount {
				t.Fatalf("fallback=%v questions=%d, want fallback=%v questions=%d",
					got.IsFallback, len(got.Questions), tt.wantFallback, tt.wantCount)
			}
		})
	}
}

func TestAIService_GenerateQuizTrimsAnswers(t *testing.T) {
	reply := "```json\n" + `{"title":"T","questions":[{"question":"Q","options":[" a ","b","c","d"],"correctAnswer":"a "}]}` + "\n```"
	svc := NewAIService(answering(reply), zerolog.Nop())

	got := svc.GenerateQuiz(context.Background(), quizRequest(1))
	if got.IsFallback {
		t.Fatal("padded answer should validate")
	}
	qq := got.Questions[0]
	if qq.CorrectAnswer != "a" || qq.Options[0] != "a" {
		t.Fatalf("answers not trimmed: %+v", qq)
	}
	if ScoreAnswers([]string{"0"}, []string{qq.CorrectAnswer}, map[string]string{"0": "a"}).CorrectAnswers != 1 {
		t.Fatal("trimmed answer does not score as correct")
	}
}
