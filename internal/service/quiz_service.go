package service

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/samber/lo"
	"github.com/stemsi/eduverse-backend/internal/model"
)

// ErrQuizSourceRequired is returned when a submission names neither a stored nor an inline quiz.
var ErrQuizSourceRequired = errors.New("quiz ID or quiz data required")

// QuizStore reads stored quizzes.
type QuizStore interface {
	ListWithQuestions(ctx context.Context) ([]model.Quiz, error)
	GetWithQuestions(ctx context.Context, id int) (*model.Quiz, error)
}

// QuizService lists stored quizzes and scores submissions.
type QuizService struct {
	quizzes QuizStore
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// List returns every quiz with its questions and the answer keys stripped.
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.quizzes.ListWithQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(quizzes, func(q model.Quiz, _ int) model.Quiz {
		q.Questions = lo.Map(q.Questions, func(qq model.QuizQuestion, _ int) model.QuizQuestion {
			qq.CorrectAnswer = ""
			return qq
		})
		return q
	}), nil
}

// Submit scores a submission. Inline quiz data takes precedence over quizId.
// Inline answers are keyed by question text, stored ones by question ID.
func (s *QuizService) Submit(ctx context.Context, req model.SubmitQuizRequest) (*model.QuizResult, error) {
	var keys, correct []string

	switch {
	case req.QuizData != nil && req.QuizData.Questions != nil:
		for _, q := range req.QuizData.Questions {
			keys = append(keys, q.Question)
			correct = append(correct, q.CorrectAnswer)
		}
	case req.QuizID != nil:
		quiz, err := s.quizzes.GetWithQuestions(ctx, *req.QuizID)
		if err != nil {
			return nil, err
		}
		for _, q := range quiz.Questions {
			keys = append(keys, strconv.Itoa(q.ID))
			correct = append(correct, q.CorrectAnswer)
		}
	default:
		return nil, ErrQuizSourceRequired
	}

	return ScoreAnswers(keys, correct, req.Answers), nil
}

// ScoreAnswers counts exact matches between answers[keys[i]] and correct[i].
// Score and Percentage are both the rounded percentage.
func ScoreAnswers(keys, correct []string, answers map[string]string) *model.QuizResult {
	hits := 0
	for i, key := range keys {
		if given, ok := answers[key]; ok && given == correct[i] {
			hits++
		}
	}

	total := len(keys)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(hits) / float64(total) * 100))
	}
	return &model.QuizResult{Score: pct, CorrectAnswers: hits, TotalQuestions: total, Percentage: pct}
}
