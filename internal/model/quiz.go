package model

import "time"

// Quiz is a stored quiz with its questions.
type Quiz struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Subject   string         `json:"subject"`
	CreatedAt time.Time      `json:"createdAt"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one multiple-choice question of a stored quiz.
// CorrectAnswer is omitted when the quiz is listed to takers.
type QuizQuestion struct {
	ID            int      `json:"id"`
	QuizID        int      `json:"quizId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// InlineQuestion is a question submitted alongside its answer key,
// as returned by the quiz generator.
type InlineQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// InlineQuiz carries a generated quiz back for scoring.
type InlineQuiz struct {
	Questions []InlineQuestion `json:"questions"`
}

// SubmitQuizRequest scores either a stored quiz or an inline one.
// Answers are keyed by question ID for stored quizzes and by question text for inline ones.
type SubmitQuizRequest struct {
	QuizID   *int              `json:"quizId" binding:"omitempty,gt=0"`
	QuizData *InlineQuiz       `json:"quizData"`
	Answers  map[string]string `json:"answers"`
}

// QuizResult is the outcome of a quiz submission.
type QuizResult struct {
	Score          int `json:"score"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
	Percentage     int `json:"percentage"`
}
