package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidSchema is returned when a candidate quiz does not have the required shape.
var ErrInvalidSchema = errors.New("invalid quiz schema")

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question" jsonschema:"minLength=1"`
	Options       []string `json:"options" jsonschema:"minItems=4,maxItems=4"`
	CorrectAnswer string   `json:"correctAnswer" jsonschema:"minLength=1"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizPayload is the quiz shape every generator must return.
type QuizPayload struct {
	Title       string         `json:"title" jsonschema:"minLength=1"`
	Description string         `json:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions" jsonschema:"minItems=1"`
}

// QuizSpec carries the request fields a quiz is generated from.
type QuizSpec struct {
	Standard     string
	Subject      string
	Topic        string
	Difficulty   string
	NumQuestions int
}

// GeneratedQuiz is a validated or fallback quiz stamped with request metadata.
type GeneratedQuiz struct {
	QuizPayload
	Standard   string    `json:"standard"`
	Subject    string    `json:"subject"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"createdAt"`
	Model      string    `json:"model,omitempty"`
	IsFallback bool      `json:"isFallback"`
}

var quizSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(reflectQuizSchema())
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
})

func reflectQuizSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	schema := reflector.Reflect(&QuizPayload{})
	// Draft 2020-12 is not understood by the validator; the keywords used are draft agnostic.
	schema.Version = ""
	return schema
}

// QuizSchemaJSON returns the reflected quiz schema, used as a prompt hint.
func QuizSchemaJSON() string {
	raw, err := json.MarshalIndent(reflectQuizSchema(), "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}

// ValidateQuiz checks that candidate is a usable quiz. candidate may be a
// QuizPayload, a decoded JSON value, raw JSON bytes, or a JSON string.
// Options and correct answers come back trimmed so answers can be compared
// exactly. Validating an already valid payload returns an equal payload.
func ValidateQuiz(candidate any) (QuizPayload, error) {
	var data []byte
	switch v := candidate.(type) {
	case nil:
		return QuizPayload{}, fmt.Errorf("%w: empty candidate", ErrInvalidSchema)
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return QuizPayload{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
		}
		data = b
	}

	schema, err := quizSchema()
	if err != nil {
		return QuizPayload{}, fmt.Errorf("load quiz schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return QuizPayload{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			msgs = append(msgs, re.String())
		}
		return QuizPayload{}, fmt.Errorf("%w: %s", ErrInvalidSchema, strings.Join(msgs, "; "))
	}

	var quiz QuizPayload
	if err := json.Unmarshal(data, &quiz); err != nil {
		return QuizPayload{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	trimAnswers(&quiz)
	if err := checkQuiz(quiz); err != nil {
		return QuizPayload{}, err
	}
	return quiz, nil
}

func trimAnswers(q *QuizPayload) {
	for i := range q.Questions {
		qq := &q.Questions[i]
		qq.CorrectAnswer = strings.TrimSpace(qq.CorrectAnswer)
		for j := range qq.Options {
			qq.Options[j] = strings.TrimSpace(qq.Options[j])
		}
	}
}

func checkQuiz(q QuizPayload) error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidSchema)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidSchema)
	}
	for i, question := range q.Questions {
		if strings.TrimSpace(question.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidSchema, i+1)
		}
		if len(question.Options) != 4 {
			return fmt.Errorf("%w: question %d has %d options, want 4", ErrInvalidSchema, i+1, len(question.Options))
		}
		if question.CorrectAnswer == "" {
			return fmt.Errorf("%w: question %d has no correct answer", ErrInvalidSchema, i+1)
		}
		if !slices.Contains(question.Options, question.CorrectAnswer) {
			return fmt.Errorf("%w: question %d correct answer is not one of its options", ErrInvalidSchema, i+1)
		}
	}
	return nil
}

// FallbackQuiz builds a schema-valid placeholder quiz from the request fields.
func FallbackQuiz(spec QuizSpec) QuizPayload {
	n := spec.NumQuestions
	if n < 1 {
		n = 1
	}

	questions := make([]QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, QuizQuestion{
			Question: fmt.Sprintf("What is the main concept of %s in %s for Class %s?", spec.Topic, spec.Subject, spec.Standard),
			Options: []string{
				fmt.Sprintf("Option A for %s", spec.Topic),
				fmt.Sprintf("Option B for %s", spec.Topic),
				fmt.Sprintf("Option C for %s", spec.Topic),
				fmt.Sprintf("Option D for %s", spec.Topic),
			},
			CorrectAnswer: fmt.Sprintf("Option A for %s", spec.Topic),
			Explanation:   fmt.Sprintf("This is a sample question about %s in %s for Class %s students.", spec.Topic, spec.Subject, spec.Standard),
		})
	}

	return QuizPayload{
		Title:       fmt.Sprintf("%s Quiz - %s", spec.Subject, spec.Topic),
		Description: fmt.Sprintf("A %s level quiz on %s for Class %s students", spec.Difficulty, spec.Topic, spec.Standard),
		Questions:   questions,
	}
}

// Stamp attaches request metadata to a quiz. It does not validate.
func (q QuizPayload) Stamp(spec QuizSpec, at time.Time) GeneratedQuiz {
	return GeneratedQuiz{
		QuizPayload: q,
		Standard:    spec.Standard,
		Subject:     spec.Subject,
		Topic:       spec.Topic,
		Difficulty:  spec.Difficulty,
		CreatedAt:   at,
	}
}
