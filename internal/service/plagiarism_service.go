package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/textextract"
)

// ErrTextTooLong is returned when pasted text exceeds the analysis limit.
var ErrTextTooLong = errors.New("text too long")

const (
	maxPlagiarismText   = 10000
	plagiarismHistoryN  = 50
	fallbackSummaryText = "Automated analysis is unavailable right now; these scores are a conservative estimate."
)

// PlagiarismStore persists analysis runs.
type PlagiarismStore interface {
	Create(ctx context.Context, rep *model.PlagiarismReport) error
	ListByUser(ctx context.Context, userID, limit int) ([]model.PlagiarismReport, error)
}

// PlagiarismService scores text for likely plagiarism and keeps a per-user history.
type PlagiarismService struct {
	gateway *ai.Gateway
	reports PlagiarismStore
	timeout time.Duration
	log     zerolog.Logger
}

// NewPlagiarismService creates a new PlagiarismService. timeout bounds each analysis.
func NewPlagiarismService(gateway *ai.Gateway, reports PlagiarismStore, timeout time.Duration, log zerolog.Logger) *PlagiarismService {
	return &PlagiarismService{
		gateway: gateway,
		reports: reports,
		timeout: timeout,
		log:     log.With().Str("component", "plagiarism_service").Logger(),
	}
}

// FallbackPlagiarismAnalysis is the neutral verdict used when the model is
// unavailable or its answer cannot be parsed.
func FallbackPlagiarismAnalysis(summary string) model.PlagiarismAnalysis {
	return model.PlagiarismAnalysis{
		OverallScore:         75,
		PlagiarismPercentage: 25,
		OriginalityScore:     75,
		FlaggedSections: []model.FlaggedSection{{
			Text:       "Some text may need citation",
			Confidence: 0.7,
			Suggestion: "Add proper citations",
			Severity:   "medium",
		}},
		Recommendations: []string{
			"Add more original content",
			"Include proper citations",
			"Paraphrase quoted material",
		},
		Summary: summary,
	}
}

// AnalyzeText analyzes pasted text and records the report.
func (s *PlagiarismService) AnalyzeText(ctx context.Context, userID int, text string) (*model.PlagiarismReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text provided", ErrTextTooShort)
	}
	if utf8.RuneCountInString(text) > maxPlagiarismText {
		return nil, fmt.Errorf("%w: maximum %d characters", ErrTextTooLong, maxPlagiarismText)
	}

	rep := &model.PlagiarismReport{
		UserID:     userID,
		Source:     model.PlagiarismSourceText,
		Title:      "Text Analysis",
		TextLength: utf8.RuneCountInString(text),
	}
	return s.analyzeAndStore(ctx, rep, text)
}

// AnalyzeDocument extracts text from an upload, analyzes it and records the report.
func (s *PlagiarismService) AnalyzeDocument(ctx context.Context, userID int, fileName, mimeType, description string, data []byte) (*model.PlagiarismReport, error) {
	text, err := textextract.Extract(fileName, mimeType, data)
	if err != nil {
		return nil, err
	}

	rep := &model.PlagiarismReport{
		UserID:      userID,
		Source:      model.PlagiarismSourceDocument,
		Title:       fileName,
		Description: description,
		FileName:    fileName,
		FileSize:    int64(len(data)),
		TextLength:  utf8.RuneCountInString(text),
	}
	return s.analyzeAndStore(ctx, rep, text)
}

// History returns the user's most recent reports, newest first.
func (s *PlagiarismService) History(ctx context.Context, userID int) ([]model.PlagiarismReport, error) {
	reports, err := s.reports.ListByUser(ctx, userID, plagiarismHistoryN)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.PlagiarismReport{}
	}
	return reports, nil
}

func (s *PlagiarismService) analyzeAndStore(ctx context.Context, rep *model.PlagiarismReport, text string) (*model.PlagiarismReport, error) {
	rep.Analysis, rep.IsFallback = s.analyze(ctx, text)

	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("store plagiarism report: %w", err)
	}
	return rep, nil
}

// analyze never fails; the bool reports whether the fallback verdict was used.
func (s *PlagiarismService) analyze(ctx context.Context, text string) (model.PlagiarismAnalysis, bool) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := `Analyze this text for plagiarism. Return JSON only:
{
    "overallScore": number (0-100),
    "plagiarismPercentage": number (0-100),
    "originalityScore": number (0-100),
    "flaggedSections": [{"text": "snippet", "confidence": 0.8, "suggestion": "improve", "severity": "medium"}],
    "recommendations": ["suggestion1", "suggestion2"],
    "summary": "brief analysis"
}

Text: ` + text

	raw, modelID, err := s.gateway.Complete(ctx, prompt, ai.PlagiarismModels)
	if err != nil {
		s.log.Warn().Err(err).Msg("Plagiarism analysis failed, using fallback")
		return FallbackPlagiarismAnalysis(fallbackSummaryText), true
	}

	analysis, ok := ai.Decode[model.PlagiarismAnalysis](raw)
	if !ok {
		s.log.Warn().Str("model", modelID).Msg("Plagiarism analysis unparseable, using fallback")
		return FallbackPlagiarismAnalysis(strings.TrimSpace(raw)), true
	}
	if analysis.FlaggedSections == nil {
		analysis.FlaggedSections = []model.FlaggedSection{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	return analysis, false
}
