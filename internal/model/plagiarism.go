package model

import "time"

// FlaggedSection is one passage the analyzer marked as possibly unoriginal.
type FlaggedSection struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Suggestion string  `json:"suggestion"`
	Severity   string  `json:"severity"`
}

// PlagiarismAnalysis is the structured verdict returned by the analyzer.
type PlagiarismAnalysis struct {
	OverallScore         float64          `json:"overallScore"`
	PlagiarismPercentage float64          `json:"plagiarismPercentage"`
	OriginalityScore     float64          `json:"originalityScore"`
	FlaggedSections      []FlaggedSection `json:"flaggedSections"`
	Recommendations      []string         `json:"recommendations"`
	Summary              string           `json:"summary"`
}

// PlagiarismSource records whether a report came from an upload or pasted text.
type PlagiarismSource string

const (
	PlagiarismSourceDocument PlagiarismSource = "document"
	PlagiarismSourceText     PlagiarismSource = "text"
)

// PlagiarismReport is a persisted analysis run.
type PlagiarismReport struct {
	ID           int                `json:"id"`
	UserID       int                `json:"uploadedBy"`
	Source       PlagiarismSource   `json:"source"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	FileName     string             `json:"fileName,omitempty"`
	FileSize     int64              `json:"fileSize,omitempty"`
	TextLength   int                `json:"textLength"`
	Analysis     PlagiarismAnalysis `json:"analysis"`
	IsFallback   bool               `json:"isFallback"`
	AnalysisDate time.Time          `json:"analysisDate"`
}

// AnalyzeTextRequest is the payload for pasted-text analysis.
type AnalyzeTextRequest struct {
	Text string `json:"text" binding:"required"`
}
