package ai

// Candidate lists, newest and fastest first.
var (
	// QuizModels serve quiz generation and the assistant.
	QuizModels = []string{"gemini-2.5-flash", "gemini-1.5-flash", "gemini-1.0-pro"}

	// GeneralModels serve the study helpers, resume and interview features.
	GeneralModels = []string{"gemini-2.5-flash", "gemini-2.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"}

	// PlagiarismModels favour speed because the analysis runs under a hard deadline.
	PlagiarismModels = []string{"gemini-2.5-flash", "gemini-1.5-flash", "gemini-2.5-pro", "gemini-1.0-pro"}
)
