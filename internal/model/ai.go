package model

// ─── Study helpers ──────────────────────────────────────────────────────────

// ExplainRequest asks for a plain-language concept explanation.
type ExplainRequest struct {
	Concept string `json:"concept" binding:"required,max=500"`
}

// SubjectGrade is one subject/grade pair sent for academic insight.
type SubjectGrade struct {
	Name     string `json:"name"`
	Grade    string `json:"grade"`
	Credits  int    `json:"credits,omitempty"`
	Semester int    `json:"semester,omitempty"`
}

// InsightRequest carries the subjects to comment on.
type InsightRequest struct {
	Subjects []SubjectGrade `json:"subjects" binding:"required,min=1,dive"`
}

// PredictRequest carries the attendance percentage to forecast from.
type PredictRequest struct {
	AttendancePercentage *float64 `json:"attendancePercentage" binding:"required,min=0,max=100"`
}

// PredictResponse pairs the rule-based advice with the generated forecast.
type PredictResponse struct {
	Advice     string `json:"advice"`
	Prediction string `json:"prediction"`
}

// TopicRequest is shared by the topic-driven helpers.
type TopicRequest struct {
	Topic string `json:"topic" binding:"required,max=300"`
}

// PracticeQuestion is one item of the short personalized quiz.
type PracticeQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// RecommendedResource is one AI-suggested learning link.
type RecommendedResource struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

// Recommendations is the learning-resource suggestion payload.
type Recommendations struct {
	SearchQueries        []string              `json:"search_queries"`
	RecommendedResources []RecommendedResource `json:"recommended_resources"`
}

// CourseProgress is one course entry sent for study planning.
type CourseProgress struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}

// StudyPlanRequest carries the courses to plan for.
type StudyPlanRequest struct {
	Courses []CourseProgress `json:"courses" binding:"required,min=1"`
}

// ResumeTextRequest carries raw resume text for bullet feedback.
type ResumeTextRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

// ─── Quiz generation ────────────────────────────────────────────────────────

// GenerateQuizRequest drives the school quiz generator.
type GenerateQuizRequest struct {
	Standard     string `json:"standard" binding:"required,max=20"`
	Subject      string `json:"subject" binding:"required,max=100"`
	Topic        string `json:"topic" binding:"required,max=200"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	NumQuestions int    `json:"numQuestions" binding:"omitempty,min=1,max=20"`
}

// SchoolQuizRequest drives the grade-based quiz generator.
type SchoolQuizRequest struct {
	Grade   string `json:"grade" binding:"required,max=50"`
	Subject string `json:"subject" binding:"required,max=100"`
	Topic   string `json:"topic" binding:"required,max=200"`
}

// ─── Assistant ──────────────────────────────────────────────────────────────

// AskRequest is a question for the assistant.
type AskRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
	UserType string `json:"userType" binding:"max=20"`
}

// AskResponse is the assistant reply.
type AskResponse struct {
	Answer     string `json:"answer"`
	Question   string `json:"question"`
	UserType   string `json:"userType"`
	Timestamp  string `json:"timestamp"`
	IsFallback bool   `json:"isFallback"`
	Notice     string `json:"notice,omitempty"`
}

// ─── Interview practice ─────────────────────────────────────────────────────

// InterviewQuestions is the voice interview question set.
type InterviewQuestions struct {
	Questions  []string `json:"questions"`
	IsFallback bool     `json:"isFallback"`
	Message    string   `json:"message"`
}

// InterviewAnswer is one spoken answer transcript.
type InterviewAnswer struct {
	Answer string `json:"answer"`
}

// InterviewFeedbackRequest carries the question/answer transcript.
type InterviewFeedbackRequest struct {
	Resume    string            `json:"resume"`
	Questions []string          `json:"questions" binding:"required,min=1"`
	Answers   []InterviewAnswer `json:"answers" binding:"required,min=1"`
}

// InterviewFeedback is the mentor-style feedback text.
type InterviewFeedback struct {
	Feedback   string `json:"feedback"`
	IsFallback bool   `json:"isFallback"`
	Message    string `json:"message"`
}

// ─── Resume analysis ────────────────────────────────────────────────────────

// ResumeAnalysis is the strengths/weaknesses breakdown.
type ResumeAnalysis struct {
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	MissingSections  []string `json:"missingSections"`
	Suggestions      []string `json:"suggestions"`
	SkillsGap        []string `json:"skillsGap"`
	FormattingIssues []string `json:"formattingIssues"`
}

// ResumeQuestions are interview questions tailored to a resume.
type ResumeQuestions struct {
	TechnicalQuestions   []string `json:"technicalQuestions"`
	BehavioralQuestions  []string `json:"behavioralQuestions"`
	SituationalQuestions []string `json:"situationalQuestions"`
}

// CareerRecommendations are development suggestions derived from a resume.
type CareerRecommendations struct {
	NextSteps                []string `json:"nextSteps"`
	SkillRecommendations     []string `json:"skillRecommendations"`
	CertificationSuggestions []string `json:"certificationSuggestions"`
	ProjectIdeas             []string `json:"projectIdeas"`
}

// ResumeReport combines the three resume passes.
type ResumeReport struct {
	Analysis              ResumeAnalysis        `json:"analysis"`
	Questions             ResumeQuestions       `json:"questions"`
	CareerRecommendations CareerRecommendations `json:"careerRecommendations"`
}

// ─── Career path ────────────────────────────────────────────────────────────

// CareerPathRequest describes the student profile to advise.
type CareerPathRequest struct {
	Field            string   `json:"field" binding:"required,max=200"`
	CGPA             *float64 `json:"cgpa" binding:"required,min=0,max=10"`
	PreferredCountry string   `json:"preferredCountry" binding:"required,max=100"`
}
