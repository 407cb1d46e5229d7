package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// AIHandler exposes the study helpers and both quiz generators.
type AIHandler struct {
	aiService *service.AIService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// ─── Study helpers ──────────────────────────────────────────────────────────

// Explain godoc
// POST /api/ai/explain
func (h *AIHandler) Explain(c *gin.Context) {
	var req model.ExplainRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	text, err := h.aiService.Explain(c.Request.Context(), req.Concept)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"explanation": text})
}

// Insight godoc
// POST /api/ai/insight
func (h *AIHandler) Insight(c *gin.Context) {
	var req model.InsightRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	text, err := h.aiService.Insight(c.Request.Context(), req.Subjects)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"insight": text})
}

// Predict godoc
// POST /api/ai/predict-performance
// Returns threshold advice for the attendance percentage plus a generated forecast.
func (h *AIHandler) Predict(c *gin.Context) {
	var req model.PredictRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.aiService.Predict(c.Request.Context(), *req.AttendancePercentage)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// PracticeQuiz godoc
// POST /api/ai/generate-quiz
// Generates a short personalized quiz on a topic.
func (h *AIHandler) PracticeQuiz(c *gin.Context) {
	var req model.TopicRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.aiService.PracticeQuiz(c.Request.Context(), req.Topic)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": questions})
}

// Recommend godoc
// POST /api/ai/recommend
func (h *AIHandler) Recommend(c *gin.Context) {
	var req model.TopicRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	recs, err := h.aiService.Recommend(c.Request.Context(), req.Topic)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, recs)
}

// StudyPlan godoc
// POST /api/ai/study-plan
func (h *AIHandler) StudyPlan(c *gin.Context) {
	var req model.StudyPlanRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	plan, err := h.aiService.StudyPlan(c.Request.Context(), req.Courses)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// EnhanceResume godoc
// POST /api/ai/enhance-resume
func (h *AIHandler) EnhanceResume(c *gin.Context) {
	var req model.ResumeTextRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	feedback, err := h.aiService.EnhanceResume(c.Request.Context(), req.ResumeText)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"feedback": feedback})
}

// InterviewQuestion godoc
// GET /api/ai/interview-question
func (h *AIHandler) InterviewQuestion(c *gin.Context) {
	q, err := h.aiService.InterviewQuestion(c.Request.Context())
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// ─── Quiz generation ────────────────────────────────────────────────────────

// GenerateQuiz godoc
// POST /api/ai-quiz/generate-quiz
// Generates a validated quiz. Provider or schema failures yield the fallback quiz, never an error.
func (h *AIHandler) GenerateQuiz(c *gin.Context) {
	var req model.GenerateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz := h.aiService.GenerateQuiz(c.Request.Context(), req)
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// SchoolQuiz godoc
// POST /api/ai/generate-school-quiz
func (h *AIHandler) SchoolQuiz(c *gin.Context) {
	var req model.SchoolQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz := h.aiService.SchoolQuiz(c.Request.Context(), req)
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}
