package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// InterviewHandler drives the voice interview practice flow.
type InterviewHandler struct {
	interviewService *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviewService *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

// AnalyzeResume godoc
// POST /api/ai/voice-interview/analyze-resume
// Accepts a multipart "resume" document and returns five interview questions.
func (h *InterviewHandler) AnalyzeResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := service.InterviewResumeUploads.Read(file, header)
	if err != nil {
		failUpload(c, err)
		return
	}

	qs := h.interviewService.Questions(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	response.Success(c, http.StatusOK, qs)
}

// Feedback godoc
// POST /api/ai/voice-interview/feedback
func (h *InterviewHandler) Feedback(c *gin.Context) {
	var req model.InterviewFeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fb, err := h.interviewService.Feedback(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInterviewMismatch) {
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, err.Error())
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, fb)
}
