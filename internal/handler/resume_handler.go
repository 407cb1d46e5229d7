package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/textextract"
)

// ResumeHandler serves the three-pass resume analyzer.
type ResumeHandler struct {
	resumeService *service.ResumeService
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumeService *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// Analyze godoc
// POST /api/resume/analyze
// Takes either a multipart "resume" file or a "resumeText" field (form or JSON).
func (h *ResumeHandler) Analyze(c *gin.Context) {
	text, ok := h.resumeText(c)
	if !ok {
		return
	}

	report, err := h.resumeService.Analyze(c.Request.Context(), text)
	if err != nil {
		if errors.Is(err, service.ErrTextTooShort) {
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrTextTooShort, err.Error())
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// resumeText pulls the resume from an upload when present, else from the body.
func (h *ResumeHandler) resumeText(c *gin.Context) (string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if file, header, err := c.Request.FormFile("resume"); err == nil {
			defer file.Close()

			data, err := service.ResumeUploads.Read(file, header)
			if err != nil {
				failUpload(c, err)
				return "", false
			}
			text, err := textextract.Extract(header.Filename, header.Header.Get("Content-Type"), data)
			if err != nil {
				failUpload(c, err)
				return "", false
			}
			return text, true
		}
		return c.PostForm("resumeText"), true
	}

	var body struct {
		ResumeText string `json:"resumeText" form:"resumeText"`
	}
	if err := c.ShouldBind(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return "", false
	}
	return body.ResumeText, true
}
