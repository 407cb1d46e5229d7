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

// PlagiarismHandler serves originality checks and their history.
type PlagiarismHandler struct {
	plagiarismService *service.PlagiarismService
}

// NewPlagiarismHandler creates a new PlagiarismHandler.
func NewPlagiarismHandler(plagiarismService *service.PlagiarismService) *PlagiarismHandler {
	return &PlagiarismHandler{plagiarismService: plagiarismService}
}

// AnalyzeDocument godoc
// POST /api/plagiarism/analyze-document
// Accepts a multipart "document" plus an optional "description".
func (h *PlagiarismHandler) AnalyzeDocument(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := service.DocumentUploads.Read(file, header)
	if err != nil {
		failUpload(c, err)
		return
	}

	rep, err := h.plagiarismService.AnalyzeDocument(c.Request.Context(), claims.UserID,
		header.Filename, header.Header.Get("Content-Type"), c.PostForm("description"), data)
	if err != nil {
		failUpload(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep})
}

// AnalyzeText godoc
// POST /api/plagiarism/analyze-text
func (h *PlagiarismHandler) AnalyzeText(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req model.AnalyzeTextRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rep, err := h.plagiarismService.AnalyzeText(c.Request.Context(), claims.UserID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextTooShort):
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrTextTooShort, err.Error())
		case errors.Is(err, service.ErrTextTooLong):
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrTextTooLong, err.Error())
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep})
}

// History godoc
// GET /api/plagiarism/history
func (h *PlagiarismHandler) History(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	reports, err := h.plagiarismService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}
