package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// MaterialHandler handles course material uploads and delivery.
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// Upload godoc
// POST /api/materials/upload
// Accepts a multipart "material" file plus metadata fields.
func (h *MaterialHandler) Upload(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req model.UploadMaterialRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	file, header, err := c.Request.FormFile("material")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	m, err := h.materialService.Upload(c.Request.Context(), claims.UserID, req, file, header)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.FailWithDetails(c, http.StatusNotFound, response.ErrNotFound, "course not found")
			return
		}
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"material": m})
}

// ListByCourse godoc
// GET /api/materials/course/:courseId
func (h *MaterialHandler) ListByCourse(c *gin.Context) {
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return
	}

	var q model.MaterialQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	materials, err := h.materialService.ListByCourse(c.Request.Context(), courseID, q.Type)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if materials == nil {
		materials = []model.Material{}
	}
	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

// ListPublic godoc
// GET /api/materials/student
// Lists public materials, optionally filtered by courseId and type.
func (h *MaterialHandler) ListPublic(c *gin.Context) {
	var q model.MaterialQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	materials, err := h.materialService.ListPublic(c.Request.Context(), q.CourseID, q.Type)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if materials == nil {
		materials = []model.Material{}
	}
	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

// Get godoc
// GET /api/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	m, err := h.materialService.Get(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"material": m})
}

// Download godoc
// GET /api/materials/:id/download
// Sends the file as an attachment and counts the download.
func (h *MaterialHandler) Download(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	m, err := h.materialService.Download(c.Request.Context(), id)
	if err != nil {
		h.failFile(c, err)
		return
	}
	c.FileAttachment(m.FilePath, m.FileName)
}

// Serve godoc
// GET /api/materials/:id/serve
// Streams the file inline, honoring range requests.
func (h *MaterialHandler) Serve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	m, err := h.materialService.File(c.Request.Context(), id)
	if err != nil {
		h.failFile(c, err)
		return
	}
	if m.MimeType != "" {
		c.Header("Content-Type", m.MimeType)
	}
	c.File(m.FilePath)
}

// Delete godoc
// DELETE /api/materials/:id
// Only the uploader may delete a material.
func (h *MaterialHandler) Delete(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
			return
		}
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Material deleted successfully."})
}

func (h *MaterialHandler) failFile(c *gin.Context, err error) {
	if errors.Is(err, service.ErrFileMissing) {
		response.Fail(c, http.StatusNotFound, response.ErrFileMissing)
		return
	}
	failStore(c, err)
}
