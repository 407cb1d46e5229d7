package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// CatalogueHandler serves the per-user academic record and the shared listings.
type CatalogueHandler struct {
	records      *service.RecordService
	publications *service.PublicationService
	listings     *service.ListingService
}

// NewCatalogueHandler creates a new CatalogueHandler.
func NewCatalogueHandler(records *service.RecordService, publications *service.PublicationService, listings *service.ListingService) *CatalogueHandler {
	return &CatalogueHandler{records: records, publications: publications, listings: listings}
}

// ─── Academic record ────────────────────────────────────────────────────────

// Subjects godoc
// GET /api/subjects
func (h *CatalogueHandler) Subjects(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	subjects, err := h.records.Subjects(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// Attendance godoc
// GET /api/attendance
func (h *CatalogueHandler) Attendance(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	records, err := h.records.Attendance(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// ─── Publications ───────────────────────────────────────────────────────────

// Publications godoc
// GET /api/publications
func (h *CatalogueHandler) Publications(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	pubs, err := h.publications.List(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if pubs == nil {
		pubs = []model.Publication{}
	}
	response.Success(c, http.StatusOK, gin.H{"publications": pubs})
}

// CreatePublication godoc
// POST /api/publications
func (h *CatalogueHandler) CreatePublication(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req model.CreatePublicationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pub, err := h.publications.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"publication": pub})
}

// ─── Listings ───────────────────────────────────────────────────────────────

// Resources godoc
// GET /api/resources?q=
// Lists learning resources; q fuzzy-matches titles.
func (h *CatalogueHandler) Resources(c *gin.Context) {
	resources, err := h.listings.Resources(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

// Internships godoc
// GET /api/internships
func (h *CatalogueHandler) Internships(c *gin.Context) {
	internships, err := h.listings.Internships(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if internships == nil {
		internships = []model.Internship{}
	}
	response.Success(c, http.StatusOK, gin.H{"internships": internships})
}
