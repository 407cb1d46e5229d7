package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// CareerHandler serves study-abroad career guidance.
type CareerHandler struct {
	careerService *service.CareerService
}

// NewCareerHandler creates a new CareerHandler.
func NewCareerHandler(careerService *service.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

// Recommendations godoc
// POST /api/career-path/recommendations
func (h *CareerHandler) Recommendations(c *gin.Context) {
	var req model.CareerPathRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.careerService.Recommend(c.Request.Context(), req)
	if err != nil {
		failAI(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}
