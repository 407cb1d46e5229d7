package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// AssistantHandler answers free-form questions.
type AssistantHandler struct {
	assistantService *service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Ask godoc
// POST /api/ai-assistant/ask
// Always answers 200; a canned reply with isFallback=true is used when generation fails.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, h.assistantService.Ask(c.Request.Context(), req))
}
