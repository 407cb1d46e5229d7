package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/middleware"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/textextract"
)

// paramID parses a positive integer path parameter, answering 400 on failure.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// mustClaims returns the authenticated principal, answering 401 when absent.
func mustClaims(c *gin.Context) (*service.Claims, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}
	return claims, true
}

func clientMeta(c *gin.Context) service.ClientMeta {
	return service.ClientMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// failStore maps repository errors for lookups by ID.
func failStore(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// failAI maps gateway errors for endpoints without a fallback.
func failAI(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrAIUnavailable)
	case errors.Is(err, ai.ErrGenerationFailed):
		_ = c.Error(err)
		response.Fail(c, http.StatusBadGateway, response.ErrAIGenerationFailed)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// failUpload maps upload policy and text extraction errors.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrUnsupportedFile, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrFileTooLarge, err.Error())
	case errors.Is(err, service.ErrFileEmpty), errors.Is(err, textextract.ErrEmpty):
		response.Fail(c, http.StatusBadRequest, response.ErrFileEmpty)
	case errors.Is(err, textextract.ErrNoText):
		response.Fail(c, http.StatusBadRequest, response.ErrTextExtraction)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
