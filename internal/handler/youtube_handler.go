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

// YouTubeHandler serves educational video search.
type YouTubeHandler struct {
	videoService *service.VideoService
}

// NewYouTubeHandler creates a new YouTubeHandler.
func NewYouTubeHandler(videoService *service.VideoService) *YouTubeHandler {
	return &YouTubeHandler{videoService: videoService}
}

// Search godoc
// POST /api/youtube/search
// Quota exhaustion answers 200 with a placeholder video and quotaExceeded=true.
func (h *YouTubeHandler) Search(c *gin.Context) {
	var req model.VideoSearchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.videoService.Search(c.Request.Context(), req)
	if err != nil {
		failVideo(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CourseVideos godoc
// POST /api/youtube/course-videos
func (h *YouTubeHandler) CourseVideos(c *gin.Context) {
	var req model.CourseVideosRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.videoService.CourseVideos(c.Request.Context(), req)
	if err != nil {
		failVideo(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Trending godoc
// POST /api/youtube/trending
func (h *YouTubeHandler) Trending(c *gin.Context) {
	var req model.TrendingVideosRequest
	// The body is optional.
	if c.Request.ContentLength > 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	res, err := h.videoService.Trending(c.Request.Context(), req)
	if err != nil {
		failVideo(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func failVideo(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoSearchDisabled):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrVideoSearchDisabled)
	case errors.Is(err, service.ErrVideoSearchFailed):
		_ = c.Error(err)
		response.Fail(c, http.StatusBadGateway, response.ErrVideoSearchFailed)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
