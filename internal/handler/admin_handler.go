package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
)

// AdminHandler handles the admin panel endpoints.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard godoc
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ─── Users ──────────────────────────────────────────────────────────────────

// ListUsers godoc
// GET /api/admin/users?page=&limit=&role=&search=&isActive=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q model.ListUsersQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	users, pagination, err := h.adminService.ListUsers(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, pagination)
}

// GetUser godoc
// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser godoc
// PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyUpdate) {
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, err.Error())
			return
		}
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// DELETE /api/admin/users/:id
// Admin accounts cannot be deleted.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAdminUndeletable) {
			response.Fail(c, http.StatusBadRequest, response.ErrAdminUndeletable)
			return
		}
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// BulkUpdateUsers godoc
// PUT /api/admin/users/bulk
func (h *AdminHandler) BulkUpdateUsers(c *gin.Context) {
	var req model.BulkUpdateUsersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	n, err := h.adminService.BulkUpdateUsers(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyUpdate) {
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, err.Error())
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modifiedCount": n})
}

// ─── Courses ────────────────────────────────────────────────────────────────

// ListCourses godoc
// GET /api/admin/courses?page=&limit=&search=&instructor=
func (h *AdminHandler) ListCourses(c *gin.Context) {
	var q model.ListCoursesQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	courses, pagination, err := h.adminService.ListCourses(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// DeleteCourse godoc
// DELETE /api/admin/courses/:id
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteCourse(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Course deleted successfully."})
}

// Logs godoc
// GET /api/admin/logs?limit=
func (h *AdminHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.adminService.Logs(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, logs)
}
