package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler handles the admin aggregation and moderation endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type trainerStatusRequest struct {
	Status domain.TrainerStatus `json:"status" binding:"required,oneof=active inactive"`
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListTrainers handles GET /admin/trainers with an optional status query.
func (h *AdminHandler) ListTrainers(c *gin.Context) {
	status := domain.TrainerStatus(c.Query("status"))
	if status != "" && status != domain.TrainerStatusNew && status != domain.TrainerStatusActive && status != domain.TrainerStatusInactive {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer status filter")
		return
	}

	rows, err := h.adminService.ListTrainers(c.Request.Context(), status)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SetTrainerStatus handles PATCH /admin/trainers/:trainerId/status. It
// approves a new trainer or toggles activation of an existing one.
func (h *AdminHandler) SetTrainerStatus(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("trainerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	var req trainerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	trainer, err := h.adminService.SetTrainerStatus(c.Request.Context(), trainerID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTrainerStatus), errors.Is(err, service.ErrInvalidStatusTransition):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer status")
		}
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
