package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles user profile and trainer directory endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type upsertProfileRequest struct {
	Age          int                 `json:"age" binding:"required,gt=0"`
	Gender       string              `json:"gender" binding:"required"`
	HeightCm     float64             `json:"heightCm" binding:"required,gt=0"`
	WeightKg     float64             `json:"weightKg" binding:"required,gt=0"`
	FitnessLevel domain.FitnessLevel `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	Phone        string              `json:"phone"`
}

type imageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type imageConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// UpsertProfile handles PUT /users/profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	profile := &domain.UserProfile{
		Age:          req.Age,
		Gender:       req.Gender,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		FitnessLevel: req.FitnessLevel,
		Phone:        req.Phone,
	}

	saved, err := h.profileService.UpsertProfile(c.Request.Context(), accountID, profile)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetMyProfile handles GET /users/profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := h.profileService.GetMyProfile(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// RequestImageUpload handles POST /users/profile/image/upload-url
func (h *ProfileHandler) RequestImageUpload(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req imageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	ticket, err := h.profileService.RequestImageUploadURL(c.Request.Context(), accountID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImageType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ConfirmImageUpload handles POST /users/profile/image/confirm
func (h *ProfileHandler) ConfirmImageUpload(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req imageConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.profileService.ConfirmImageUpload(c.Request.Context(), accountID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image updated"})
}

// ListTrainers handles GET /users/trainers (directory of active trainers).
func (h *ProfileHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.profileService.ListActiveTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainers")
		return
	}
	c.JSON(http.StatusOK, trainers)
}
