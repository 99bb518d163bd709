package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// trainerDetailsRequest carries the extra fields a trainer registration
// must supply.
type trainerDetailsRequest struct {
	Phone           string                `json:"phone" binding:"required"`
	Specialization  domain.Specialization `json:"specialization" binding:"required"`
	ExperienceYears *int                  `json:"experienceYears" binding:"required,min=0"`
	Bio             string                `json:"bio"`
}

type registerRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required"`

	// Required iff role == "trainer".
	TrainerDetails *trainerDetailsRequest `json:"trainerDetails,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if !domain.ValidRole(req.Role) || req.Role == domain.RoleAdmin {
		abortWithError(c, http.StatusBadRequest, "Role must be 'user' or 'trainer'")
		return
	}

	var trainerInfo *service.TrainerRegistration
	if req.Role == domain.RoleTrainer {
		if req.TrainerDetails == nil {
			abortWithError(c, http.StatusBadRequest, "trainerDetails is required for trainer registration")
			return
		}
		if !domain.ValidSpecialization(req.TrainerDetails.Specialization) {
			abortWithError(c, http.StatusBadRequest, "Invalid specialization")
			return
		}
		trainerInfo = &service.TrainerRegistration{
			Phone:           req.TrainerDetails.Phone,
			Specialization:  req.TrainerDetails.Specialization,
			ExperienceYears: *req.TrainerDetails.ExperienceYears,
			Bio:             req.TrainerDetails.Bio,
		}
	}

	account, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, trainerInfo)
	if err != nil {
		if errors.Is(err, service.ErrAccountAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to register account")
		}
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrTrainerPendingReview), errors.Is(err, service.ErrTrainerDeactivated):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, Account: account})
}
