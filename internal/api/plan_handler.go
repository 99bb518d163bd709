package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler handles the plan catalog endpoints. Reads are public; writes
// are admin only (enforced in routing).
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// planRequest requires every price and amenity flag explicitly. Pointers
// distinguish "false"/"0" from "omitted" so a partial payload is rejected
// instead of silently defaulting.
type planRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	MonthlyPrice *float64 `json:"monthlyPrice" binding:"required"`
	YearlyPrice  *float64 `json:"yearlyPrice" binding:"required"`

	HasCardio           *bool `json:"hasCardio" binding:"required"`
	HasSauna            *bool `json:"hasSauna" binding:"required"`
	HasPersonalTraining *bool `json:"hasPersonalTraining" binding:"required"`
	HasGroupClasses     *bool `json:"hasGroupClasses" binding:"required"`
	HasLocker           *bool `json:"hasLocker" binding:"required"`
	HasNutritionConsult *bool `json:"hasNutritionConsult" binding:"required"`
}

func (r *planRequest) toDomain() *domain.Plan {
	return &domain.Plan{
		Name:                r.Name,
		Description:         r.Description,
		MonthlyPrice:        *r.MonthlyPrice,
		YearlyPrice:         *r.YearlyPrice,
		HasCardio:           *r.HasCardio,
		HasSauna:            *r.HasSauna,
		HasPersonalTraining: *r.HasPersonalTraining,
		HasGroupClasses:     *r.HasGroupClasses,
		HasLocker:           *r.HasLocker,
		HasNutritionConsult: *r.HasNutritionConsult,
	}
}

// CreatePlan handles POST /admin/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidPricing):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlan handles GET /plans/:planId
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListPlans handles GET /plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// UpdatePlan handles PUT /admin/plans/:planId. Full replacement, with the
// same required-field rules as create.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	plan := req.toDomain()
	plan.ID = planID

	updated, err := h.planService.Update(c.Request.Context(), plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidPricing):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update plan")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePlan handles DELETE /admin/plans/:planId
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanInUse):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
