package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionHandler handles the user subscription endpoints.
type SubscriptionHandler struct {
	subService service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

type createSubscriptionRequest struct {
	PlanID string              `json:"planId" binding:"required"`
	Cycle  domain.BillingCycle `json:"cycle" binding:"required,oneof=monthly yearly"`
}

// CreateSubscription handles POST /users/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	sub, err := h.subService.Create(c.Request.Context(), userID, planID, req.Cycle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSubscriptionExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidBillingCycle):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create subscription")
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// GetMySubscription handles GET /users/subscriptions/me
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := h.subService.GetMySubscription(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load subscription")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// CancelSubscription handles POST /users/subscriptions/cancel
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.subService.Cancel(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel subscription")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
