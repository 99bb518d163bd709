package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler handles the gateway checkout endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createOrderRequest struct {
	PlanID string              `json:"planId" binding:"required"`
	Cycle  domain.BillingCycle `json:"cycle" binding:"required,oneof=monthly yearly"`
}

// verifyPaymentRequest mirrors the fields the checkout widget returns to
// the client on completion.
type verifyPaymentRequest struct {
	OrderID   string `json:"razorpayOrderId" binding:"required"`
	PaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature string `json:"razorpaySignature" binding:"required"`
}

// CreateOrder handles POST /users/payments/order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), userID, planID, req.Cycle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidBillingCycle):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create payment order")
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// VerifyPayment handles POST /users/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	payment, err := h.paymentService.VerifyPayment(c.Request.Context(), userID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPaymentNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrPaymentAlreadyFinal):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSignatureInvalid):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to verify payment")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListMyPayments handles GET /users/payments
func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	payments, err := h.paymentService.ListMyPayments(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// ListAllPayments handles GET /admin/payments
func (h *PaymentHandler) ListAllPayments(c *gin.Context) {
	payments, err := h.paymentService.ListAllPayments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}
