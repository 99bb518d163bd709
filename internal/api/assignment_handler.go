package api

import (
	"errors"
	"net/http"

	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentHandler handles the trainer-assignment workflow endpoints for
// both sides of it: users request, trainers decide.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type assignTrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	PlanID    string `json:"planId" binding:"required"`
	GoalID    string `json:"goalId" binding:"required"`
	TimeSlot  string `json:"timeSlot" binding:"required"`
}

type decisionRequest struct {
	Decision service.Decision `json:"decision" binding:"required,oneof=approve reject"`
}

// AssignTrainer handles POST /users/assignments
func (h *AssignmentHandler) AssignTrainer(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req assignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}
	goalID, err := primitive.ObjectIDFromHex(req.GoalID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	assignment, err := h.assignmentService.AssignTrainer(c.Request.Context(), userID, trainerID, planID, goalID, req.TimeSlot)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileIncomplete), errors.Is(err, service.ErrTrainerNotActive):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrGoalNotFound), errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to request trainer")
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetMyTrainer handles GET /users/assignments/trainer
func (h *AssignmentHandler) GetMyTrainer(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := h.assignmentService.GetApprovedTrainerForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoApprovedTrainer) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load trainer")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListAssignments handles GET /trainers/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows, err := h.assignmentService.ListForTrainer(c.Request.Context(), trainerAccountID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list assignments")
		}
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ListPendingAssignments handles GET /trainers/assignments/pending
func (h *AssignmentHandler) ListPendingAssignments(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows, err := h.assignmentService.ListPendingForTrainer(c.Request.Context(), trainerAccountID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list pending assignments")
		}
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DecideAssignment handles POST /trainers/assignments/:assignmentId/decision
func (h *AssignmentHandler) DecideAssignment(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(c.Param("assignmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	assignment, err := h.assignmentService.Decide(c.Request.Context(), assignmentID, trainerAccountID, req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAssignmentNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentDecided):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to decide assignment")
		}
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// CompleteAssignment handles POST /trainers/assignments/:assignmentId/complete
func (h *AssignmentHandler) CompleteAssignment(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(c.Param("assignmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	assignment, err := h.assignmentService.Complete(c.Request.Context(), assignmentID, trainerAccountID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentNotApproved):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to complete assignment")
		}
		return
	}

	c.JSON(http.StatusOK, assignment)
}
