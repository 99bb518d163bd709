package service

import (
	"context"
	"errors"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileIncomplete     = errors.New("complete your profile before requesting a trainer")
	ErrTrainerNotFound       = errors.New("trainer not found")
	ErrTrainerNotActive      = errors.New("trainer is not currently active")
	ErrGoalNotFound          = errors.New("goal not found")
	ErrAssignmentExists      = errors.New("an active or approved assignment already exists")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrAssignmentDecided     = errors.New("assignment has already been decided")
	ErrAssignmentNotApproved = errors.New("assignment is not in approved state")
	ErrNoApprovedTrainer     = errors.New("no approved trainer assignment found")
	ErrInvalidDecision       = errors.New("decision must be approve or reject")
)

// Decision is a trainer's verdict on a pending assignment.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// AssignmentRow is the flattened DTO the trainer inbox renders: one row per
// assignment joined with user, profile, plan and goal snapshots. The client
// branches on Status for display.
type AssignmentRow struct {
	ID        string                  `json:"id"`
	Status    domain.AssignmentStatus `json:"status"`
	TimeSlot  string                  `json:"timeSlot"`
	CreatedAt time.Time               `json:"createdAt"`

	UserID       string              `json:"userId"`
	UserName     string              `json:"userName"`
	UserEmail    string              `json:"userEmail"`
	UserAge      int                 `json:"userAge,omitempty"`
	FitnessLevel domain.FitnessLevel `json:"fitnessLevel,omitempty"`

	PlanName string          `json:"planName,omitempty"`
	GoalType domain.GoalType `json:"goalType,omitempty"`
}

// ApprovedTrainerView is what a user's dashboard shows once a trainer
// accepted their request.
type ApprovedTrainerView struct {
	AssignmentID   string                  `json:"assignmentId"`
	Status         domain.AssignmentStatus `json:"status"`
	TimeSlot       string                  `json:"timeSlot"`
	TrainerID      string                  `json:"trainerId"`
	TrainerName    string                  `json:"trainerName"`
	Specialization domain.Specialization   `json:"specialization"`
	Experience     int                     `json:"experienceYears"`
	Phone          string                  `json:"phone"`
}

// AssignmentService implements the trainer-assignment state machine:
// pending -> approved | rejected, approved -> completed.
type AssignmentService interface {
	// AssignTrainer creates a pending assignment. Preconditions: the user
	// completed their profile, the trainer exists and is active, and the
	// goal and plan exist. A user holding a pending or approved assignment
	// cannot create another.
	AssignTrainer(ctx context.Context, userID, trainerID, planID, goalID primitive.ObjectID, timeSlot string) (*domain.TrainerAssignment, error)

	// ListForTrainer returns every assignment addressed to the calling
	// trainer, regardless of status, as flattened rows.
	ListForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]AssignmentRow, error)

	// ListPendingForTrainer is the detail variant filtered to pending only.
	ListPendingForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]AssignmentRow, error)

	// Decide approves or rejects a pending assignment, exactly once.
	Decide(ctx context.Context, assignmentID, trainerAccountID primitive.ObjectID, decision Decision) (*domain.TrainerAssignment, error)

	// Complete moves an approved assignment to completed.
	Complete(ctx context.Context, assignmentID, trainerAccountID primitive.ObjectID) (*domain.TrainerAssignment, error)

	// GetApprovedTrainerForUser returns the user's matched trainer, or
	// ErrNoApprovedTrainer while no assignment is approved.
	GetApprovedTrainerForUser(ctx context.Context, userID primitive.ObjectID) (*ApprovedTrainerView, error)
}

// assignmentService implements the AssignmentService interface.
type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	accountRepo    repository.AccountRepository
	profileRepo    repository.UserProfileRepository
	trainerRepo    repository.TrainerProfileRepository
	planRepo       repository.PlanRepository
	goalRepo       repository.GoalRepository
	now            func() time.Time
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	accountRepo repository.AccountRepository,
	profileRepo repository.UserProfileRepository,
	trainerRepo repository.TrainerProfileRepository,
	planRepo repository.PlanRepository,
	goalRepo repository.GoalRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		trainerRepo:    trainerRepo,
		planRepo:       planRepo,
		goalRepo:       goalRepo,
		now:            time.Now,
	}
}

// AssignTrainer creates a pending assignment after checking preconditions.
func (s *assignmentService) AssignTrainer(ctx context.Context, userID, trainerID, planID, goalID primitive.ObjectID, timeSlot string) (*domain.TrainerAssignment, error) {
	if userID == primitive.NilObjectID || trainerID == primitive.NilObjectID ||
		planID == primitive.NilObjectID || goalID == primitive.NilObjectID {
		return nil, errors.New("user, trainer, plan, and goal IDs are required")
	}
	if timeSlot == "" {
		return nil, errors.New("time slot is required")
	}

	// "Complete your profile first" precondition.
	if _, err := s.profileRepo.GetByAccountID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileIncomplete
		}
		return nil, err
	}

	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if trainer.Status != domain.TrainerStatusActive {
		return nil, ErrTrainerNotActive
	}

	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}

	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	assignment := &domain.TrainerAssignment{
		UserID:    userID,
		TrainerID: trainerID,
		PlanID:    planID,
		GoalID:    goalID,
		TimeSlot:  timeSlot,
	}

	// The partial unique index rejects a second pending/approved assignment
	// even when two requests race past this point together.
	id, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAssignmentExists
		}
		return nil, err
	}
	assignment.ID = id
	return assignment, nil
}

// ListForTrainer returns every assignment row for the calling trainer.
func (s *assignmentService) ListForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]AssignmentRow, error) {
	trainer, err := s.resolveTrainerAccount(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByTrainerID(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	return s.buildRows(ctx, assignments)
}

// ListPendingForTrainer returns only the rows still awaiting a decision.
func (s *assignmentService) ListPendingForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]AssignmentRow, error) {
	trainer, err := s.resolveTrainerAccount(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByTrainerIDAndStatus(ctx, trainer.ID, domain.AssignmentPending)
	if err != nil {
		return nil, err
	}
	return s.buildRows(ctx, assignments)
}

// resolveTrainerAccount maps the authenticated trainer account onto its
// TrainerProfile, which is what assignments are keyed by.
func (s *assignmentService) resolveTrainerAccount(ctx context.Context, trainerAccountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	trainer, err := s.trainerRepo.GetByAccountID(ctx, trainerAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// buildRows joins assignments with user, profile, plan and goal data into
// flattened DTOs. Missing joins degrade to blank fields rather than errors;
// the assignment row itself is the primary record.
func (s *assignmentService) buildRows(ctx context.Context, assignments []domain.TrainerAssignment) ([]AssignmentRow, error) {
	rows := make([]AssignmentRow, 0, len(assignments))
	for _, a := range assignments {
		row := AssignmentRow{
			ID:        a.ID.Hex(),
			Status:    a.Status,
			TimeSlot:  a.TimeSlot,
			CreatedAt: a.CreatedAt,
			UserID:    a.UserID.Hex(),
		}

		if account, err := s.accountRepo.GetByID(ctx, a.UserID); err == nil {
			row.UserName = account.Name
			row.UserEmail = account.Email
		}
		if profile, err := s.profileRepo.GetByAccountID(ctx, a.UserID); err == nil {
			row.UserAge = profile.Age
			row.FitnessLevel = profile.FitnessLevel
		}
		if plan, err := s.planRepo.GetByID(ctx, a.PlanID); err == nil {
			row.PlanName = plan.Name
		}
		if goal, err := s.goalRepo.GetByID(ctx, a.GoalID); err == nil {
			row.GoalType = goal.GoalType
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// Decide approves or rejects a pending assignment. The repository's atomic
// compare-and-set guarantees a decision lands exactly once.
func (s *assignmentService) Decide(ctx context.Context, assignmentID, trainerAccountID primitive.ObjectID, decision Decision) (*domain.TrainerAssignment, error) {
	var to domain.AssignmentStatus
	switch decision {
	case DecisionApprove:
		to = domain.AssignmentApproved
	case DecisionReject:
		to = domain.AssignmentRejected
	default:
		return nil, ErrInvalidDecision
	}

	trainer, err := s.resolveTrainerAccount(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}

	updated, err := s.assignmentRepo.Transition(ctx, assignmentID, trainer.ID, domain.AssignmentPending, to, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAssignmentNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAssignmentDecided
		}
		return nil, err
	}
	return updated, nil
}

// Complete moves an approved assignment to completed, freeing the user to
// request a new trainer.
func (s *assignmentService) Complete(ctx context.Context, assignmentID, trainerAccountID primitive.ObjectID) (*domain.TrainerAssignment, error) {
	trainer, err := s.resolveTrainerAccount(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	updated, err := s.assignmentRepo.Transition(ctx, assignmentID, trainer.ID, domain.AssignmentApproved, domain.AssignmentCompleted, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAssignmentNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAssignmentNotApproved
		}
		return nil, err
	}
	return updated, nil
}

// GetApprovedTrainerForUser returns the matched trainer's denormalized data.
func (s *assignmentService) GetApprovedTrainerForUser(ctx context.Context, userID primitive.ObjectID) (*ApprovedTrainerView, error) {
	assignment, err := s.assignmentRepo.GetByUserIDAndStatus(ctx, userID, domain.AssignmentApproved)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoApprovedTrainer
		}
		return nil, err
	}

	trainer, err := s.trainerRepo.GetByID(ctx, assignment.TrainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	view := &ApprovedTrainerView{
		AssignmentID:   assignment.ID.Hex(),
		Status:         assignment.Status,
		TimeSlot:       assignment.TimeSlot,
		TrainerID:      trainer.ID.Hex(),
		Specialization: trainer.Specialization,
		Experience:     trainer.ExperienceYears,
		Phone:          trainer.Phone,
	}
	if account, aerr := s.accountRepo.GetByID(ctx, trainer.AccountID); aerr == nil {
		view.TrainerName = account.Name
	}
	return view, nil
}
