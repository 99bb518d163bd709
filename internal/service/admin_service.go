package service

import (
	"context"
	"errors"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrInvalidTrainerStatus    = errors.New("invalid trainer status")
	ErrInvalidStatusTransition = errors.New("invalid trainer status transition")
)

// AdminUserRow is the denormalized row the admin user listing renders.
// Accounts that never completed onboarding (no profile) are excluded.
type AdminUserRow struct {
	AccountID    string              `json:"accountId"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Age          int                 `json:"age"`
	FitnessLevel domain.FitnessLevel `json:"fitnessLevel"`
	GoalCount    int                 `json:"goalCount"`
	PlanName     string              `json:"planName,omitempty"`
	SubscribedTo *time.Time          `json:"subscribedUntil,omitempty"`
}

// TrainerRow joins a trainer profile with its account identity.
type TrainerRow struct {
	domain.TrainerProfile
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DashboardStats are the admin landing-page counters.
type DashboardStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveTrainers     int64 `json:"activeTrainers"`
	PendingTrainers    int64 `json:"pendingTrainers"`
	TotalPlans         int64 `json:"totalPlans"`
	ValidSubscriptions int   `json:"validSubscriptions"`
	PendingAssignments int64 `json:"pendingAssignments"`
}

// AdminService provides read-only aggregation across the stores plus the
// trainer directory moderation actions.
type AdminService interface {
	ListUsers(ctx context.Context) ([]AdminUserRow, error)
	ListTrainers(ctx context.Context, status domain.TrainerStatus) ([]TrainerRow, error)
	SetTrainerStatus(ctx context.Context, trainerID primitive.ObjectID, status domain.TrainerStatus) (*domain.TrainerProfile, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

// adminService implements the AdminService interface.
type adminService struct {
	accountRepo    repository.AccountRepository
	profileRepo    repository.UserProfileRepository
	trainerRepo    repository.TrainerProfileRepository
	goalRepo       repository.GoalRepository
	subRepo        repository.SubscriptionRepository
	planRepo       repository.PlanRepository
	assignmentRepo repository.AssignmentRepository
	now            func() time.Time
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	accountRepo repository.AccountRepository,
	profileRepo repository.UserProfileRepository,
	trainerRepo repository.TrainerProfileRepository,
	goalRepo repository.GoalRepository,
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	assignmentRepo repository.AssignmentRepository,
) AdminService {
	return &adminService{
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		trainerRepo:    trainerRepo,
		goalRepo:       goalRepo,
		subRepo:        subRepo,
		planRepo:       planRepo,
		assignmentRepo: assignmentRepo,
		now:            time.Now,
	}
}

// ListUsers fans out the four independent reads, builds maps keyed by
// account id and merges them into denormalized rows. Accounts without a
// profile are filtered out entirely: an account that registered but never
// completed onboarding is invisible to admin user management.
func (s *adminService) ListUsers(ctx context.Context) ([]AdminUserRow, error) {
	var (
		accounts []domain.Account
		profiles []domain.UserProfile
		goals    []domain.Goal
		subs     []domain.Subscription
		plans    []domain.Plan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		accounts, err = s.accountRepo.ListByRole(gctx, domain.RoleUser)
		return
	})
	g.Go(func() (err error) {
		profiles, err = s.profileRepo.ListAll(gctx)
		return
	})
	g.Go(func() (err error) {
		goals, err = s.goalRepo.ListAll(gctx)
		return
	})
	g.Go(func() (err error) {
		subs, err = s.subRepo.ListByStatus(gctx, domain.SubscriptionActive)
		return
	})
	g.Go(func() (err error) {
		plans, err = s.planRepo.List(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profileByAccount := make(map[primitive.ObjectID]domain.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByAccount[p.AccountID] = p
	}
	goalCount := make(map[primitive.ObjectID]int)
	for _, goal := range goals {
		goalCount[goal.UserID]++
	}
	planByID := make(map[primitive.ObjectID]domain.Plan, len(plans))
	for _, p := range plans {
		planByID[p.ID] = p
	}

	now := s.now()
	validSubByUser := make(map[primitive.ObjectID]domain.Subscription)
	for _, sub := range subs {
		// Status alone is not validity; the window is re-derived here.
		if sub.IsValid(now) {
			validSubByUser[sub.UserID] = sub
		}
	}

	rows := make([]AdminUserRow, 0, len(accounts))
	for _, account := range accounts {
		profile, ok := profileByAccount[account.ID]
		if !ok {
			continue
		}

		row := AdminUserRow{
			AccountID:    account.ID.Hex(),
			Name:         account.Name,
			Email:        account.Email,
			Age:          profile.Age,
			FitnessLevel: profile.FitnessLevel,
			GoalCount:    goalCount[account.ID],
		}
		if sub, ok := validSubByUser[account.ID]; ok {
			if plan, ok := planByID[sub.PlanID]; ok {
				row.PlanName = plan.Name
			}
			end := sub.EndDate
			row.SubscribedTo = &end
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListTrainers retrieves trainer profiles (optionally by status) joined
// with their account identity.
func (s *adminService) ListTrainers(ctx context.Context, status domain.TrainerStatus) ([]TrainerRow, error) {
	profiles, err := s.trainerRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	rows := make([]TrainerRow, 0, len(profiles))
	for _, profile := range profiles {
		row := TrainerRow{TrainerProfile: profile}
		if account, aerr := s.accountRepo.GetByID(ctx, profile.AccountID); aerr == nil {
			row.Name = account.Name
			row.Email = account.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SetTrainerStatus moves a trainer between activation states. Allowed:
// new|inactive -> active, active -> inactive.
func (s *adminService) SetTrainerStatus(ctx context.Context, trainerID primitive.ObjectID, status domain.TrainerStatus) (*domain.TrainerProfile, error) {
	if status != domain.TrainerStatusActive && status != domain.TrainerStatusInactive {
		return nil, ErrInvalidTrainerStatus
	}

	profile, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	valid := (status == domain.TrainerStatusActive && profile.Status != domain.TrainerStatusActive) ||
		(status == domain.TrainerStatusInactive && profile.Status == domain.TrainerStatusActive)
	if !valid {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.trainerRepo.UpdateStatus(ctx, trainerID, status); err != nil {
		return nil, err
	}
	profile.Status = status
	return profile, nil
}

// Dashboard fans out the counter queries for the admin landing page.
func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var activeSubs []domain.Subscription

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.accountRepo.CountByRole(gctx, domain.RoleUser)
		return
	})
	g.Go(func() (err error) {
		stats.ActiveTrainers, err = s.trainerRepo.CountByStatus(gctx, domain.TrainerStatusActive)
		return
	})
	g.Go(func() (err error) {
		stats.PendingTrainers, err = s.trainerRepo.CountByStatus(gctx, domain.TrainerStatusNew)
		return
	})
	g.Go(func() (err error) {
		stats.TotalPlans, err = s.planRepo.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		activeSubs, err = s.subRepo.ListByStatus(gctx, domain.SubscriptionActive)
		return
	})
	g.Go(func() (err error) {
		stats.PendingAssignments, err = s.assignmentRepo.CountByStatus(gctx, domain.AssignmentPending)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	for _, sub := range activeSubs {
		if sub.IsValid(now) {
			stats.ValidSubscriptions++
		}
	}
	return stats, nil
}
