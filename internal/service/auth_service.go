package service

import (
	"context"
	"errors"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAccountAlreadyExists = errors.New("account with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrTrainerPendingReview = errors.New("trainer account is under admin review")
	ErrTrainerDeactivated   = errors.New("trainer account has been deactivated")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// TrainerRegistration carries the profile fields required when the
// registering account has role trainer.
type TrainerRegistration struct {
	Phone           string
	Specialization  domain.Specialization
	ExperienceYears int
	Bio             string
}

// AuthService handles registration, login and token issuance.
type AuthService interface {
	// Register creates an account. For role trainer, trainerInfo must be
	// provided; the linked profile starts in status "new".
	Register(ctx context.Context, name, email, password string, role domain.Role, trainerInfo *TrainerRegistration) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	accountRepo   repository.AccountRepository
	trainerRepo   repository.TrainerProfileRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accountRepo repository.AccountRepository, trainerRepo repository.TrainerProfileRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		accountRepo:   accountRepo,
		trainerRepo:   trainerRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new account registration.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role, trainerInfo *TrainerRegistration) (*domain.Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}
	if !domain.ValidRole(role) {
		return nil, errors.New("invalid role")
	}
	if role == domain.RoleTrainer && trainerInfo == nil {
		return nil, errors.New("trainer registration requires profile details")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	// The unique email index is the source of truth for duplicates; no
	// read-then-write check that a concurrent register could slip past.
	accountID, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAccountAlreadyExists
		}
		return nil, err
	}
	account.ID = accountID

	if role == domain.RoleTrainer {
		profile := &domain.TrainerProfile{
			AccountID:       accountID,
			Phone:           trainerInfo.Phone,
			Specialization:  trainerInfo.Specialization,
			ExperienceYears: trainerInfo.ExperienceYears,
			Bio:             trainerInfo.Bio,
		}
		if _, err := s.trainerRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	account.PasswordHash = ""
	return account, nil
}

// Login handles authentication and JWT generation. Trainers are gated on
// their profile's activation status with distinct errors for "new" vs
// "inactive" so the client can render the right message.
func (s *authService) Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	account, err = s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	if account.Role == domain.RoleTrainer {
		profile, perr := s.trainerRepo.GetByAccountID(ctx, account.ID)
		if perr != nil {
			return "", nil, perr
		}
		switch profile.Status {
		case domain.TrainerStatusActive:
			// Cleared to log in.
		case domain.TrainerStatusNew:
			return "", nil, ErrTrainerPendingReview
		default:
			return "", nil, ErrTrainerDeactivated
		}
	}

	token, err = s.generateJWT(account)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	account.PasswordHash = ""
	return token, account, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given account.
func (s *authService) generateJWT(account *domain.Account) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: account.ID.Hex(),
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitsphere",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
