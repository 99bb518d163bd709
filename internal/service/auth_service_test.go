package service

import (
	"context"
	"testing"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(accounts *MockAccountRepository, trainers *MockTrainerProfileRepository) AuthService {
	return NewAuthService(accounts, trainers, "test-secret", time.Hour)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_User(t *testing.T) {
	accounts := new(MockAccountRepository)
	trainers := new(MockTrainerProfileRepository)
	svc := newTestAuthService(accounts, trainers)

	accountID := primitive.NewObjectID()
	accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
		return a.Email == "jo@example.com" && a.Role == domain.RoleUser && a.PasswordHash != "secret123"
	})).Return(accountID, nil)

	account, err := svc.Register(context.Background(), "Jo", "jo@example.com", "secret123", domain.RoleUser, nil)

	require.NoError(t, err)
	assert.Equal(t, accountID, account.ID)
	assert.Empty(t, account.PasswordHash, "hash must not leak out of the service")
	trainers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	accounts.AssertExpectations(t)
}

func TestRegister_TrainerCreatesProfile(t *testing.T) {
	accounts := new(MockAccountRepository)
	trainers := new(MockTrainerProfileRepository)
	svc := newTestAuthService(accounts, trainers)

	accountID := primitive.NewObjectID()
	accounts.On("Create", mock.Anything, mock.Anything).Return(accountID, nil)
	trainers.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.TrainerProfile) bool {
		return p.AccountID == accountID && p.Specialization == domain.SpecYoga
	})).Return(primitive.NewObjectID(), nil)

	_, err := svc.Register(context.Background(), "Sam", "sam@example.com", "secret123", domain.RoleTrainer, &TrainerRegistration{
		Phone:           "555-0101",
		Specialization:  domain.SpecYoga,
		ExperienceYears: 4,
	})

	require.NoError(t, err)
	trainers.AssertExpectations(t)
}

func TestRegister_TrainerWithoutDetails(t *testing.T) {
	svc := newTestAuthService(new(MockAccountRepository), new(MockTrainerProfileRepository))

	_, err := svc.Register(context.Background(), "Sam", "sam@example.com", "secret123", domain.RoleTrainer, nil)
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newTestAuthService(accounts, new(MockTrainerProfileRepository))

	accounts.On("Create", mock.Anything, mock.Anything).Return(primitive.NilObjectID, repository.ErrConflict)

	_, err := svc.Register(context.Background(), "Jo", "jo@example.com", "secret123", domain.RoleUser, nil)
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newTestAuthService(accounts, new(MockTrainerProfileRepository))

	accounts.On("GetByEmail", mock.Anything, "jo@example.com").Return(&domain.Account{
		ID:           primitive.NewObjectID(),
		Email:        "jo@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         domain.RoleUser,
	}, nil)

	token, account, err := svc.Login(context.Background(), "jo@example.com", "secret123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, account.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newTestAuthService(accounts, new(MockTrainerProfileRepository))

	accounts.On("GetByEmail", mock.Anything, "jo@example.com").Return(&domain.Account{
		ID:           primitive.NewObjectID(),
		Email:        "jo@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         domain.RoleUser,
	}, nil)

	_, _, err := svc.Login(context.Background(), "jo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLogin_UnknownEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newTestAuthService(accounts, new(MockTrainerProfileRepository))

	accounts.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAuthenticationFailed, "unknown email must be indistinguishable from a bad password")
}

func TestLogin_TrainerGate(t *testing.T) {
	cases := []struct {
		name    string
		status  domain.TrainerStatus
		wantErr error
	}{
		{"new trainer is pending review", domain.TrainerStatusNew, ErrTrainerPendingReview},
		{"inactive trainer is deactivated", domain.TrainerStatusInactive, ErrTrainerDeactivated},
		{"active trainer logs in", domain.TrainerStatusActive, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			accounts := new(MockAccountRepository)
			trainers := new(MockTrainerProfileRepository)
			svc := newTestAuthService(accounts, trainers)

			accountID := primitive.NewObjectID()
			accounts.On("GetByEmail", mock.Anything, "sam@example.com").Return(&domain.Account{
				ID:           accountID,
				Email:        "sam@example.com",
				PasswordHash: hashPassword(t, "secret123"),
				Role:         domain.RoleTrainer,
			}, nil)
			trainers.On("GetByAccountID", mock.Anything, accountID).Return(&domain.TrainerProfile{
				AccountID: accountID,
				Status:    tc.status,
			}, nil)

			token, _, err := svc.Login(context.Background(), "sam@example.com", "secret123")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}
