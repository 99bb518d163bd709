package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *mockAccountRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.AccountRepository = (*mockAccountRepo)(nil)

func signToken(t *testing.T, accountID primitive.ObjectID, role domain.Role, ttl time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: accountID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// protectedRouter builds a router with one authenticated route that echoes
// the context the middleware set.
func protectedRouter(accounts repository.AccountRepository, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := gin.HandlersChain{AuthMiddleware(testSecret, accounts)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := getAccountIDFromContext(c)
		role, _ := getRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"accountId": id.Hex(), "role": role})
	})
	router.GET("/guarded", handlers...)
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter(new(mockAccountRepo))

	rec := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter(new(mockAccountRepo))

	rec := doGet(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := protectedRouter(new(mockAccountRepo))

	token := signToken(t, primitive.NewObjectID(), domain.RoleUser, -time.Hour)
	rec := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	accounts := new(mockAccountRepo)
	accountID := primitive.NewObjectID()
	accounts.On("GetByID", mock.Anything, accountID).Return(&domain.Account{
		ID:   accountID,
		Role: domain.RoleUser,
	}, nil)
	router := protectedRouter(accounts)

	token := signToken(t, accountID, domain.RoleUser, time.Hour)
	rec := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), accountID.Hex())
}

func TestAuthMiddleware_DeletedAccount(t *testing.T) {
	accounts := new(mockAccountRepo)
	accountID := primitive.NewObjectID()
	accounts.On("GetByID", mock.Anything, accountID).Return(nil, repository.ErrNotFound)
	router := protectedRouter(accounts)

	token := signToken(t, accountID, domain.RoleUser, time.Hour)
	rec := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusNotFound, rec.Code, "token for a deleted account must not pass")
}

func TestRoleMiddleware_Forbidden(t *testing.T) {
	accounts := new(mockAccountRepo)
	accountID := primitive.NewObjectID()
	accounts.On("GetByID", mock.Anything, accountID).Return(&domain.Account{
		ID:   accountID,
		Role: domain.RoleUser,
	}, nil)
	router := protectedRouter(accounts, domain.RoleAdmin)

	token := signToken(t, accountID, domain.RoleUser, time.Hour)
	rec := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleMiddleware_RoleFromStore_NotToken(t *testing.T) {
	// The role check must trust the loaded account, not the token claim:
	// a stale token minted before a role change carries the old role.
	accounts := new(mockAccountRepo)
	accountID := primitive.NewObjectID()
	accounts.On("GetByID", mock.Anything, accountID).Return(&domain.Account{
		ID:   accountID,
		Role: domain.RoleAdmin,
	}, nil)
	router := protectedRouter(accounts, domain.RoleAdmin)

	token := signToken(t, accountID, domain.RoleUser, time.Hour)
	rec := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}
