package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextAccountIDKey = "accountID"
	ContextRoleKey      = "accountRole"
)

// jwtClaims mirrors the payload structure authService.generateJWT signs.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication. Beyond
// validating the token it reloads the account, so a token for an account
// deleted after issuance is rejected with 404.
func AuthMiddleware(jwtSecret string, accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if !token.Valid || claims.UserID == "" || !domain.ValidRole(claims.Role) {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		accountID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid account ID in token")
			return
		}

		// Tokens can outlive their account.
		account, err := accounts.GetByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortWithError(c, http.StatusNotFound, "Account no longer exists")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to load account")
			}
			return
		}

		c.Set(ContextAccountIDKey, account.ID)
		c.Set(ContextRoleKey, account.Role)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RoleMiddleware creates middleware to check if the caller has one of the
// required roles. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(ContextRoleKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "Account role not found in context")
			return
		}

		role, ok := roleRaw.(domain.Role)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Invalid account role type in context")
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role '%s' does not have permission", role))
	}
}

// Helper to get the authenticated account ID from context (used by handlers).
func getAccountIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextAccountIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("account ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid account ID type in context")
	}
	return id, nil
}

// Helper to get the authenticated role from context (used by handlers).
func getRoleFromContext(c *gin.Context) (domain.Role, error) {
	roleRaw, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", errors.New("account role not found in context")
	}
	role, ok := roleRaw.(domain.Role)
	if !ok {
		return "", errors.New("invalid account role type in context")
	}
	return role, nil
}
