// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAuthError(c, http.StatusUnauthorized, domainerror.NewAuthError(
				domainerror.ErrCodeMissingToken,
				"Authorization header is required",
				domainerror.ErrMissingToken,
			))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithAuthError(c, http.StatusUnauthorized, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidToken,
				"Invalid authorization header format",
				domainerror.ErrInvalidToken,
			))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortWithAuthError(c, http.StatusUnauthorized, domainerror.NewAuthError(
				domainerror.ErrCodeMissingToken,
				"Token is required",
				domainerror.ErrMissingToken,
			))
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			abortWithAuthError(c, http.StatusUnauthorized, domainerror.NewAuthError(code, "Invalid or expired token", err))
			return
		}

		// Store user info in context
		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// abortWithAuthError writes the error body and stops the handler chain.
func abortWithAuthError(c *gin.Context, status int, err *domainerror.AuthError) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: err.Message,
		Code:  string(err.Code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

