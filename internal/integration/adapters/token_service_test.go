package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	t.Run("round trips an access token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "ana@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := NewTokenService("other-secret").GenerateAccessToken(userID, "", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
	})

	t.Run("reports expiry separately", func(t *testing.T) {
		past := &tokenService{
			secret: []byte("test-secret"),
			now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
		}
		token, err := past.GenerateAccessToken(userID, "", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		assert.True(t, errors.Is(err, domainerror.ErrExpiredToken))
	})

	t.Run("rejects tokens of another type", func(t *testing.T) {
		claims := CustomClaims{
			UserID:    userID.String(),
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(ctx, "not-a-jwt")
		assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
	})
}
