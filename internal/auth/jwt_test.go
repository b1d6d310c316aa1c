package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizallet/wizallet-be/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	a := New("test-secret")
	user := models.User{ID: 42, Username: "alice"}

	tokenStr, err := a.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := a.ValidateToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID, "every token should carry a unique jti")
	assert.WithinDuration(t, time.Now().Add(TokenValidity), claims.ExpiresAt.Time, time.Minute)
}

func TestExpiredTokenRejected(t *testing.T) {
	a := New("test-secret")
	claims := &Claims{
		UserID:   1,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = a.ValidateToken(tokenStr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "expiry must be distinguishable: %v", err)
}

func TestTamperedSignatureRejected(t *testing.T) {
	issuer := New("test-secret")
	verifier := New("a-different-secret")

	tokenStr, err := issuer.GenerateToken(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenStr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid), "expected signature error, got: %v", err)
	assert.False(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestMiddleware(t *testing.T) {
	a := New("test-secret")

	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	})
	protected := a.Middleware()(next)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token missing")
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &Claims{
			UserID:   7,
			Username: "bob",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token expired")
	})

	t.Run("valid token binds identity", func(t *testing.T) {
		tokenStr, err := a.GenerateToken(models.User{ID: 7, Username: "bob"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, Identity{ID: 7, Username: "bob"}, seen)
	})
}
