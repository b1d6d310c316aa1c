package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wizallet/wizallet-be/internal/models"
)

// TokenValidity is how long an issued token stays valid. Tokens are never
// renewed server-side; expiry forces a fresh login.
const TokenValidity = 2 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is the verified caller, decoded from the bearer token and threaded
// through the request context as an explicit value.
type Identity struct {
	ID       int64
	Username string
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the verified caller.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the verified caller bound by the middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Authenticator mints and verifies bearer tokens with a server-held secret.
type Authenticator struct {
	secret []byte
}

// New creates an Authenticator signing with the given secret.
func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// GenerateToken creates a new signed token for a given user.
func (a *Authenticator) GenerateToken(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken parses and validates a token string, checking signature and
// expiry.
func (a *Authenticator) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Middleware creates a middleware for protecting routes. On success the
// decoded identity is bound to the request context; the credential store is
// not consulted again for the rest of the request.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The token is the second whitespace-delimited segment of the
			// Authorization header ("Bearer <token>").
			var tokenStr string
			if parts := strings.Fields(r.Header.Get("Authorization")); len(parts) == 2 {
				tokenStr = parts[1]
			}
			if tokenStr == "" {
				writeError(w, models.NewAuthenticationError("token missing"))
				return
			}

			claims, err := a.ValidateToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeError(w, models.NewAuthenticationError("token expired, please log in again"))
					return
				}
				writeError(w, models.NewInvalidTokenError())
				return
			}

			ctx := WithIdentity(r.Context(), Identity{ID: claims.UserID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, apiErr *models.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
