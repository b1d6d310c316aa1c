package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wizallet/wizallet-be/internal/auth"
	"github.com/wizallet/wizallet-be/internal/models"
	"github.com/wizallet/wizallet-be/internal/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service services.UserServiceProvider
	auth    *auth.Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{service: service, auth: authenticator}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	InitialBalance float64 `json:"initial_balance"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse is the body returned by both register and login.
type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register handles new user registration and returns the user with a fresh
// token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, models.NewValidationError("invalid request body"))
		return
	}

	user, err := h.service.Register(payload.Username, payload.Email, payload.Password, payload.InitialBalance)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

// Login handles user authentication and token generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, models.NewValidationError("invalid request body"))
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respondError(w, models.NewValidationError("username and password are required"))
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}
