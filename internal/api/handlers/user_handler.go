package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/scribe-be/internal/auth"
	"github.com/isdelr/scribe-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration, login and profile.
type UserHandler struct {
	service      services.UserServiceProvider
	secureCookie bool
}

// NewUserHandler creates a new UserHandler. secureCookie marks the login
// cookie as HTTPS-only.
func NewUserHandler(service services.UserServiceProvider, secureCookie bool) *UserHandler {
	return &UserHandler{service: service, secureCookie: secureCookie}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken      string `json:"access_token"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	InitialPlacement bool   `json:"initial_placement"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	err := h.service.Register(r.Context(), payload.Username, payload.Email, payload.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "User created successfully")
	case errors.Is(err, services.ErrMissingField):
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, services.ErrInvalidField):
		writeMessage(w, http.StatusBadRequest, "Password is too long")
	case errors.Is(err, services.ErrAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "User already exists")
	default:
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeMessage(w, http.StatusInternalServerError, "Failed to register user")
	}
}

// Login handles user authentication and JWT generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	res, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to log in user")
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    res.Token,
		Expires:  res.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken:      res.Token,
		Username:         res.Username,
		Email:            res.Email,
		InitialPlacement: res.InitialPlacement,
	})
}

// Profile returns the public profile of the authenticated user.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r, h.service)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Warn().Str("user_id", userID).Msg("User from token not found in DB")
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load profile")
		writeMessage(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
