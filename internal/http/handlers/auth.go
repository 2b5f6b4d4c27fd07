package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mlindqvist/minauth/internal/auth"
	"github.com/mlindqvist/minauth/internal/http/respond"
	"github.com/mlindqvist/minauth/internal/logging"
	"github.com/mlindqvist/minauth/internal/models"
	"github.com/mlindqvist/minauth/internal/models/dto"
	"github.com/mlindqvist/minauth/internal/storage"
)

// AuthHandler owns the register, login, and validate endpoints.
type AuthHandler struct {
	store  storage.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, hasher: hasher, tokens: tokens}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logging.FromRequest(r)

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	mail := strings.TrimSpace(req.Mail)
	if username == "" || password == "" || mail == "" {
		respond.Error(w, http.StatusBadRequest, "username, password and mail are required")
		return
	}

	passwordHash, err := h.hasher.Hash(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		respond.Error(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	user := models.User{
		Username:     username,
		Mail:         mail,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if _, err := h.store.CreateUser(r.Context(), user); err != nil {
		// A duplicate username is deliberately not distinguished from any
		// other store failure in the response; the detail stays in the log.
		log.Err(err).Str("username", username).Msg("user registration failed")
		respond.Error(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logging.FromRequest(r)

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Identical outcome to a wrong password so the response does
			// not reveal whether the username exists.
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Err(err).Msg("user lookup failed")
		respond.Error(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	match, err := h.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Msg("password comparison failed")
		respond.Error(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if !match {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Err(err).Msg("token issuance failed")
		respond.Error(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{Auth: true, Token: token})
}

// Validate handles GET /validate. It runs behind the auth middleware, so
// reaching this handler means verification already succeeded; it only
// echoes the authenticated identity back to the client.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Only reachable if the route is mounted without the middleware.
		respond.Error(w, http.StatusUnauthorized, "invalid token")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"username": claims.Username})
}
