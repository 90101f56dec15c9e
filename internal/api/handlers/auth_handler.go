package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tripfolio/backend/internal/application/services"
	"github.com/tripfolio/backend/internal/domain/entities"
)

// AuthService is the slice of the user service the auth handler needs.
type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
}

// AuthHandler handles registration and login. Token issuance happens at the
// gateway; this layer only verifies credentials and returns the account.
type AuthHandler struct {
	userService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService AuthService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
