package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tripfolio/backend/internal/api/middleware"
	"github.com/tripfolio/backend/internal/application/services"
	"github.com/tripfolio/backend/internal/domain/entities"
)

// ProfileService is the slice of the user service the profile handler needs.
type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*entities.UserDetail, error)
	Update(ctx context.Context, username, actor string, isAdmin bool, input services.UpdateUserInput) (*entities.User, error)
	Delete(ctx context.Context, username, actor string, isAdmin bool) error
}

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService ProfileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService ProfileService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser handles GET /api/users/{username}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// UpdateUser handles PATCH /api/users/{username}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), username, identity.Username, identity.IsAdmin, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/{username}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.userService.Delete(r.Context(), username, identity.Username, identity.IsAdmin); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
