package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/tripfolio/backend/internal/api/middleware"
	"github.com/tripfolio/backend/internal/application/services"
	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/repositories"
)

// ItineraryService is the slice of the itinerary service the handler needs.
type ItineraryService interface {
	GetDetail(ctx context.Context, id int64) (*entities.ItineraryDetail, error)
	List(ctx context.Context, filter repositories.ItineraryFilter) ([]entities.ItinerarySummary, error)
	Create(ctx context.Context, owner string, input services.CreateItineraryInput) (*entities.ItineraryDetail, error)
	Update(ctx context.Context, id int64, actor string, isAdmin bool, input services.UpdateItineraryInput) (*entities.Itinerary, error)
	Delete(ctx context.Context, id int64, actor string, isAdmin bool) error
}

// LikeService toggles likes for the authenticated caller.
type LikeService interface {
	ToggleLike(ctx context.Context, username string, itineraryID int64) (bool, error)
}

// ItineraryHandler handles itinerary catalog HTTP requests
type ItineraryHandler struct {
	itineraryService ItineraryService
	likeService      LikeService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService ItineraryService, likeService LikeService) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		likeService:      likeService,
	}
}

// ListItineraries handles GET /api/itineraries
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.ItineraryFilter{
		Title:   query.Get("title"),
		Country: query.Get("country"),
	}
	if raw := query.Get("duration"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "duration must be a number")
			return
		}
		filter.DurationDays = &days
	}
	if raw := query.Get("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}

	summaries, err := h.itineraryService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"itineraries": summaries,
		"count":       len(summaries),
	})
}

// GetItinerary handles GET /api/itineraries/{id}
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	detail, err := h.itineraryService.GetDetail(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// CreateItinerary handles POST /api/itineraries
func (h *ItineraryHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.CreateItineraryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.itineraryService.Create(r.Context(), identity.Username, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, detail)
}

// UpdateItinerary handles PATCH /api/itineraries/{id}
func (h *ItineraryHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.UpdateItineraryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itinerary, err := h.itineraryService.Update(r.Context(), id, identity.Username, identity.IsAdmin, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, itinerary)
}

// DeleteItinerary handles DELETE /api/itineraries/{id}
func (h *ItineraryHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.itineraryService.Delete(r.Context(), id, identity.Username, identity.IsAdmin); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike handles POST /api/itineraries/{id}/like
func (h *ItineraryHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	liked, err := h.likeService.ToggleLike(r.Context(), identity.Username, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return id, true
}
