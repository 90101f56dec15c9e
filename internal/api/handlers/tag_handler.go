package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tripfolio/backend/internal/api/middleware"
	"github.com/tripfolio/backend/internal/domain/entities"
)

// TagService is the slice of the tag service the handler needs.
type TagService interface {
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*entities.TagDetail, error)
	Delete(ctx context.Context, id int64) error
}

// TagHandler handles tag catalog HTTP requests
type TagHandler struct {
	tagService TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags handles GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	names, err := h.tagService.ListNames(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tags":  names,
		"count": len(names),
	})
}

// GetTag handles GET /api/tags/{name}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "tag name is required")
		return
	}

	detail, err := h.tagService.GetByName(r.Context(), name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// CreateTag handles POST /api/admin/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var tag entities.Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.tagService.Create(r.Context(), &tag)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// DeleteTag handles DELETE /api/admin/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id must be a number")
		return
	}

	if err := h.tagService.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity := middleware.IdentityFromContext(r.Context())
	if identity.Username == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if !identity.IsAdmin {
		respondWithError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
