package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/api/handlers"
	"github.com/tripfolio/backend/internal/api/middleware"
	"github.com/tripfolio/backend/internal/application/services"
	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/repositories"
	apperrors "github.com/tripfolio/backend/pkg/errors"
)

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) GetDetail(ctx context.Context, id int64) (*entities.ItineraryDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ItineraryDetail), args.Error(1)
}

func (m *MockItineraryService) List(ctx context.Context, filter repositories.ItineraryFilter) ([]entities.ItinerarySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ItinerarySummary), args.Error(1)
}

func (m *MockItineraryService) Create(ctx context.Context, owner string, input services.CreateItineraryInput) (*entities.ItineraryDetail, error) {
	args := m.Called(ctx, owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ItineraryDetail), args.Error(1)
}

func (m *MockItineraryService) Update(ctx context.Context, id int64, actor string, isAdmin bool, input services.UpdateItineraryInput) (*entities.Itinerary, error) {
	args := m.Called(ctx, id, actor, isAdmin, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Itinerary), args.Error(1)
}

func (m *MockItineraryService) Delete(ctx context.Context, id int64, actor string, isAdmin bool) error {
	args := m.Called(ctx, id, actor, isAdmin)
	return args.Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) ToggleLike(ctx context.Context, username string, itineraryID int64) (bool, error) {
	args := m.Called(ctx, username, itineraryID)
	return args.Bool(0), args.Error(1)
}

func setupRouter(svc *MockItineraryService, likes *MockLikeService) http.Handler {
	handler := handlers.NewItineraryHandler(svc, likes)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/itineraries", handler.ListItineraries)
	mux.HandleFunc("POST /api/itineraries", handler.CreateItinerary)
	mux.HandleFunc("GET /api/itineraries/{id}", handler.GetItinerary)
	mux.HandleFunc("DELETE /api/itineraries/{id}", handler.DeleteItinerary)
	mux.HandleFunc("POST /api/itineraries/{id}/like", handler.ToggleLike)
	return middleware.IdentityMiddleware(mux)
}

func TestItineraryHandler_GetItinerary(t *testing.T) {
	t.Run("returns the external camelCase contract", func(t *testing.T) {
		svc := new(MockItineraryService)
		router := setupRouter(svc, new(MockLikeService))

		svc.On("GetDetail", mock.Anything, int64(7)).Return(&entities.ItineraryDetail{
			Itinerary: entities.Itinerary{
				ID:            7,
				OwnerUsername: "alice",
				Title:         "A",
				DurationDays:  3,
				City:          "Paris",
				Country:       "France",
				Latitude:      48.85,
				Longitude:     2.35,
			},
			Tags:      []string{"food"},
			LikeCount: 2,
			Places: []entities.Place{
				{Name: "Eiffel Tower", Address: "Champ de Mars", Latitude: 48.858, Longitude: 2.294, Sequence: 1},
			},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/itineraries/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "alice", body["ownerUsername"])
		assert.Equal(t, float64(3), body["durationDays"])
		assert.Equal(t, float64(2), body["likeCount"])

		places := body["places"].([]interface{})
		require.Len(t, places, 1)
		place := places[0].(map[string]interface{})
		assert.Equal(t, float64(1), place["sequence"])
		assert.NotContains(t, place, "id")
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		svc := new(MockItineraryService)
		router := setupRouter(svc, new(MockLikeService))

		svc.On("GetDetail", mock.Anything, int64(99)).
			Return(nil, apperrors.NewNotFoundError("itinerary with id 99 not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/itineraries/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		router := setupRouter(new(MockItineraryService), new(MockLikeService))

		req := httptest.NewRequest(http.MethodGet, "/api/itineraries/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItineraryHandler_CreateItinerary(t *testing.T) {
	payload := `{
		"title": "A", "durationDays": 3, "city": "Paris", "country": "France",
		"tags": [1, 2],
		"places": [{"name": "Eiffel Tower", "address": "Champ de Mars, Paris", "sequence": 1}]
	}`

	t.Run("requires authentication", func(t *testing.T) {
		router := setupRouter(new(MockItineraryService), new(MockLikeService))

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("creates for the authenticated user", func(t *testing.T) {
		svc := new(MockItineraryService)
		router := setupRouter(svc, new(MockLikeService))

		svc.On("Create", mock.Anything, "alice", mock.MatchedBy(func(in services.CreateItineraryInput) bool {
			return in.Title == "A" && len(in.TagIDs) == 2 && len(in.Places) == 1
		})).Return(&entities.ItineraryDetail{
			Itinerary: entities.Itinerary{ID: 7, OwnerUsername: "alice", Title: "A"},
			Tags:      []string{"food", "culture"},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(payload))
		req.Header.Set(middleware.HeaderAuthUser, "alice")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("maps a geocoding miss to 422", func(t *testing.T) {
		svc := new(MockItineraryService)
		router := setupRouter(svc, new(MockLikeService))

		svc.On("Create", mock.Anything, "alice", mock.Anything).
			Return(nil, apperrors.NewUnprocessableError("no coordinates for address", nil))

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader(payload))
		req.Header.Set(middleware.HeaderAuthUser, "alice")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestItineraryHandler_ListItineraries(t *testing.T) {
	t.Run("parses filters from the query string", func(t *testing.T) {
		svc := new(MockItineraryService)
		router := setupRouter(svc, new(MockLikeService))

		days := 3
		svc.On("List", mock.Anything, repositories.ItineraryFilter{
			Title:        "beach",
			Country:      "spain",
			DurationDays: &days,
			Tags:         []string{"food", "culture"},
		}).Return([]entities.ItinerarySummary{}, nil)

		req := httptest.NewRequest(http.MethodGet,
			"/api/itineraries?title=beach&country=spain&duration=3&tags=food,culture", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a non-numeric duration", func(t *testing.T) {
		router := setupRouter(new(MockItineraryService), new(MockLikeService))

		req := httptest.NewRequest(http.MethodGet, "/api/itineraries?duration=soon", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestItineraryHandler_ToggleLike(t *testing.T) {
	t.Run("toggles for the authenticated user", func(t *testing.T) {
		likes := new(MockLikeService)
		router := setupRouter(new(MockItineraryService), likes)

		likes.On("ToggleLike", mock.Anything, "bob", int64(7)).Return(true, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries/7/like", nil)
		req.Header.Set(middleware.HeaderAuthUser, "bob")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body["liked"])
	})
}
