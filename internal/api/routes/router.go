package routes

import (
	"net/http"

	"github.com/tripfolio/backend/internal/api/handlers"
	"github.com/tripfolio/backend/internal/api/middleware"
	"github.com/tripfolio/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	itineraryHandler *handlers.ItineraryHandler
	tagHandler       *handlers.TagHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	itineraryHandler *handlers.ItineraryHandler,
	tagHandler *handlers.TagHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:      authHandler,
		userHandler:      userHandler,
		itineraryHandler: itineraryHandler,
		tagHandler:       tagHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/login", r.authHandler.Login)

	// User endpoints
	r.mux.HandleFunc("GET /api/users/{username}", r.userHandler.GetUser)
	r.mux.HandleFunc("PATCH /api/users/{username}", r.userHandler.UpdateUser)
	r.mux.HandleFunc("DELETE /api/users/{username}", r.userHandler.DeleteUser)

	// Itinerary endpoints
	r.mux.HandleFunc("GET /api/itineraries", r.itineraryHandler.ListItineraries)
	r.mux.HandleFunc("POST /api/itineraries", r.itineraryHandler.CreateItinerary)
	r.mux.HandleFunc("GET /api/itineraries/{id}", r.itineraryHandler.GetItinerary)
	r.mux.HandleFunc("PATCH /api/itineraries/{id}", r.itineraryHandler.UpdateItinerary)
	r.mux.HandleFunc("DELETE /api/itineraries/{id}", r.itineraryHandler.DeleteItinerary)
	r.mux.HandleFunc("POST /api/itineraries/{id}/like", r.itineraryHandler.ToggleLike)

	// Tag endpoints
	r.mux.HandleFunc("GET /api/tags", r.tagHandler.ListTags)
	r.mux.HandleFunc("GET /api/tags/{name}", r.tagHandler.GetTag)
	r.mux.HandleFunc("POST /api/admin/tags", r.tagHandler.CreateTag)
	r.mux.HandleFunc("DELETE /api/admin/tags/{id}", r.tagHandler.DeleteTag)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so even early rejections carry CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.IdentityMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
