package repositories

import (
	"context"

	"github.com/tripfolio/backend/internal/domain/entities"
)

// PlaceRepository defines the interface for place data operations
type PlaceRepository interface {
	// AddPlaces bulk-inserts places for an itinerary and returns the stored
	// rows in input order
	AddPlaces(ctx context.Context, itineraryID int64, places []entities.Place) ([]entities.Place, error)

	// ListByItinerary retrieves an itinerary's places ordered by sequence
	ListByItinerary(ctx context.Context, itineraryID int64) ([]entities.Place, error)
}
