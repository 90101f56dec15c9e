package repositories

import (
	"context"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// ItineraryFilter defines the optional, AND-composed predicates for listing
// the public catalog. Zero values impose no constraint.
type ItineraryFilter struct {
	// Title matches case-insensitive substrings of the title
	Title string

	// Country matches case-insensitive substrings of the country
	Country string

	// DurationDays is an upper bound: itinerary duration <= DurationDays.
	// Nil means no duration constraint; values <= 0 are rejected.
	DurationDays *int

	// Tags matches itineraries carrying any of the named tags
	Tags []string
}

// ItineraryRepository defines the interface for itinerary data operations
type ItineraryRepository interface {
	// Create inserts the header row and returns it with id and createdAt set
	Create(ctx context.Context, itinerary *entities.Itinerary) (*entities.Itinerary, error)

	// GetDetail retrieves the header aggregated with tag names and like
	// count. Places are attached by the service layer.
	GetDetail(ctx context.Context, id int64) (*entities.ItineraryDetail, error)

	// List retrieves catalog summaries matching the filter
	List(ctx context.Context, filter ItineraryFilter) ([]entities.ItinerarySummary, error)

	// Update applies a partial update of scalar fields and returns the row
	Update(ctx context.Context, id int64, fields []sqlfragment.Field) (*entities.Itinerary, error)

	// Delete removes an itinerary; places, tag associations and likes cascade
	Delete(ctx context.Context, id int64) error

	// AddTags bulk-associates tags with an itinerary
	AddTags(ctx context.Context, itineraryID int64, tagIDs []int64) error
}
