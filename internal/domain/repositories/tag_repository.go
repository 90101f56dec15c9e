package repositories

import (
	"context"

	"github.com/tripfolio/backend/internal/domain/entities"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	// Create inserts a new tag and returns it with its id set
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)

	// ListNames retrieves all tag names
	ListNames(ctx context.Context) ([]string, error)

	// GetByName retrieves a tag and the itineraries carrying it
	GetByName(ctx context.Context, name string) (*entities.TagDetail, error)

	// Delete removes a tag; itinerary associations cascade
	Delete(ctx context.Context, id int64) error
}
