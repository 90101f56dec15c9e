package repositories

import (
	"context"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user and returns the stored row
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// GetByUsername retrieves a user by username, without the password hash
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetCredentials retrieves a user including the password hash
	GetCredentials(ctx context.Context, username string) (*entities.User, error)

	// ListOwnedSummaries lists summaries of the itineraries a user owns
	ListOwnedSummaries(ctx context.Context, username string) ([]entities.ItinerarySummary, error)

	// ListLikedSummaries lists summaries of the itineraries a user liked
	ListLikedSummaries(ctx context.Context, username string) ([]entities.ItinerarySummary, error)

	// Update applies a partial update and returns the updated row
	Update(ctx context.Context, username string, fields []sqlfragment.Field) (*entities.User, error)

	// Delete removes a user; owned itineraries and likes cascade
	Delete(ctx context.Context, username string) error

	// ToggleLike adds the like pair if absent and removes it if present.
	// It returns true when the toggle resulted in a like.
	ToggleLike(ctx context.Context, username string, itineraryID int64) (bool, error)
}
