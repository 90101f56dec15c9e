package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/providers"
	"github.com/tripfolio/backend/internal/domain/repositories"
	"github.com/tripfolio/backend/internal/infrastructure/observability"
	apperrors "github.com/tripfolio/backend/pkg/errors"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Location      *string `json:"location"`
	Bio           *string `json:"bio"`
	ProfilePicURL *string `json:"profilePicUrl"`
}

// UpdateUserInput carries the fields of a partial profile update. Nil means
// "leave unchanged". Username is immutable and not updatable.
type UpdateUserInput struct {
	Password      *string `json:"password"`
	Email         *string `json:"email"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Location      *string `json:"location"`
	Bio           *string `json:"bio"`
	ProfilePicURL *string `json:"profilePicUrl"`
}

// UserService handles registration, authentication, profile assembly and
// like toggling.
type UserService struct {
	users    repositories.UserRepository
	hasher   providers.PasswordHasher
	eventBus providers.EventBus
}

// NewUserService creates a new user service. eventBus is optional; nil
// disables event publishing.
func NewUserService(users repositories.UserRepository, hasher providers.PasswordHasher, eventBus providers.EventBus) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		eventBus: eventBus,
	}
}

// Register creates a new user. The plaintext password never reaches the
// store; it is hashed at this boundary.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	if input.Username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &entities.User{
		Username:      input.Username,
		PasswordHash:  hash,
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Location:      input.Location,
		Bio:           input.Bio,
		ProfilePicURL: input.ProfilePicURL,
	})
}

// Authenticate checks credentials. A missing user and a password mismatch
// are indistinguishable to the caller so usernames cannot be enumerated.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	user.PasswordHash = ""
	return user, nil
}

// GetProfile assembles the full profile: the user plus summaries of owned
// and liked itineraries.
func (s *UserService) GetProfile(ctx context.Context, username string) (*entities.UserDetail, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	owned, err := s.users.ListOwnedSummaries(ctx, username)
	if err != nil {
		return nil, err
	}
	liked, err := s.users.ListLikedSummaries(ctx, username)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		owned = []entities.ItinerarySummary{}
	}
	if liked == nil {
		liked = []entities.ItinerarySummary{}
	}

	return &entities.UserDetail{
		User:        *user,
		Itineraries: owned,
		Likes:       liked,
	}, nil
}

// Update applies a partial profile update. Only the user themselves or an
// admin may update; a password change is re-hashed at this boundary.
func (s *UserService) Update(ctx context.Context, username, actor string, isAdmin bool, input UpdateUserInput) (*entities.User, error) {
	if err := authorizeOwner(username, actor, isAdmin); err != nil {
		return nil, err
	}

	var fields []sqlfragment.Field
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields = append(fields, sqlfragment.Field{Name: "passwordHash", Value: hash})
	}
	if input.Email != nil {
		fields = append(fields, sqlfragment.Field{Name: "email", Value: *input.Email})
	}
	if input.FirstName != nil {
		fields = append(fields, sqlfragment.Field{Name: "firstName", Value: *input.FirstName})
	}
	if input.LastName != nil {
		fields = append(fields, sqlfragment.Field{Name: "lastName", Value: *input.LastName})
	}
	if input.Location != nil {
		fields = append(fields, sqlfragment.Field{Name: "location", Value: *input.Location})
	}
	if input.Bio != nil {
		fields = append(fields, sqlfragment.Field{Name: "bio", Value: *input.Bio})
	}
	if input.ProfilePicURL != nil {
		fields = append(fields, sqlfragment.Field{Name: "profilePicUrl", Value: *input.ProfilePicURL})
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	return s.users.Update(ctx, username, fields)
}

// Delete removes a user. Only the user themselves or an admin may delete;
// the schema cascades owned itineraries and likes.
func (s *UserService) Delete(ctx context.Context, username, actor string, isAdmin bool) error {
	if err := authorizeOwner(username, actor, isAdmin); err != nil {
		return err
	}
	return s.users.Delete(ctx, username)
}

// ToggleLike flips the like state of (username, itineraryID) and returns
// true when the toggle resulted in a like.
func (s *UserService) ToggleLike(ctx context.Context, username string, itineraryID int64) (bool, error) {
	liked, err := s.users.ToggleLike(ctx, username, itineraryID)
	if err != nil {
		return false, err
	}

	eventType := entities.EventItineraryUnliked
	if liked {
		eventType = entities.EventItineraryLiked
	}
	s.publishLike(ctx, eventType, itineraryID, username)

	return liked, nil
}

func (s *UserService) publishLike(ctx context.Context, eventType entities.ItineraryEventType, itineraryID int64, username string) {
	if s.eventBus == nil {
		return
	}
	event := &entities.ItineraryEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		ItineraryID: itineraryID,
		Username:    username,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, providers.GetItineraryChannel(itineraryID), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_type", string(eventType)).
			Int64("itinerary_id", itineraryID).
			Msg("failed to publish like event")
	}
}
