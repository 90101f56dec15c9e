package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/providers"
	"github.com/tripfolio/backend/internal/domain/repositories"
	"github.com/tripfolio/backend/internal/infrastructure/observability"
	apperrors "github.com/tripfolio/backend/pkg/errors"
	"github.com/tripfolio/backend/pkg/saga"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// maxConcurrentGeocodes bounds the parallel per-place lookups of one create.
const maxConcurrentGeocodes = 5

// PlaceInput is one stop submitted with an itinerary creation request.
// Coordinates are never accepted from the caller; they are resolved from
// Address inside the pipeline.
type PlaceInput struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Sequence    int     `json:"sequence"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// CreateItineraryInput is the payload for the multi-step create pipeline.
type CreateItineraryInput struct {
	Title        string       `json:"title"`
	DurationDays int          `json:"durationDays"`
	City         string       `json:"city"`
	Country      string       `json:"country"`
	Description  *string      `json:"description"`
	TagIDs       []int64      `json:"tags"`
	Places       []PlaceInput `json:"places"`
}

// UpdateItineraryInput carries the scalar fields of a partial update. Nil
// means "leave unchanged". Tags and places are additive-only and not
// editable through updates.
type UpdateItineraryInput struct {
	Title        *string `json:"title"`
	DurationDays *int    `json:"durationDays"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Description  *string `json:"description"`
}

// ItineraryService composes the itinerary, place and tag stores with the
// geocoder into the aggregate read and the multi-step create pipeline.
type ItineraryService struct {
	itineraries repositories.ItineraryRepository
	places      repositories.PlaceRepository
	geocoder    providers.GeolocationProvider
	eventBus    providers.EventBus
	metrics     *observability.Metrics
}

// NewItineraryService creates a new itinerary service. eventBus and metrics
// are optional; nil disables event publishing and instrument recording.
func NewItineraryService(
	itineraries repositories.ItineraryRepository,
	places repositories.PlaceRepository,
	geocoder providers.GeolocationProvider,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *ItineraryService {
	return &ItineraryService{
		itineraries: itineraries,
		places:      places,
		geocoder:    geocoder,
		eventBus:    eventBus,
		metrics:     metrics,
	}
}

// GetDetail retrieves the denormalized itinerary aggregate: header, tag
// names, like count and the ordered place list.
func (s *ItineraryService) GetDetail(ctx context.Context, id int64) (*entities.ItineraryDetail, error) {
	detail, err := s.itineraries.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	placeRows, err := s.places.ListByItinerary(ctx, id)
	if err != nil {
		return nil, err
	}
	if placeRows == nil {
		placeRows = []entities.Place{}
	}
	detail.Places = placeRows

	return detail, nil
}

// List retrieves catalog summaries matching the filter.
func (s *ItineraryService) List(ctx context.Context, filter repositories.ItineraryFilter) ([]entities.ItinerarySummary, error) {
	return s.itineraries.List(ctx, filter)
}

// Create runs the multi-step creation pipeline: geocode the destination,
// insert the header, associate tags, geocode and insert places. The header
// insert is the commit point; any later failure triggers a compensating
// delete of the header so the net effect is as if creation never happened.
func (s *ItineraryService) Create(ctx context.Context, owner string, input CreateItineraryInput) (*entities.ItineraryDetail, error) {
	if input.DurationDays <= 0 {
		return nil, apperrors.NewValidationError("durationDays must be greater than zero")
	}
	if len(input.TagIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one tag is required")
	}
	if len(input.Places) == 0 {
		return nil, apperrors.NewValidationError("at least one place is required")
	}

	logger := observability.LoggerFromContext(ctx)

	var (
		created   *entities.Itinerary
		placeRows []entities.Place
	)

	pipeline := saga.New(
		saga.Step{
			Name: "geocode destination",
			Run: func(ctx context.Context) error {
				coords, err := s.geocode(ctx, fmt.Sprintf("%s, %s", input.City, input.Country))
				if err != nil {
					return err
				}
				created = &entities.Itinerary{
					OwnerUsername: owner,
					Title:         input.Title,
					DurationDays:  input.DurationDays,
					City:          input.City,
					Country:       input.Country,
					Latitude:      coords.Latitude,
					Longitude:     coords.Longitude,
					Description:   input.Description,
				}
				return nil
			},
		},
		saga.Step{
			Name: "insert header",
			Run: func(ctx context.Context) error {
				row, err := s.itineraries.Create(ctx, created)
				if err != nil {
					return err
				}
				created = row
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.itineraries.Delete(ctx, created.ID)
			},
		},
		saga.Step{
			Name: "associate tags",
			Run: func(ctx context.Context) error {
				return s.itineraries.AddTags(ctx, created.ID, input.TagIDs)
			},
		},
		saga.Step{
			Name: "insert places",
			Run: func(ctx context.Context) error {
				resolved, err := s.resolvePlaces(ctx, input.Places)
				if err != nil {
					return err
				}
				placeRows, err = s.places.AddPlaces(ctx, created.ID, resolved)
				return err
			},
		},
	).OnCompensationError(func(ce saga.CompensationError) {
		logger.Error().Err(ce.Err).
			Str("step", ce.Step).
			Int64("itinerary_id", created.ID).
			Msg("compensating delete failed, itinerary header may be orphaned")
	})

	if err := pipeline.Run(ctx); err != nil {
		if s.metrics != nil && created != nil && created.ID != 0 {
			s.metrics.SagaRollbacks.Add(context.WithoutCancel(ctx), 1)
		}
		return nil, err
	}

	s.publish(ctx, entities.EventItineraryCreated, created.ID, owner)

	detail, err := s.itineraries.GetDetail(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	detail.Places = placeRows
	return detail, nil
}

// resolvePlaces geocodes every place address concurrently and returns the
// rows in input order, regardless of completion order.
func (s *ItineraryService) resolvePlaces(ctx context.Context, inputs []PlaceInput) ([]entities.Place, error) {
	resolved := make([]entities.Place, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGeocodes)
	for i, place := range inputs {
		g.Go(func() error {
			coords, err := s.geocode(gctx, place.Address)
			if err != nil {
				return err
			}
			resolved[i] = entities.Place{
				Name:        place.Name,
				Address:     place.Address,
				Latitude:    coords.Latitude,
				Longitude:   coords.Longitude,
				Sequence:    place.Sequence,
				Description: place.Description,
				ImageURL:    place.ImageURL,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *ItineraryService) geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	if s.metrics != nil {
		s.metrics.GeocodeCount.Add(ctx, 1)
	}
	return s.geocoder.Geocode(ctx, address)
}

// Update applies a partial update of scalar fields. Only the owner or an
// admin may update. When city or country change, coordinates are re-resolved
// so they stay geocoder-derived.
func (s *ItineraryService) Update(ctx context.Context, id int64, actor string, isAdmin bool, input UpdateItineraryInput) (*entities.Itinerary, error) {
	current, err := s.itineraries.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(current.OwnerUsername, actor, isAdmin); err != nil {
		return nil, err
	}

	if input.DurationDays != nil && *input.DurationDays <= 0 {
		return nil, apperrors.NewValidationError("durationDays must be greater than zero")
	}

	var fields []sqlfragment.Field
	if input.Title != nil {
		fields = append(fields, sqlfragment.Field{Name: "title", Value: *input.Title})
	}
	if input.DurationDays != nil {
		fields = append(fields, sqlfragment.Field{Name: "durationDays", Value: *input.DurationDays})
	}
	if input.City != nil {
		fields = append(fields, sqlfragment.Field{Name: "city", Value: *input.City})
	}
	if input.Country != nil {
		fields = append(fields, sqlfragment.Field{Name: "country", Value: *input.Country})
	}
	if input.Description != nil {
		fields = append(fields, sqlfragment.Field{Name: "description", Value: *input.Description})
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	if input.City != nil || input.Country != nil {
		city, country := current.City, current.Country
		if input.City != nil {
			city = *input.City
		}
		if input.Country != nil {
			country = *input.Country
		}
		coords, err := s.geocode(ctx, fmt.Sprintf("%s, %s", city, country))
		if err != nil {
			return nil, err
		}
		fields = append(fields,
			sqlfragment.Field{Name: "latitude", Value: coords.Latitude},
			sqlfragment.Field{Name: "longitude", Value: coords.Longitude},
		)
	}

	return s.itineraries.Update(ctx, id, fields)
}

// Delete removes an itinerary. Only the owner or an admin may delete; the
// schema cascades places, tag associations and likes.
func (s *ItineraryService) Delete(ctx context.Context, id int64, actor string, isAdmin bool) error {
	current, err := s.itineraries.GetDetail(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(current.OwnerUsername, actor, isAdmin); err != nil {
		return err
	}

	if err := s.itineraries.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.EventItineraryDeleted, id, actor)
	return nil
}

// publish sends a catalog event when a bus is configured. Publishing is
// best-effort; a bus failure never fails the request.
func (s *ItineraryService) publish(ctx context.Context, eventType entities.ItineraryEventType, itineraryID int64, username string) {
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
	if err := s.eventBus.Publish(ctx, providers.EventChannelCatalog, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_type", string(eventType)).
			Int64("itinerary_id", itineraryID).
			Msg("failed to publish itinerary event")
	}
}

// authorizeOwner allows the resource owner or an admin.
func authorizeOwner(owner, actor string, isAdmin bool) error {
	if actor == owner || isAdmin {
		return nil
	}
	return apperrors.NewForbiddenError("not allowed to modify this resource")
}
