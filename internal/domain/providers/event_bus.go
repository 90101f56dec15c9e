package providers

import (
	"context"
	"fmt"

	"github.com/tripfolio/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to catalog
// change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ItineraryEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ItineraryEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelCatalog is the channel for all itinerary catalog updates
	EventChannelCatalog = "itinerary:updates"

	// eventChannelItineraryPrefix is the prefix for per-itinerary channels
	eventChannelItineraryPrefix = "itinerary:"
)

// GetItineraryChannel returns the channel name for a specific itinerary
func GetItineraryChannel(itineraryID int64) string {
	return fmt.Sprintf("%s%d", eventChannelItineraryPrefix, itineraryID)
}
