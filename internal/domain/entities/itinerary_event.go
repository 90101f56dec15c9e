package entities

import (
	"time"
)

// ItineraryEventType identifies the kind of catalog change an event carries.
type ItineraryEventType string

const (
	// EventItineraryCreated is published after a successful create pipeline
	EventItineraryCreated ItineraryEventType = "itinerary.created"

	// EventItineraryDeleted is published after an itinerary is removed
	EventItineraryDeleted ItineraryEventType = "itinerary.deleted"

	// EventItineraryLiked is published when a like toggle adds a like
	EventItineraryLiked ItineraryEventType = "itinerary.liked"

	// EventItineraryUnliked is published when a like toggle removes a like
	EventItineraryUnliked ItineraryEventType = "itinerary.unliked"
)

// ItineraryEvent is a catalog change notification published on the event bus.
type ItineraryEvent struct {
	ID          string             `json:"id"`
	Type        ItineraryEventType `json:"type"`
	ItineraryID int64              `json:"itineraryId"`
	Username    string             `json:"username"`
	Timestamp   time.Time          `json:"timestamp"`
}
