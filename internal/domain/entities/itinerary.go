package entities

import (
	"time"
)

// Itinerary represents an itinerary header row. Coordinates are always
// geocoder-derived from city and country, never client-supplied.
type Itinerary struct {
	ID            int64     `json:"id" db:"id"`
	OwnerUsername string    `json:"ownerUsername" db:"username"`
	Title         string    `json:"title" db:"title"`
	DurationDays  int       `json:"durationDays" db:"duration"`
	City          string    `json:"city" db:"city"`
	Country       string    `json:"country" db:"country"`
	Latitude      float64   `json:"latitude" db:"lat"`
	Longitude     float64   `json:"longitude" db:"lng"`
	Description   *string   `json:"description" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// ItinerarySummary is the list-view shape. Coordinates, description and
// places are intentionally omitted from list views.
type ItinerarySummary struct {
	ID            int64  `json:"id" db:"id"`
	OwnerUsername string `json:"ownerUsername" db:"username"`
	Title         string `json:"title" db:"title"`
	DurationDays  int    `json:"durationDays" db:"duration"`
	City          string `json:"city" db:"city"`
	Country       string `json:"country" db:"country"`
}

// ItineraryDetail is the denormalized aggregate response: the header joined
// with its tag names, like count and ordered place list.
type ItineraryDetail struct {
	Itinerary
	Tags      []string `json:"tags"`
	LikeCount int      `json:"likeCount"`
	Places    []Place  `json:"places"`
}
