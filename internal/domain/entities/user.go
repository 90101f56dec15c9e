package entities

import (
	"time"
)

// User represents a registered user. Username is the natural key and is
// immutable after registration.
type User struct {
	Username      string    `json:"username" db:"username"`
	PasswordHash  string    `json:"-" db:"password"`
	Email         string    `json:"email" db:"email"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Location      *string   `json:"location" db:"location"`
	Bio           *string   `json:"bio" db:"bio"`
	ProfilePicURL *string   `json:"profilePicUrl" db:"profile_pic"`
	IsAdmin       bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// UserDetail is the full profile response: the user plus summaries of the
// itineraries they own and the ones they liked.
type UserDetail struct {
	User
	Itineraries []ItinerarySummary `json:"itineraries"`
	Likes       []ItinerarySummary `json:"likes"`
}

// Like marks that a user liked an itinerary. Presence is the signal; the
// composite key carries no payload.
type Like struct {
	Username    string `json:"username" db:"username"`
	ItineraryID int64  `json:"itineraryId" db:"itin_id"`
}
