package entities

// Place is a single stop within an itinerary. Sequence is the display order;
// it is not required to be unique. Coordinates are resolved from Address by
// the geocoder during itinerary creation.
type Place struct {
	ID          int64   `json:"-" db:"id"`
	ItineraryID int64   `json:"-" db:"itin_id"`
	Name        string  `json:"name" db:"name"`
	Address     string  `json:"address" db:"address"`
	Latitude    float64 `json:"latitude" db:"lat"`
	Longitude   float64 `json:"longitude" db:"lng"`
	Sequence    int     `json:"sequence" db:"seq"`
	Description *string `json:"description" db:"description"`
	ImageURL    *string `json:"imageUrl" db:"image"`
}
