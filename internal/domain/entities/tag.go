package entities

// Tag categorizes itineraries. Name is unique across the catalog.
type Tag struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// TagDetail is a tag plus summaries of the itineraries carrying it.
type TagDetail struct {
	Tag
	Itineraries []ItinerarySummary `json:"itineraries"`
}
