package providers

import (
	"context"
)

// GeolocationProvider defines the interface for geocoding services. Failure
// classes matter to callers: an address the upstream cannot resolve yields an
// unprocessable-input error, while network or timeout conditions yield a
// service-unavailable error.
type GeolocationProvider interface {
	// Geocode converts a free-text address to coordinates
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
