package geolocation

import (
	"context"
	"strings"

	"github.com/tripfolio/backend/internal/domain/providers"
	apperrors "github.com/tripfolio/backend/pkg/errors"
)

type mockPlace struct {
	name   string
	coords providers.Coordinates
}

// MockGeolocationProvider resolves a small fixed set of well-known
// places. It keeps local development working without an API key.
// Entries are matched in order, most specific first.
type MockGeolocationProvider struct {
	known []mockPlace
}

// NewMockGeolocationProvider creates a new mock geolocation provider.
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{
		known: []mockPlace{
			{"eiffel tower", providers.Coordinates{Latitude: 48.8584, Longitude: 2.2945}},
			{"paris", providers.Coordinates{Latitude: 48.8566, Longitude: 2.3522}},
			{"london", providers.Coordinates{Latitude: 51.5074, Longitude: -0.1278}},
			{"tokyo", providers.Coordinates{Latitude: 35.6762, Longitude: 139.6503}},
			{"new york", providers.Coordinates{Latitude: 40.7128, Longitude: -74.0060}},
			{"rome", providers.Coordinates{Latitude: 41.9028, Longitude: 12.4964}},
			{"barcelona", providers.Coordinates{Latitude: 41.3874, Longitude: 2.1686}},
			{"lisbon", providers.Coordinates{Latitude: 38.7223, Longitude: -9.1393}},
		},
	}
}

func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	lowered := strings.ToLower(trimmed)
	for _, place := range m.known {
		if strings.Contains(lowered, place.name) {
			c := place.coords
			return &c, nil
		}
	}
	return nil, apperrors.NewUnprocessableError("no coordinates for address "+trimmed, nil)
}
