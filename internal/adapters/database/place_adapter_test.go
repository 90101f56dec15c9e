package database_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/adapters/database"
	"github.com/tripfolio/backend/internal/domain/entities"
	apperrors "github.com/tripfolio/backend/pkg/errors"
)

var placeColumns = []string{"id", "itin_id", "name", "address", "lat", "lng", "seq", "description", "image"}

func TestPlaceAdapter_AddPlaces(t *testing.T) {
	t.Run("bulk-inserts with one shared itinerary placeholder", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewPlaceAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8), ($1, $9, $10, $11, $12, $13, $14, $15)`,
		)).WithArgs(
			int64(7),
			"Eiffel Tower", "Champ de Mars, Paris", 48.858, 2.294, 1, nil, nil,
			"Louvre", "Rue de Rivoli, Paris", 48.861, 2.336, 2, nil, nil,
		).WillReturnRows(sqlmock.NewRows(placeColumns).
			AddRow(int64(1), int64(7), "Eiffel Tower", "Champ de Mars, Paris", 48.858, 2.294, 1, nil, nil).
			AddRow(int64(2), int64(7), "Louvre", "Rue de Rivoli, Paris", 48.861, 2.336, 2, nil, nil))

		inserted, err := adapter.AddPlaces(context.Background(), 7, []entities.Place{
			{Name: "Eiffel Tower", Address: "Champ de Mars, Paris", Latitude: 48.858, Longitude: 2.294, Sequence: 1},
			{Name: "Louvre", Address: "Rue de Rivoli, Paris", Latitude: 48.861, Longitude: 2.336, Sequence: 2},
		})

		require.NoError(t, err)
		require.Len(t, inserted, 2)
		assert.Equal(t, "Eiffel Tower", inserted[0].Name)
		assert.Equal(t, int64(7), inserted[0].ItineraryID)
		assert.Equal(t, "Louvre", inserted[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an empty place list", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewPlaceAdapter(client)

		_, err := adapter.AddPlaces(context.Background(), 7, nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPlaceAdapter_ListByItinerary(t *testing.T) {
	t.Run("orders places by sequence", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewPlaceAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "seq" ASC`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(placeColumns).
				AddRow(int64(1), int64(7), "Breakfast spot", "Somewhere 1", 1.0, 2.0, 1, "croissants", nil).
				AddRow(int64(2), int64(7), "Museum", "Somewhere 2", 1.1, 2.1, 2, nil, "https://img/museum.png"))

		places, err := adapter.ListByItinerary(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, 1, places[0].Sequence)
		if assert.NotNil(t, places[0].Description) {
			assert.Equal(t, "croissants", *places[0].Description)
		}
		assert.Nil(t, places[0].ImageURL)
		assert.Nil(t, places[1].Description)
		if assert.NotNil(t, places[1].ImageURL) {
			assert.Equal(t, "https://img/museum.png", *places[1].ImageURL)
		}
	})

	t.Run("returns an empty slice for an itinerary without places", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewPlaceAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "places"`)).
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(placeColumns))

		places, err := adapter.ListByItinerary(context.Background(), 8)

		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})
}
