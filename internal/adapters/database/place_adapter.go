package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/repositories"
	"github.com/tripfolio/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/tripfolio/backend/pkg/errors"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// placeColumnsPerRow is the number of per-row columns in the bulk insert;
// itin_id is the shared leading value and is not counted.
const placeColumnsPerRow = 7

// PlaceAdapter implements the PlaceRepository interface
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// AddPlaces bulk-inserts places for an itinerary in a single statement and
// returns the stored rows in input order.
func (a *PlaceAdapter) AddPlaces(ctx context.Context, itineraryID int64, places []entities.Place) ([]entities.Place, error) {
	rows := make([][]interface{}, 0, len(places))
	for _, p := range places {
		rows = append(rows, []interface{}{
			p.Name, p.Address, p.Latitude, p.Longitude, p.Sequence, p.Description, p.ImageURL,
		})
	}

	bulk, err := sqlfragment.BuildBulkValues(itineraryID, rows, placeColumnsPerRow)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO places (itin_id, name, address, lat, lng, seq, description, image)
		VALUES %s
		RETURNING id, itin_id, name, address, lat, lng, seq, description, image
	`, bulk.Placeholders)

	result, err := a.client.DB().QueryContext(ctx, query, bulk.Values...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to insert places", err)
	}
	defer result.Close()

	return scanPlaces(result)
}

// ListByItinerary retrieves an itinerary's places ordered by sequence
func (a *PlaceAdapter) ListByItinerary(ctx context.Context, itineraryID int64) ([]entities.Place, error) {
	query, args, err := a.db.Select(
		"id", "itin_id", "name", "address", "lat", "lng", "seq", "description", "image",
	).From("places").
		Where(goqu.Ex{"itin_id": itineraryID}).
		Order(goqu.I("seq").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	return scanPlaces(rows)
}

func scanPlaces(rows *sql.Rows) ([]entities.Place, error) {
	places := []entities.Place{}
	for rows.Next() {
		var p entities.Place
		var description, image sql.NullString
		if err := rows.Scan(
			&p.ID, &p.ItineraryID, &p.Name, &p.Address,
			&p.Latitude, &p.Longitude, &p.Sequence, &description, &image,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		p.Description = nullableString(description)
		p.ImageURL = nullableString(image)
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating places", err)
	}

	return places, nil
}
