package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/tripfolio/backend/internal/domain/entities"
	"github.com/tripfolio/backend/internal/domain/repositories"
	"github.com/tripfolio/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/tripfolio/backend/pkg/errors"
	"github.com/tripfolio/backend/pkg/sqlfragment"
)

// itineraryColumnMap maps the external field names to itineraries table columns
var itineraryColumnMap = map[string]string{
	"durationDays": "duration",
	"latitude":     "lat",
	"longitude":    "lng",
}

const itineraryReturning = "id, username, title, duration, city, country, lat, lng, description, created_at"

// ItineraryAdapter implements the ItineraryRepository interface
type ItineraryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewItineraryAdapter creates a new itinerary adapter
func NewItineraryAdapter(client *postgres.Client) repositories.ItineraryRepository {
	return &ItineraryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts the header row and returns it with id and createdAt set
func (a *ItineraryAdapter) Create(ctx context.Context, itinerary *entities.Itinerary) (*entities.Itinerary, error) {
	query := fmt.Sprintf(`
		INSERT INTO itineraries (username, title, duration, city, country, lat, lng, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, itineraryReturning)

	created := &entities.Itinerary{}
	var description sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query,
		itinerary.OwnerUsername,
		itinerary.Title,
		itinerary.DurationDays,
		itinerary.City,
		itinerary.Country,
		itinerary.Latitude,
		itinerary.Longitude,
		itinerary.Description,
	).Scan(
		&created.ID,
		&created.OwnerUsername,
		&created.Title,
		&created.DurationDays,
		&created.City,
		&created.Country,
		&created.Latitude,
		&created.Longitude,
		&description,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create itinerary", err)
	}

	created.Description = nullableString(description)
	return created, nil
}

// GetDetail retrieves the header aggregated with its tag names and like
// count. Associations are outer-joined so an itinerary with no tags or likes
// still comes back, with an empty list and a zero count.
func (a *ItineraryAdapter) GetDetail(ctx context.Context, id int64) (*entities.ItineraryDetail, error) {
	query := `
		SELECT i.id, i.username, i.title, i.duration, i.city, i.country,
		       i.lat, i.lng, i.description, i.created_at,
		       COALESCE(array_agg(DISTINCT t.name) FILTER (WHERE t.name IS NOT NULL), '{}') AS tags,
		       COUNT(DISTINCT l.username) AS like_count
		FROM itineraries AS i
		LEFT JOIN itin_tags AS it ON i.id = it.itin_id
		LEFT JOIN tags AS t ON it.tag_id = t.id
		LEFT JOIN likes AS l ON i.id = l.itin_id
		WHERE i.id = $1
		GROUP BY i.id
	`

	detail := &entities.ItineraryDetail{}
	var description sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.OwnerUsername,
		&detail.Title,
		&detail.DurationDays,
		&detail.City,
		&detail.Country,
		&detail.Latitude,
		&detail.Longitude,
		&description,
		&detail.CreatedAt,
		pq.Array(&detail.Tags),
		&detail.LikeCount,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("itinerary with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get itinerary", err)
	}

	detail.Description = nullableString(description)
	if detail.Tags == nil {
		detail.Tags = []string{}
	}
	return detail, nil
}

// List retrieves catalog summaries matching the filter. Filters are
// independent predicates conjoined with AND; absent filters impose no
// constraint.
func (a *ItineraryAdapter) List(ctx context.Context, filter repositories.ItineraryFilter) ([]entities.ItinerarySummary, error) {
	if filter.DurationDays != nil && *filter.DurationDays <= 0 {
		return nil, apperrors.NewValidationError("duration filter must be greater than zero")
	}

	ds := a.db.Select(
		"id", "username", "title", "duration", "city", "country",
	).From("itineraries")

	if filter.Title != "" {
		ds = ds.Where(goqu.I("title").ILike("%" + filter.Title + "%"))
	}
	if filter.Country != "" {
		ds = ds.Where(goqu.I("country").ILike("%" + filter.Country + "%"))
	}
	if filter.DurationDays != nil {
		ds = ds.Where(goqu.I("duration").Lte(*filter.DurationDays))
	}
	if len(filter.Tags) > 0 {
		tagged := a.db.Select(goqu.I("it.itin_id")).
			From(goqu.T("itin_tags").As("it")).
			Join(goqu.T("tags").As("t"), goqu.On(goqu.Ex{"t.id": goqu.I("it.tag_id")})).
			Where(goqu.I("t.name").In(filter.Tags))
		ds = ds.Where(goqu.I("id").In(tagged))
	}

	query, args, err := ds.Order(goqu.I("created_at").Desc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list itineraries", err)
	}
	defer rows.Close()

	summaries := []entities.ItinerarySummary{}
	for rows.Next() {
		var s entities.ItinerarySummary
		if err := rows.Scan(&s.ID, &s.OwnerUsername, &s.Title, &s.DurationDays, &s.City, &s.Country); err != nil {
			return nil, apperrors.NewInternalError("failed to scan itinerary summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating itineraries", err)
	}

	return summaries, nil
}

// Update applies a partial update of scalar fields and returns the row
func (a *ItineraryAdapter) Update(ctx context.Context, id int64, fields []sqlfragment.Field) (*entities.Itinerary, error) {
	update, err := sqlfragment.BuildPartialUpdate(fields, itineraryColumnMap)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE itineraries
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, update.SetClause, len(update.Values)+1, itineraryReturning)

	args := append(update.Values, id)

	updated := &entities.Itinerary{}
	var description sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&updated.ID,
		&updated.OwnerUsername,
		&updated.Title,
		&updated.DurationDays,
		&updated.City,
		&updated.Country,
		&updated.Latitude,
		&updated.Longitude,
		&description,
		&updated.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("itinerary with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update itinerary", err)
	}

	updated.Description = nullableString(description)
	return updated, nil
}

// Delete removes an itinerary. Places, tag associations and likes are
// removed by schema cascades, atomically with the header row.
func (a *ItineraryAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("itineraries").
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete itinerary", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("itinerary with id %d not found", id))
	}

	return nil
}

// AddTags bulk-associates tags with an itinerary. The itinerary id binds
// once and is shared across every inserted pair.
func (a *ItineraryAdapter) AddTags(ctx context.Context, itineraryID int64, tagIDs []int64) error {
	rows := make([][]interface{}, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, []interface{}{tagID})
	}

	bulk, err := sqlfragment.BuildBulkValues(itineraryID, rows, 1)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT INTO itin_tags (itin_id, tag_id) VALUES %s", bulk.Placeholders)
	if _, err := a.client.DB().ExecContext(ctx, query, bulk.Values...); err != nil {
		return apperrors.NewInternalError("failed to add tags", err)
	}

	return nil
}
