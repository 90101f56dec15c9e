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
)

// TagAdapter implements the TagRepository interface
type TagAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTagAdapter creates a new tag adapter
func NewTagAdapter(client *postgres.Client) repositories.TagRepository {
	return &TagAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new tag and returns it with its id set
func (a *TagAdapter) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	query := `
		INSERT INTO tags (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description
	`

	created := &entities.Tag{}
	var description sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query, tag.Name, tag.Description).Scan(
		&created.ID,
		&created.Name,
		&description,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create tag", err)
	}

	created.Description = nullableString(description)
	return created, nil
}

// ListNames retrieves all tag names
func (a *TagAdapter) ListNames(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select("name").
		From("tags").
		Order(goqu.I("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tags", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tag name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating tags", err)
	}

	return names, nil
}

// GetByName retrieves a tag and summaries of the itineraries carrying it
func (a *TagAdapter) GetByName(ctx context.Context, name string) (*entities.TagDetail, error) {
	tagQuery, tagArgs, err := a.db.Select("id", "name", "description").
		From("tags").
		Where(goqu.Ex{"name": name}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	detail := &entities.TagDetail{}
	var description sql.NullString
	err = a.client.DB().QueryRowContext(ctx, tagQuery, tagArgs...).Scan(
		&detail.ID,
		&detail.Name,
		&description,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("tag %s not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get tag", err)
	}
	detail.Description = nullableString(description)

	itinQuery, itinArgs, err := a.db.Select(
		goqu.I("i.id"), goqu.I("i.username"), goqu.I("i.title"),
		goqu.I("i.duration"), goqu.I("i.city"), goqu.I("i.country"),
	).From(goqu.T("itineraries").As("i")).
		Join(goqu.T("itin_tags").As("it"), goqu.On(goqu.Ex{"it.itin_id": goqu.I("i.id")})).
		Where(goqu.Ex{"it.tag_id": detail.ID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, itinQuery, itinArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tagged itineraries", err)
	}
	defer rows.Close()

	detail.Itineraries = []entities.ItinerarySummary{}
	for rows.Next() {
		var s entities.ItinerarySummary
		if err := rows.Scan(&s.ID, &s.OwnerUsername, &s.Title, &s.DurationDays, &s.City, &s.Country); err != nil {
			return nil, apperrors.NewInternalError("failed to scan itinerary summary", err)
		}
		detail.Itineraries = append(detail.Itineraries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating itineraries", err)
	}

	return detail, nil
}

// Delete removes a tag; itinerary associations are removed by schema cascades
func (a *TagAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("tags").
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete tag", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("tag with id %d not found", id))
	}

	return nil
}
