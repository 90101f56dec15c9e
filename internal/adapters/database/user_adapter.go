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

// userColumnMap maps the external field names to users table columns.
// Fields not listed use their logical name as the column name.
var userColumnMap = map[string]string{
	"firstName":     "first_name",
	"lastName":      "last_name",
	"profilePicUrl": "profile_pic",
	"passwordHash":  "password",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new user. The username is checked explicitly before the
// insert so a taken name surfaces as a conflict, not a driver error.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	checkQuery, checkArgs, err := a.db.Select("username").
		From("users").
		Where(goqu.Ex{"username": user.Username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build username check", err)
	}

	var existing string
	err = a.client.DB().QueryRowContext(ctx, checkQuery, checkArgs...).Scan(&existing)
	if err == nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("username taken: %s", user.Username))
	}
	if err != sql.ErrNoRows {
		return nil, apperrors.NewInternalError("failed to check username", err)
	}

	query := `
		INSERT INTO users (username, password, email, first_name, last_name, location, bio, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING username, email, first_name, last_name, location, bio, profile_pic, is_admin, created_at
	`

	created := &entities.User{}
	var location, bio, profilePic sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Location,
		user.Bio,
		user.ProfilePicURL,
	).Scan(
		&created.Username,
		&created.Email,
		&created.FirstName,
		&created.LastName,
		&location,
		&bio,
		&profilePic,
		&created.IsAdmin,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	created.Location = nullableString(location)
	created.Bio = nullableString(bio)
	created.ProfilePicURL = nullableString(profilePic)
	return created, nil
}

// GetByUsername retrieves a user by username, without the password hash
func (a *UserAdapter) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"username", "email", "first_name", "last_name",
		"location", "bio", "profile_pic", "is_admin", "created_at",
	).From("users").
		Where(goqu.Ex{"username": username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	var location, bio, profilePic sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&location,
		&bio,
		&profilePic,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	user.Location = nullableString(location)
	user.Bio = nullableString(bio)
	user.ProfilePicURL = nullableString(profilePic)
	return user, nil
}

// GetCredentials retrieves a user including the password hash
func (a *UserAdapter) GetCredentials(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"username", "password", "email", "first_name", "last_name", "is_admin",
	).From("users").
		Where(goqu.Ex{"username": username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.IsAdmin,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get credentials", err)
	}

	return user, nil
}

// ListOwnedSummaries lists summaries of the itineraries a user owns
func (a *UserAdapter) ListOwnedSummaries(ctx context.Context, username string) ([]entities.ItinerarySummary, error) {
	query, args, err := a.db.Select(
		"id", "username", "title", "duration", "city", "country",
	).From("itineraries").
		Where(goqu.Ex{"username": username}).
		Order(goqu.I("created_at").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.scanSummaries(ctx, query, args)
}

// ListLikedSummaries lists summaries of the itineraries a user liked
func (a *UserAdapter) ListLikedSummaries(ctx context.Context, username string) ([]entities.ItinerarySummary, error) {
	query, args, err := a.db.Select(
		goqu.I("i.id"), goqu.I("i.username"), goqu.I("i.title"),
		goqu.I("i.duration"), goqu.I("i.city"), goqu.I("i.country"),
	).From(goqu.T("itineraries").As("i")).
		Join(goqu.T("likes").As("l"), goqu.On(goqu.Ex{"l.itin_id": goqu.I("i.id")})).
		Where(goqu.Ex{"l.username": username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.scanSummaries(ctx, query, args)
}

// Update applies a partial update and returns the updated row
func (a *UserAdapter) Update(ctx context.Context, username string, fields []sqlfragment.Field) (*entities.User, error) {
	update, err := sqlfragment.BuildPartialUpdate(fields, userColumnMap)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING username, email, first_name, last_name, location, bio, profile_pic, is_admin, created_at
	`, update.SetClause, len(update.Values)+1)

	args := append(update.Values, username)

	user := &entities.User{}
	var location, bio, profilePic sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&location,
		&bio,
		&profilePic,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	user.Location = nullableString(location)
	user.Bio = nullableString(bio)
	user.ProfilePicURL = nullableString(profilePic)
	return user, nil
}

// Delete removes a user. Owned itineraries, their places and tag
// associations, and the user's likes are removed by schema cascades.
func (a *UserAdapter) Delete(ctx context.Context, username string) error {
	query, args, err := a.db.Delete("users").
		Where(goqu.Ex{"username": username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", username))
	}

	return nil
}

// ToggleLike adds the like pair if absent and removes it if present
func (a *UserAdapter) ToggleLike(ctx context.Context, username string, itineraryID int64) (bool, error) {
	checkQuery, checkArgs, err := a.db.Select("username").
		From("likes").
		Where(goqu.Ex{"username": username, "itin_id": itineraryID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build like check", err)
	}

	var existing string
	err = a.client.DB().QueryRowContext(ctx, checkQuery, checkArgs...).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		insertQuery, insertArgs, buildErr := a.db.Insert("likes").
			Rows(goqu.Record{"username": username, "itin_id": itineraryID}).
			Prepared(true).
			ToSQL()
		if buildErr != nil {
			return false, apperrors.NewInternalError("failed to build like insert", buildErr)
		}
		if _, execErr := a.client.DB().ExecContext(ctx, insertQuery, insertArgs...); execErr != nil {
			return false, apperrors.NewInternalError("failed to add like", execErr)
		}
		return true, nil
	case err != nil:
		return false, apperrors.NewInternalError("failed to check like", err)
	default:
		deleteQuery, deleteArgs, buildErr := a.db.Delete("likes").
			Where(goqu.Ex{"username": username, "itin_id": itineraryID}).
			Prepared(true).
			ToSQL()
		if buildErr != nil {
			return false, apperrors.NewInternalError("failed to build like delete", buildErr)
		}
		if _, execErr := a.client.DB().ExecContext(ctx, deleteQuery, deleteArgs...); execErr != nil {
			return false, apperrors.NewInternalError("failed to remove like", execErr)
		}
		return false, nil
	}
}

func (a *UserAdapter) scanSummaries(ctx context.Context, query string, args []interface{}) ([]entities.ItinerarySummary, error) {
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

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
