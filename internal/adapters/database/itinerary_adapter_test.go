package database_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/adapters/database"
	"github.com/tripfolio/backend/internal/domain/repositories"
	apperrors "github.com/tripfolio/backend/pkg/errors"
)

var detailColumns = []string{
	"id", "username", "title", "duration", "city", "country",
	"lat", "lng", "description", "created_at", "tags", "like_count",
}

func TestItineraryAdapter_GetDetail(t *testing.T) {
	t.Run("returns empty tags and zero likes for a bare itinerary", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(`SELECT i\.id`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(int64(3), "alice", "Quiet trip", 2, "Lisbon", "Portugal",
					38.72, -9.14, nil, time.Now(), []byte(`{}`), 0))

		detail, err := adapter.GetDetail(context.Background(), 3)

		require.NoError(t, err)
		assert.NotNil(t, detail.Tags)
		assert.Empty(t, detail.Tags)
		assert.Zero(t, detail.LikeCount)
		assert.Nil(t, detail.Description)
	})

	t.Run("aggregates tag names and like count", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(`SELECT i\.id`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(int64(5), "bob", "Food tour", 4, "Rome", "Italy",
					41.9, 12.49, "pasta everywhere", time.Now(), []byte(`{food,culture}`), 12))

		detail, err := adapter.GetDetail(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, []string{"food", "culture"}, detail.Tags)
		assert.Equal(t, 12, detail.LikeCount)
		if assert.NotNil(t, detail.Description) {
			assert.Equal(t, "pasta everywhere", *detail.Description)
		}
	})

	t.Run("returns not found for a missing id", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(`SELECT i\.id`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := adapter.GetDetail(context.Background(), 99)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestItineraryAdapter_List(t *testing.T) {
	summaryColumns := []string{"id", "username", "title", "duration", "city", "country"}

	t.Run("applies the duration upper bound", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`"duration" <= $1`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(summaryColumns).
				AddRow(int64(1), "alice", "Short trip", 3, "Paris", "France"))

		days := 3
		summaries, err := adapter.List(context.Background(), repositories.ItineraryFilter{DurationDays: &days})

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 3, summaries[0].DurationDays)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a non-positive duration filter before querying", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		days := 0
		_, err := adapter.List(context.Background(), repositories.ItineraryFilter{DurationDays: &days})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("combines title and country substring filters", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`("title" ILIKE $1) AND ("country" ILIKE $2)`)).
			WithArgs("%beach%", "%spain%").
			WillReturnRows(sqlmock.NewRows(summaryColumns))

		summaries, err := adapter.List(context.Background(), repositories.ItineraryFilter{
			Title:   "beach",
			Country: "spain",
		})

		require.NoError(t, err)
		assert.Empty(t, summaries)
		assert.NotNil(t, summaries)
	})

	t.Run("matches any of the requested tags", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`"t"."name" IN ($1, $2)`)).
			WithArgs("food", "culture").
			WillReturnRows(sqlmock.NewRows(summaryColumns).
				AddRow(int64(2), "bob", "Tapas crawl", 2, "Madrid", "Spain"))

		summaries, err := adapter.List(context.Background(), repositories.ItineraryFilter{
			Tags: []string{"food", "culture"},
		})

		require.NoError(t, err)
		assert.Len(t, summaries, 1)
	})
}

func TestItineraryAdapter_AddTags(t *testing.T) {
	t.Run("shares the itinerary placeholder across every pair", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO itin_tags (itin_id, tag_id) VALUES ($1, $2), ($1, $3)`)).
			WithArgs(int64(7), int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := adapter.AddTags(context.Background(), 7, []int64{1, 2})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an empty tag list", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		err := adapter.AddTags(context.Background(), 7, nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItineraryAdapter_Delete(t *testing.T) {
	t.Run("returns not found when nothing matched", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := database.NewItineraryAdapter(client)

		mock.ExpectExec(`DELETE FROM "itineraries"`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Delete(context.Background(), 99)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
