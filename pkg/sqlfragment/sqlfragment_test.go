package sqlfragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tripfolio/backend/pkg/errors"
)

func TestBuildPartialUpdate(t *testing.T) {
	t.Run("maps logical names to columns in input order", func(t *testing.T) {
		update, err := BuildPartialUpdate(
			[]Field{
				{Name: "firstName", Value: "Ada"},
				{Name: "bio", Value: "traveler"},
				{Name: "profilePicUrl", Value: "http://img"},
			},
			map[string]string{
				"firstName":     "first_name",
				"profilePicUrl": "profile_pic",
			},
		)
		require.NoError(t, err)
		assert.Equal(t, `"first_name"=$1, "bio"=$2, "profile_pic"=$3`, update.SetClause)
		assert.Equal(t, []interface{}{"Ada", "traveler", "http://img"}, update.Values)
	})

	t.Run("single field", func(t *testing.T) {
		update, err := BuildPartialUpdate([]Field{{Name: "title", Value: "A"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, `"title"=$1`, update.SetClause)
		assert.Equal(t, []interface{}{"A"}, update.Values)
	})

	t.Run("rejects empty field list", func(t *testing.T) {
		update, err := BuildPartialUpdate(nil, map[string]string{"a": "b"})
		assert.Nil(t, update)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBuildBulkValues(t *testing.T) {
	t.Run("shared placeholder repeats in every group", func(t *testing.T) {
		bulk, err := BuildBulkValues(7, [][]interface{}{
			{"a1", "b1"},
			{"a2", "b2"},
		}, 2)
		require.NoError(t, err)
		assert.Equal(t, "($1, $2, $3), ($1, $4, $5)", bulk.Placeholders)
		assert.Equal(t, []interface{}{7, "a1", "b1", "a2", "b2"}, bulk.Values)
	})

	t.Run("single column rows", func(t *testing.T) {
		bulk, err := BuildBulkValues(3, [][]interface{}{{10}, {11}, {12}}, 1)
		require.NoError(t, err)
		assert.Equal(t, "($1, $2), ($1, $3), ($1, $4)", bulk.Placeholders)
		assert.Equal(t, []interface{}{3, 10, 11, 12}, bulk.Values)
	})

	t.Run("rejects empty rows", func(t *testing.T) {
		bulk, err := BuildBulkValues(1, nil, 2)
		assert.Nil(t, bulk)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects arity mismatch", func(t *testing.T) {
		bulk, err := BuildBulkValues(1, [][]interface{}{{"only"}}, 2)
		assert.Nil(t, bulk)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
