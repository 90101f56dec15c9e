// Package sqlfragment builds parameterized SQL fragments for partial updates
// and multi-row bulk inserts. It produces clause text and a bound value list;
// values are never interpolated into the SQL text.
package sqlfragment

import (
	"fmt"
	"strings"

	apperrors "github.com/tripfolio/backend/pkg/errors"
)

// Field is a single logical field and its new value. Fields are passed as an
// ordered slice so the generated clause order is deterministic.
type Field struct {
	Name  string
	Value interface{}
}

// PartialUpdate holds the SET clause and its bound values in clause order.
type PartialUpdate struct {
	SetClause string
	Values    []interface{}
}

// BuildPartialUpdate turns a sparse field list into a parameterized SET
// clause. columnMap maps logical field names to physical column names; fields
// absent from the map use their logical name as the column name. Placeholder
// indices are 1-based and contiguous.
func BuildPartialUpdate(fields []Field, columnMap map[string]string) (*PartialUpdate, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}

	clauses := make([]string, 0, len(fields))
	values := make([]interface{}, 0, len(fields))
	for i, f := range fields {
		column := f.Name
		if mapped, ok := columnMap[f.Name]; ok {
			column = mapped
		}
		clauses = append(clauses, fmt.Sprintf("%q=$%d", column, i+1))
		values = append(values, f.Value)
	}

	return &PartialUpdate{
		SetClause: strings.Join(clauses, ", "),
		Values:    values,
	}, nil
}

// BulkValues holds a multi-row VALUES placeholder string and the flat value
// list it binds. Values begin with the shared key, then each row's fields in
// input order.
type BulkValues struct {
	Placeholders string
	Values       []interface{}
}

// BuildBulkValues builds the VALUES groups for a bulk insert whose rows all
// share one leading value, typically the owning foreign key. The shared value
// binds once as $1 and the $1 placeholder is repeated in every group; row
// fields get strictly increasing indices starting at $2.
func BuildBulkValues(sharedKey interface{}, rows [][]interface{}, columnsPerRow int) (*BulkValues, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("no rows to insert")
	}

	values := make([]interface{}, 0, 1+len(rows)*columnsPerRow)
	values = append(values, sharedKey)

	groups := make([]string, 0, len(rows))
	next := 2
	for i, row := range rows {
		if len(row) != columnsPerRow {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), columnsPerRow))
		}
		placeholders := make([]string, 0, 1+columnsPerRow)
		placeholders = append(placeholders, "$1")
		for _, v := range row {
			placeholders = append(placeholders, fmt.Sprintf("$%d", next))
			values = append(values, v)
			next++
		}
		groups = append(groups, "("+strings.Join(placeholders, ", ")+")")
	}

	return &BulkValues{
		Placeholders: strings.Join(groups, ", "),
		Values:       values,
	}, nil
}
