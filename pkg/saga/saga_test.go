package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaga_RunAllSteps(t *testing.T) {
	var order []string

	s := New(
		Step{Name: "one", Run: func(ctx context.Context) error {
			order = append(order, "one")
			return nil
		}},
		Step{Name: "two", Run: func(ctx context.Context) error {
			order = append(order, "two")
			return nil
		}},
	)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"one", "two"}, order)
}

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var order []string
	boom := errors.New("step three failed")

	s := New(
		Step{
			Name:       "one",
			Run:        func(ctx context.Context) error { order = append(order, "run:one"); return nil },
			Compensate: func(ctx context.Context) error { order = append(order, "comp:one"); return nil },
		},
		Step{
			Name:       "two",
			Run:        func(ctx context.Context) error { order = append(order, "run:two"); return nil },
			Compensate: func(ctx context.Context) error { order = append(order, "comp:two"); return nil },
		},
		Step{
			Name: "three",
			Run:  func(ctx context.Context) error { return boom },
		},
	)

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"run:one", "run:two", "comp:two", "comp:one"}, order)
}

func TestSaga_FailedStepIsNotCompensated(t *testing.T) {
	var compensated []string

	s := New(
		Step{
			Name:       "insert",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { compensated = append(compensated, "insert"); return nil },
		},
		Step{
			Name:       "associate",
			Run:        func(ctx context.Context) error { return errors.New("association failed") },
			Compensate: func(ctx context.Context) error { compensated = append(compensated, "associate"); return nil },
		},
	)

	assert.Error(t, s.Run(context.Background()))
	// only the completed step unwinds
	assert.Equal(t, []string{"insert"}, compensated)
}

func TestSaga_CompensationFailureReportedNotReturned(t *testing.T) {
	original := errors.New("original failure")
	compErr := errors.New("cleanup failed")

	var reported []CompensationError
	s := New(
		Step{
			Name:       "insert",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { return compErr },
		},
		Step{
			Name: "later",
			Run:  func(ctx context.Context) error { return original },
		},
	).OnCompensationError(func(ce CompensationError) {
		reported = append(reported, ce)
	})

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, original)
	require.Len(t, reported, 1)
	assert.Equal(t, "insert", reported[0].Step)
	assert.ErrorIs(t, reported[0].Err, compErr)
}

func TestSaga_CompensationRunsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	compensated := false
	s := New(
		Step{
			Name:       "insert",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				require.NoError(t, ctx.Err())
				compensated = true
				return nil
			},
		},
		Step{
			Name: "geocode",
			Run: func(ctx context.Context) error {
				cancel()
				return ctx.Err()
			},
		},
	)

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, compensated)
}
