// Package saga runs an ordered list of steps with per-step compensating
// actions. It is used where a single storage transaction cannot span every
// step, e.g. when external network calls are interleaved with writes.
package saga

import "context"

// Step is one unit of a saga. Compensate is optional; steps without side
// effects that need reversing leave it nil.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// CompensationError reports a compensation that failed while unwinding.
type CompensationError struct {
	Step string
	Err  error
}

// Saga executes steps in order and unwinds on first failure.
type Saga struct {
	steps  []Step
	onComp func(CompensationError)
}

// New creates a new saga from the given steps.
func New(steps ...Step) *Saga {
	return &Saga{steps: steps}
}

// OnCompensationError registers a hook called for each failed compensation.
// Compensation failures never mask the original error; the hook exists so
// they can be logged for operational cleanup.
func (s *Saga) OnCompensationError(fn func(CompensationError)) *Saga {
	s.onComp = fn
	return s
}

// Run executes the steps in order. On the first failure it invokes the
// compensations of all previously completed steps in reverse order and
// returns the original error. Compensations run on a context detached from
// cancellation so an aborted request still cleans up.
func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.compensate(context.WithoutCancel(ctx), i-1)
			return err
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, from int) {
	for i := from; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil && s.onComp != nil {
			s.onComp(CompensationError{Step: step.Name, Err: err})
		}
	}
}
