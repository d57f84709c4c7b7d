// Package saga runs an ordered list of dependent writes and compensates the completed
// ones, newest first, when a later write fails.
package saga

import (
	"context"
	"errors"
	"fmt"
)

type Action func(ctx context.Context) error

type Step struct {
	Name string
	Do   Action
	Undo Action // nil when the step has nothing to compensate
}

// Error reports the step that failed. Compensation failures are kept alongside the cause
// but never replace it.
type Error struct {
	Step         string
	Err          error
	Compensation []error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Compensated reports whether every undo ran cleanly.
func (e *Error) Compensated() bool { return len(e.Compensation) == 0 }

// CompensationError joins the undo failures, or returns nil.
func (e *Error) CompensationError() error { return errors.Join(e.Compensation...) }

type Saga struct {
	steps []Step
}

func New(steps ...Step) *Saga {
	return &Saga{steps: steps}
}

func (s *Saga) Add(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Run executes each Do in order. On the first failure it runs the Undo of every step that
// already completed, in reverse, continuing past undo failures. No step is retried.
func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Do(ctx); err != nil {
			return &Error{
				Step:         step.Name,
				Err:          err,
				Compensation: s.compensate(ctx, i),
			}
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, failed int) []error {
	var errs []error
	for i := failed - 1; i >= 0; i-- {
		undo := s.steps[i].Undo
		if undo == nil {
			continue
		}
		if err := undo(ctx); err != nil {
			errs = append(errs, fmt.Errorf("undo %s: %w", s.steps[i].Name, err))
		}
	}
	return errs
}
