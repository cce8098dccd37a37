package compiler

import (
	"errors"
	"fmt"
	"math"
)

// Validation error codes (E200-E209)
const (
	ErrCyclesNotPositive        = "E201" // cycles must be > 0
	ErrCycleDurationNotPositive = "E202" // cycle duration must be > 0 and finite
	ErrEventDurationNegative    = "E203" // event duration must be >= 0 and finite
)

// DefaultEventDurationMs caps event durations when Options leaves it unset.
const DefaultEventDurationMs = 3000

// Options controls a compile.
type Options struct {
	Cycles          int     `json:"cycles"`
	CycleDurationMs float64 `json:"cycle_duration_ms"`
	EventDurationMs float64 `json:"event_duration_ms"` // 0 means DefaultEventDurationMs
	Seed            int64   `json:"seed"`
}

// ValidationError describes one invalid option.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate returns every problem with o. An empty result means Compile will
// render events.
func (o Options) Validate() []ValidationError {
	var errs []ValidationError
	if o.Cycles <= 0 {
		errs = append(errs, ValidationError{
			Field:   "cycles",
			Message: fmt.Sprintf("must be positive, got %d", o.Cycles),
			Code:    ErrCyclesNotPositive,
		})
	}
	if !(o.CycleDurationMs > 0) || math.IsInf(o.CycleDurationMs, 0) {
		errs = append(errs, ValidationError{
			Field:   "cycle_duration_ms",
			Message: fmt.Sprintf("must be a positive number, got %v", o.CycleDurationMs),
			Code:    ErrCycleDurationNotPositive,
		})
	}
	if o.EventDurationMs < 0 || math.IsNaN(o.EventDurationMs) || math.IsInf(o.EventDurationMs, 0) {
		errs = append(errs, ValidationError{
			Field:   "event_duration_ms",
			Message: fmt.Sprintf("must be zero or positive, got %v", o.EventDurationMs),
			Code:    ErrEventDurationNegative,
		})
	}
	return errs
}

// Err folds Validate into a single error, or nil.
func (o Options) Err() error {
	verrs := o.Validate()
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i, e := range verrs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (o Options) withDefaults() Options {
	if o.EventDurationMs == 0 {
		o.EventDurationMs = DefaultEventDurationMs
	}
	return o
}
