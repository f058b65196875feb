package ballistics

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory computations.
var (
	// ErrInvalidAcceleration indicates an acceleration of zero where the
	// closed form divides by it.
	ErrInvalidAcceleration = errors.New("ballistics: invalid acceleration (zero)")

	// ErrNoTouchdown indicates the target height is never reached.
	ErrNoTouchdown = errors.New("ballistics: target height is unreachable")

	// ErrInvalidSampleRange indicates a reversed interval under strict
	// validation, or an interval that yields no samples.
	ErrInvalidSampleRange = errors.New("ballistics: invalid sample range")
)

// ParamError wraps an error with the parameters of the failing call.
type ParamError struct {
	Op           string
	Acceleration float64
	Target       float64
	Start        float64
	End          float64
	Err          error
}

func (e *ParamError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidSampleRange):
		return fmt.Sprintf("%s (start=%g, end=%g): %v", e.Op, e.Start, e.End, e.Err)
	case errors.Is(e.Err, ErrNoTouchdown):
		return fmt.Sprintf("%s (target=%g, a=%g): %v", e.Op, e.Target, e.Acceleration, e.Err)
	default:
		return fmt.Sprintf("%s (a=%g): %v", e.Op, e.Acceleration, e.Err)
	}
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
