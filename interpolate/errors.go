package interpolate

import (
	"fmt"
)

// DomainError reports a degenerate interpolation window, i.e. one where the
// lower bound is not strictly below the upper bound.
type DomainError struct {
	T0, T1 float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf(
		"interpolation window [%g, %g] is degenerate: need t0 < t1.", e.T0, e.T1,
	)
}
