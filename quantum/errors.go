package quantum

import (
	"errors"
	"fmt"
)

// ErrDimension matches every addressing error raised by programs and the
// state-vector engine.
var ErrDimension = errors.New("quantum: invalid qubit addressing")

// DimensionError reports a gate or allocation that does not fit the
// register it was applied to.
type DimensionError struct {
	Qubit     int // offending index, -1 when not applicable
	NumQubits int
	Reason    string
}

func (e *DimensionError) Error() string {
	if e.Qubit < 0 {
		return fmt.Sprintf("quantum: %s (%d qubits)", e.Reason, e.NumQubits)
	}
	return fmt.Sprintf("quantum: qubit %d: %s (%d qubits)", e.Qubit, e.Reason, e.NumQubits)
}

// Is lets errors.Is(err, ErrDimension) match any *DimensionError.
func (e *DimensionError) Is(target error) bool { return target == ErrDimension }
