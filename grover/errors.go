package grover

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCode is returned when extraction finds no nonzero codeword.
	ErrEmptyCode = errors.New("grover: no nonzero codeword found")

	// ErrSearchExhausted matches every *SearchExhaustedError.
	ErrSearchExhausted = errors.New("grover: distance search exhausted")

	// ErrNotAmplified is returned in exact mode when the most probable
	// outcomes are not codewords at all, i.e. the iteration count rotated
	// past the marked subspace.
	ErrNotAmplified = errors.New("grover: codewords were not amplified")
)

// SearchExhaustedError reports that the adaptive threshold passed its cap
// without any threshold yielding a significant nonzero codeword.
type SearchExhaustedError struct {
	First int // first threshold tried
	Cap   int // last threshold allowed (n+1)
	// Empty is set when outcomes were significant but none was a nonzero
	// codeword, i.e. the null space looked like {0}.
	Empty bool
}

func (e *SearchExhaustedError) Error() string {
	if e.Empty {
		return fmt.Sprintf("grover: only the zero word was amplified for thresholds %d..%d", e.First, e.Cap)
	}
	return fmt.Sprintf("grover: no codeword amplified for thresholds %d..%d", e.First, e.Cap)
}

// Is matches ErrSearchExhausted, and ErrEmptyCode when Empty is set.
func (e *SearchExhaustedError) Is(target error) bool {
	return target == ErrSearchExhausted || (e.Empty && target == ErrEmptyCode)
}
