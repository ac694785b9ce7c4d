package gf2

import (
	"errors"
	"fmt"
)

// ErrInput matches every malformed-matrix error returned by this package.
var ErrInput = errors.New("gf2: malformed parity-check matrix")

// ErrEnumerationLimit is returned by NullSpace for codes longer than
// MaxEnumerate.
var ErrEnumerationLimit = errors.New("gf2: code too long to enumerate")

// InputError locates a malformed entry. Row or Col is -1 when the problem
// is not tied to a single position.
type InputError struct {
	Row    int
	Col    int
	Reason string
}

func (e *InputError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("gf2: %s", e.Reason)
	case e.Col < 0:
		return fmt.Sprintf("gf2: row %d: %s", e.Row, e.Reason)
	default:
		return fmt.Sprintf("gf2: row %d, col %d: %s", e.Row, e.Col, e.Reason)
	}
}

// Is lets errors.Is(err, ErrInput) match any *InputError.
func (e *InputError) Is(target error) bool { return target == ErrInput }
