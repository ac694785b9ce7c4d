package gf2

import (
	"fmt"
	"math/bits"
)

// MaxEnumerate bounds the code length NullSpace will walk exhaustively.
const MaxEnumerate = 24

// NullSpace enumerates every x with Hx = 0, including the zero word, in
// increasing integer order of x read with bit j = x_j.
func (h *Matrix) NullSpace() ([]string, error) {
	if h.n > MaxEnumerate {
		return nil, fmt.Errorf("length %d exceeds %d: %w", h.n, MaxEnumerate, ErrEnumerationLimit)
	}

	masks := make([]uint64, h.m)
	for i := range h.m {
		for _, j := range h.Support(i) {
			masks[i] |= 1 << uint(j)
		}
	}

	var words []string
	for x := uint64(0); x < 1<<uint(h.n); x++ {
		ok := true
		for _, mask := range masks {
			if bits.OnesCount64(x&mask)%2 == 1 {
				ok = false
				break
			}
		}
		if ok {
			words = append(words, WordFromIndex(x, h.n))
		}
	}
	return words, nil
}

// MinDistance returns the minimum weight over nonzero codewords. ok is false
// when the null space is {0}.
func (h *Matrix) MinDistance() (d int, ok bool, err error) {
	words, err := h.NullSpace()
	if err != nil {
		return 0, false, err
	}
	for _, w := range words {
		wt := Weight(w)
		if wt == 0 {
			continue
		}
		if !ok || wt < d {
			d, ok = wt, true
		}
	}
	return d, ok, nil
}
