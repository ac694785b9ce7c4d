// Package gf2 holds binary parity-check matrices and the word arithmetic the
// search needs: syndromes, weights, rank and a brute-force null space.
package gf2

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Matrix is an immutable m×n parity-check matrix over GF(2).
type Matrix struct {
	rows []*bitset.BitSet
	m, n int
}

// NewMatrix validates entries and copies them into a Matrix.
func NewMatrix(entries [][]int) (*Matrix, error) {
	if len(entries) == 0 {
		return nil, &InputError{Row: -1, Col: -1, Reason: "matrix has no rows"}
	}
	n := len(entries[0])
	if n == 0 {
		return nil, &InputError{Row: 0, Col: -1, Reason: "matrix has no columns"}
	}

	h := &Matrix{rows: make([]*bitset.BitSet, len(entries)), m: len(entries), n: n}
	for i, row := range entries {
		if len(row) != n {
			return nil, &InputError{Row: i, Col: -1, Reason: fmt.Sprintf("row has %d entries, want %d", len(row), n)}
		}
		bs := bitset.New(uint(n))
		for j, v := range row {
			switch v {
			case 0:
			case 1:
				bs.Set(uint(j))
			default:
				return nil, &InputError{Row: i, Col: j, Reason: fmt.Sprintf("entry %d is not binary", v)}
			}
		}
		h.rows[i] = bs
	}
	return h, nil
}

// ParseMatrix reads rows of '0'/'1' characters separated by ';', ',' or
// newlines. Spaces inside a row are ignored.
func ParseMatrix(s string) (*Matrix, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == '\n'
	})

	var entries [][]int
	for _, f := range fields {
		f = strings.Join(strings.Fields(f), "")
		if f == "" {
			continue
		}
		row := make([]int, 0, len(f))
		for j, r := range f {
			switch r {
			case '0':
				row = append(row, 0)
			case '1':
				row = append(row, 1)
			default:
				return nil, &InputError{Row: len(entries), Col: j, Reason: fmt.Sprintf("character %q is not binary", r)}
			}
		}
		entries = append(entries, row)
	}
	return NewMatrix(entries)
}

// MustParse is ParseMatrix for literals known to be valid.
func MustParse(s string) *Matrix {
	h, err := ParseMatrix(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Rows returns m, the number of parity checks.
func (h *Matrix) Rows() int { return h.m }

// Cols returns n, the code length.
func (h *Matrix) Cols() int { return h.n }

// At reports whether H[i][j] is 1.
func (h *Matrix) At(i, j int) bool {
	return h.rows[i].Test(uint(j))
}

// Support returns the column indices j with H[i][j] = 1, ascending.
func (h *Matrix) Support(i int) []int {
	out := make([]int, 0, h.rows[i].Count())
	for j, ok := h.rows[i].NextSet(0); ok; j, ok = h.rows[i].NextSet(j + 1) {
		out = append(out, int(j))
	}
	return out
}

// Syndrome returns Hx as a bitset of length m. The word must have length n.
func (h *Matrix) Syndrome(x *bitset.BitSet) *bitset.BitSet {
	s := bitset.New(uint(h.m))
	for i, row := range h.rows {
		if row.IntersectionCardinality(x)%2 == 1 {
			s.Set(uint(i))
		}
	}
	return s
}

// IsCodeword reports whether the word satisfies Hx = 0. Words of the wrong
// length or with non-binary characters are never codewords.
func (h *Matrix) IsCodeword(word string) bool {
	x, err := WordBits(word)
	if err != nil || len(word) != h.n {
		return false
	}
	return h.Syndrome(x).None()
}

// Rank returns the GF(2) rank of H.
func (h *Matrix) Rank() int {
	work := make([]*bitset.BitSet, h.m)
	for i, row := range h.rows {
		work[i] = row.Clone()
	}

	rank := 0
	for col := 0; col < h.n && rank < h.m; col++ {
		pivot := -1
		for r := rank; r < h.m; r++ {
			if work[r].Test(uint(col)) {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		work[rank], work[pivot] = work[pivot], work[rank]
		for r := range h.m {
			if r != rank && work[r].Test(uint(col)) {
				work[r].InPlaceSymmetricDifference(work[rank])
			}
		}
		rank++
	}
	return rank
}

// String renders the matrix one row per line.
func (h *Matrix) String() string {
	var sb strings.Builder
	for i := range h.m {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := range h.n {
			if h.At(i, j) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}
