package grover

import "math"

// ExactIterations approximates the Grover round count for an m×n system as
// round(n / 2^m), rounding halves to even.
func ExactIterations(n, m int) int {
	return int(math.RoundToEven(float64(n) / math.Exp2(float64(m))))
}

// OptimalIterations is ⌊(π/4)·√(2^n / solutions)⌋ for a known solution
// count. For a full-rank H the count is 2^(n−m).
func OptimalIterations(n int, solutions float64) int {
	if solutions <= 0 {
		return 0
	}
	return int(math.Floor(math.Pi / 4 * math.Sqrt(math.Exp2(float64(n))/solutions)))
}
