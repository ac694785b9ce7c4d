package grover

import (
	"math/bits"

	"github.com/qcodeword/qcodeword/quantum"
)

// CounterWidth is the number of counter qubits needed to hold any weight
// 0..n.
func CounterWidth(n int) int {
	return max(bits.Len(uint(n)), 1)
}

// WeightCounter adds popcount(data) into counter. Each data qubit performs
// a ripple increment, high bit first: counter bit k flips when the data
// qubit and every lower counter bit are 1.
func WeightCounter(data, counter quantum.Register) quantum.Fragment {
	var f quantum.Fragment
	for _, d := range data.Qubits {
		for k := counter.Size() - 1; k >= 0; k-- {
			controls := append([]int{d}, counter.Qubits[:k]...)
			f = append(f, quantum.MCX(controls, counter.Qubits[k])...)
		}
	}
	return f
}

// LessThan flips flag iff the counter value is strictly below t. For each
// set bit i of t it fires on "counter bits above i equal t's, bit i is 0";
// those cases are disjoint and together cover counter < t. Zero-valued
// controls are realised by X on both sides.
func LessThan(counter quantum.Register, flag, t int) quantum.Fragment {
	width := counter.Size()
	switch {
	case t <= 0:
		return nil
	case t >= 1<<width:
		return quantum.X(flag)
	}

	var f quantum.Fragment
	for i := width - 1; i >= 0; i-- {
		if t>>i&1 == 0 {
			continue
		}
		var zeros []int
		controls := []int{counter.Qubits[i]}
		zeros = append(zeros, counter.Qubits[i])
		for j := i + 1; j < width; j++ {
			controls = append(controls, counter.Qubits[j])
			if t>>j&1 == 0 {
				zeros = append(zeros, counter.Qubits[j])
			}
		}
		f = append(f, quantum.Sequence(
			quantum.X(zeros...),
			quantum.MCX(controls, flag),
			quantum.X(zeros...),
		)...)
	}
	return f
}
