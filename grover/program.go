package grover

import (
	"fmt"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/quantum"
)

// Register names used in the programs this package builds.
const (
	RegisterData    = "data"
	RegisterAncilla = "ancilla"
	RegisterCounter = "counter"
	RegisterFlag    = "flag"
)

// ExactProgram prepares the data register in uniform superposition and the
// flag in |−⟩, applies iterations rounds of FlagOracle+Diffusion, and
// returns the flag to |0⟩.
func ExactProgram(h *gf2.Matrix, iterations int) *quantum.Program {
	var layout quantum.Layout
	data := layout.Add(RegisterData, h.Cols())
	ancilla := layout.Add(RegisterAncilla, h.Rows())
	flag := layout.Add(RegisterFlag, 1).Qubits[0]

	round := quantum.Sequence(
		FlagOracle(h, data, ancilla, flag),
		Diffusion(data),
		quantum.Barrier(),
	)
	return mustBuild(&layout, []quantum.Register{data},
		quantum.H(data.Qubits...),
		quantum.X(flag),
		quantum.H(flag),
		quantum.Barrier(),
		round.Repeat(iterations),
		quantum.H(flag),
		quantum.X(flag),
	)
}

// ThresholdProgram amplifies codewords with iterations rounds of
// PhaseOracle+Diffusion, then counts the data weight and sets the flag iff
// that weight is below threshold. The counter is left holding the weight.
func ThresholdProgram(h *gf2.Matrix, threshold, iterations int) *quantum.Program {
	var layout quantum.Layout
	data := layout.Add(RegisterData, h.Cols())
	ancilla := layout.Add(RegisterAncilla, h.Rows())
	counter := layout.Add(RegisterCounter, CounterWidth(h.Cols()))
	flag := layout.Add(RegisterFlag, 1)

	round := quantum.Sequence(
		PhaseOracle(h, data, ancilla),
		Diffusion(data),
		quantum.Barrier(),
	)
	return mustBuild(&layout, []quantum.Register{data, counter, flag},
		quantum.H(data.Qubits...),
		quantum.Barrier(),
		round.Repeat(iterations),
		WeightCounter(data, counter),
		quantum.Barrier(),
		LessThan(counter, flag.Qubits[0], threshold),
	)
}

func mustBuild(layout *quantum.Layout, measured []quantum.Register, fragments ...quantum.Fragment) *quantum.Program {
	p, err := quantum.NewProgram(layout, measured, fragments...)
	if err != nil {
		panic(fmt.Sprintf("grover: internal circuit error: %v", err))
	}
	return p
}
