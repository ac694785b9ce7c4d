package grover

import (
	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/quantum"
)

// ParityCompute XORs each parity check into its ancilla: a CNOT from data
// qubit j into ancilla i for every H[i][j] = 1. The fragment is its own
// inverse, so applying it twice restores the ancillas.
func ParityCompute(h *gf2.Matrix, data, ancilla quantum.Register) quantum.Fragment {
	var f quantum.Fragment
	for i := range h.Rows() {
		for _, j := range h.Support(i) {
			f = append(f, quantum.CX(data.Qubits[j], ancilla.Qubits[i])...)
		}
	}
	return f
}

// FlagOracle flips flag where the syndrome is zero, then uncomputes the
// syndrome. With flag prepared in |−⟩ the flip becomes a phase of −1 on
// every codeword.
func FlagOracle(h *gf2.Matrix, data, ancilla quantum.Register, flag int) quantum.Fragment {
	compute := ParityCompute(h, data, ancilla)
	return quantum.Sequence(
		compute,
		quantum.X(ancilla.Qubits...),
		quantum.MCX(ancilla.Qubits, flag),
		quantum.X(ancilla.Qubits...),
		compute,
	)
}

// PhaseOracle negates the amplitude of every codeword without a flag
// qubit: the zero-syndrome test drives a multi-controlled Z built as a
// Hadamard-sandwiched MCX on the last ancilla.
func PhaseOracle(h *gf2.Matrix, data, ancilla quantum.Register) quantum.Fragment {
	compute := ParityCompute(h, data, ancilla)
	last := ancilla.Last()
	return quantum.Sequence(
		compute,
		quantum.X(ancilla.Qubits...),
		quantum.H(last),
		quantum.MCX(ancilla.Qubits[:ancilla.Size()-1], last),
		quantum.H(last),
		quantum.X(ancilla.Qubits...),
		compute,
	)
}
