package grover

import "github.com/qcodeword/qcodeword/quantum"

// Diffusion reflects the data register about its uniform superposition.
func Diffusion(data quantum.Register) quantum.Fragment {
	last := data.Last()
	return quantum.Sequence(
		quantum.H(data.Qubits...),
		quantum.X(data.Qubits...),
		quantum.H(last),
		quantum.MCX(data.Qubits[:data.Size()-1], last),
		quantum.H(last),
		quantum.X(data.Qubits...),
		quantum.H(data.Qubits...),
	)
}
