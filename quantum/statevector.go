// Package quantum simulates gate programs over named qubit registers on a
// dense state vector, and exports them as OpenQASM 2.0.
package quantum

import "fmt"

// MaxQubits bounds allocation: 2^26 amplitudes is 1 GiB of complex128.
const MaxQubits = 26

// StateVector is a dense amplitude vector over NumQubits qubits. Basis index
// bit q holds the value of qubit q.
type StateVector struct {
	amplitudes []complex128
	numQubits  int
}

// Allocate returns |0…0⟩ over numQubits qubits.
func Allocate(numQubits int) (*StateVector, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, &DimensionError{Qubit: -1, NumQubits: numQubits, Reason: fmt.Sprintf("cannot allocate, supported range is 1..%d", MaxQubits)}
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{amplitudes: amps, numQubits: numQubits}, nil
}

// Run allocates exactly the program's width and applies every gate.
func Run(p *Program) (*StateVector, error) {
	s, err := Allocate(p.NumQubits())
	if err != nil {
		return nil, err
	}
	for _, g := range p.gates {
		if err := s.Apply(g); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NumQubits returns the register width.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Amplitude returns the amplitude of a basis state.
func (s *StateVector) Amplitude(index uint64) complex128 {
	return s.amplitudes[index]
}

// Apply applies a gate in place. Controls restrict the update to basis
// states where every control bit is 1.
func (s *StateVector) Apply(g Gate) error {
	if err := validateGate(g, s.numQubits); err != nil {
		return err
	}
	if g.Kind == KindBarrier {
		return nil
	}

	var cmask int
	for _, c := range g.Controls {
		cmask |= 1 << c
	}
	switch {
	case g.Kind == KindX:
		s.applyX(g.Target, cmask)
	case g.Kind.diagonal():
		_, _, _, phase := g.Kind.matrix()
		s.applyPhase(g.Target, cmask, phase)
	default:
		s.applyUnitary(g.Target, cmask, g.Kind)
	}
	return nil
}

func (s *StateVector) applyX(q, cmask int) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit == 0 && i&cmask == cmask {
			j := i | bit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

func (s *StateVector) applyPhase(q, cmask int, phase complex128) {
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit != 0 && i&cmask == cmask {
			s.amplitudes[i] *= phase
		}
	}
}

func (s *StateVector) applyUnitary(q, cmask int, kind GateKind) {
	u00, u01, u10, u11 := kind.matrix()
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit == 0 && i&cmask == cmask {
			j := i | bit
			a0, a1 := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = u00*a0 + u01*a1
			s.amplitudes[j] = u10*a0 + u11*a1
		}
	}
}

// Norm returns the total probability Σ|a|².
func (s *StateVector) Norm() float64 {
	var total float64
	for _, a := range s.amplitudes {
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	return total
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns every qubit's marginal.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, a := range s.amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		for q := range s.numQubits {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// Probabilities returns every basis outcome whose probability exceeds
// Epsilon, in increasing index order.
func (s *StateVector) Probabilities() *Distribution {
	d := &Distribution{numQubits: s.numQubits}
	for i, a := range s.amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p > Epsilon {
			d.outcomes = append(d.outcomes, Outcome{Index: uint64(i), Probability: p})
		}
	}
	return d
}

// Sample draws shots outcomes from the current state without collapsing it.
func (s *StateVector) Sample(shots int, seed uint64) (Counts, error) {
	return s.Probabilities().Sample(shots, seed)
}
