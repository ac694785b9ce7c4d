package quantum

import (
	"fmt"
	"slices"
)

// Program is an immutable, replayable gate sequence over a fixed layout,
// together with the registers read out at the end.
type Program struct {
	layout   Layout
	gates    []Gate
	measured []Register
}

// NewProgram checks every gate against the layout and freezes the result.
func NewProgram(layout *Layout, measured []Register, fragments ...Fragment) (*Program, error) {
	p := &Program{layout: layout.clone()}
	n := p.layout.NumQubits()

	for _, g := range Sequence(fragments...) {
		if err := validateGate(g, n); err != nil {
			return nil, err
		}
		p.gates = append(p.gates, Gate{Kind: g.Kind, Target: g.Target, Controls: slices.Clone(g.Controls)})
	}
	for _, r := range measured {
		for _, q := range r.Qubits {
			if q < 0 || q >= n {
				return nil, &DimensionError{Qubit: q, NumQubits: n, Reason: fmt.Sprintf("measured register %q out of range", r.Name)}
			}
		}
		p.measured = append(p.measured, Register{Name: r.Name, Qubits: slices.Clone(r.Qubits)})
	}
	return p, nil
}

// NumQubits is the width the engine must allocate.
func (p *Program) NumQubits() int { return p.layout.NumQubits() }

// Len is the number of gates, barriers included.
func (p *Program) Len() int { return len(p.gates) }

// Gates returns a copy of the gate list.
func (p *Program) Gates() []Gate {
	out := make([]Gate, len(p.gates))
	for i, g := range p.gates {
		out[i] = Gate{Kind: g.Kind, Target: g.Target, Controls: slices.Clone(g.Controls)}
	}
	return out
}

// Layout returns a copy of the program's register layout.
func (p *Program) Layout() *Layout {
	l := p.layout.clone()
	return &l
}

// Measured returns the registers read out at the end of the program.
func (p *Program) Measured() []Register {
	out := make([]Register, len(p.measured))
	for i, r := range p.measured {
		out[i] = Register{Name: r.Name, Qubits: slices.Clone(r.Qubits)}
	}
	return out
}

// Depth is the number of time steps after scheduling, barriers excluded.
func (p *Program) Depth() int {
	gates := slices.DeleteFunc(p.Gates(), func(g Gate) bool { return g.Kind == KindBarrier })
	_, depth := Schedule(gates, p.NumQubits())
	return depth
}

func validateGate(g Gate, numQubits int) error {
	if !g.Kind.known() {
		return &DimensionError{Qubit: -1, NumQubits: numQubits, Reason: fmt.Sprintf("unknown gate kind %q", g.Kind)}
	}
	if g.Kind == KindBarrier {
		return nil
	}
	if g.Target < 0 || g.Target >= numQubits {
		return &DimensionError{Qubit: g.Target, NumQubits: numQubits, Reason: "target out of range"}
	}
	for i, c := range g.Controls {
		if c < 0 || c >= numQubits {
			return &DimensionError{Qubit: c, NumQubits: numQubits, Reason: "control out of range"}
		}
		if c == g.Target {
			return &DimensionError{Qubit: c, NumQubits: numQubits, Reason: "control overlaps target"}
		}
		if slices.Contains(g.Controls[:i], c) {
			return &DimensionError{Qubit: c, NumQubits: numQubits, Reason: "duplicate control"}
		}
	}
	return nil
}
