package quantum

import (
	"math"
	"math/cmplx"
	"slices"
)

// GateKind names the single-qubit unitary a gate applies to its target.
// Controlled variants (CX, CCX, MCX, CZ) are the same kinds with controls.
type GateKind string

const (
	KindH       GateKind = "H"
	KindX       GateKind = "X"
	KindY       GateKind = "Y"
	KindZ       GateKind = "Z"
	KindS       GateKind = "S"
	KindSdg     GateKind = "SDG"
	KindT       GateKind = "T"
	KindTdg     GateKind = "TDG"
	KindBarrier GateKind = "BARRIER"
)

// Gate is one operation of a program: the unitary of Kind applied to Target
// wherever every qubit in Controls is 1.
type Gate struct {
	Kind     GateKind
	Target   int
	Controls []int
}

// Name is the conventional circuit name: "X" with one control is "CX",
// with two "CCX", with more "MCX".
func (g Gate) Name() string {
	switch {
	case g.Kind == KindBarrier:
		return "BARRIER"
	case len(g.Controls) == 0:
		return string(g.Kind)
	case g.Kind == KindX && len(g.Controls) == 2:
		return "CCX"
	case g.Kind == KindX && len(g.Controls) > 2:
		return "MCX"
	case len(g.Controls) == 1:
		return "C" + string(g.Kind)
	default:
		return "MC" + string(g.Kind)
	}
}

// Qubits returns controls followed by the target.
func (g Gate) Qubits() []int {
	if g.Kind == KindBarrier {
		return nil
	}
	return append(slices.Clone(g.Controls), g.Target)
}

// References reports whether the gate touches the qubit.
func (g Gate) References(qubit int) bool {
	return g.Kind != KindBarrier && (g.Target == qubit || slices.Contains(g.Controls, qubit))
}

// matrix returns the 2×2 unitary [[u00 u01] [u10 u11]] for the kind.
func (k GateKind) matrix() (u00, u01, u10, u11 complex128) {
	h := complex(1/math.Sqrt2, 0)
	switch k {
	case KindH:
		return h, h, h, -h
	case KindX:
		return 0, 1, 1, 0
	case KindY:
		return 0, -1i, 1i, 0
	case KindZ:
		return 1, 0, 0, -1
	case KindS:
		return 1, 0, 0, 1i
	case KindSdg:
		return 1, 0, 0, -1i
	case KindT:
		return 1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))
	case KindTdg:
		return 1, 0, 0, cmplx.Exp(complex(0, -math.Pi/4))
	}
	return 1, 0, 0, 1
}

// diagonal reports whether the kind only rephases |1⟩.
func (k GateKind) diagonal() bool {
	switch k {
	case KindZ, KindS, KindSdg, KindT, KindTdg:
		return true
	}
	return false
}

func (k GateKind) known() bool {
	switch k {
	case KindH, KindX, KindY, KindZ, KindS, KindSdg, KindT, KindTdg, KindBarrier:
		return true
	}
	return false
}

// Fragment is an ordered run of gates produced by a builder. Fragments are
// values: combining them never mutates an operand.
type Fragment []Gate

func single(kind GateKind, qubits []int) Fragment {
	f := make(Fragment, 0, len(qubits))
	for _, q := range qubits {
		f = append(f, Gate{Kind: kind, Target: q})
	}
	return f
}

// H applies a Hadamard to each qubit.
func H(qubits ...int) Fragment { return single(KindH, qubits) }

// X applies a Pauli-X to each qubit.
func X(qubits ...int) Fragment { return single(KindX, qubits) }

// Z applies a Pauli-Z to each qubit.
func Z(qubits ...int) Fragment { return single(KindZ, qubits) }

// CX is a controlled NOT.
func CX(control, target int) Fragment {
	return Fragment{{Kind: KindX, Target: target, Controls: []int{control}}}
}

// CZ is a controlled Z.
func CZ(control, target int) Fragment {
	return Fragment{{Kind: KindZ, Target: target, Controls: []int{control}}}
}

// MCX flips target where every control is 1. No controls degenerates to X.
func MCX(controls []int, target int) Fragment {
	return Fragment{{Kind: KindX, Target: target, Controls: slices.Clone(controls)}}
}

// Barrier separates logical stages; the engine ignores it.
func Barrier() Fragment {
	return Fragment{{Kind: KindBarrier, Target: -1}}
}

// Sequence concatenates fragments into a new one.
func Sequence(parts ...Fragment) Fragment {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make(Fragment, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Repeat returns k back-to-back copies of f.
func (f Fragment) Repeat(k int) Fragment {
	out := make(Fragment, 0, len(f)*max(k, 0))
	for range k {
		out = append(out, f...)
	}
	return out
}
