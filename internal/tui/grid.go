package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/qcodeword/qcodeword/quantum"
)

// cellInfo describes what occupies one (column, qubit) cell of the diagram.
type cellInfo struct {
	gate        *quantum.Gate
	isControl   bool
	isTarget    bool
	isBarrier   bool
	passThrough bool // inside a controlled gate's span but not one of its qubits
	vertAbove   bool
	vertBelow   bool
}

// grid lays a program out in drawing columns.
type grid struct {
	layout  *quantum.Layout
	gates   []quantum.Gate
	columns int
	cells   [][]cellInfo // [column][qubit]
}

func newGrid(p *quantum.Program) grid {
	if p == nil {
		return grid{layout: &quantum.Layout{}}
	}
	g := grid{layout: p.Layout(), gates: p.Gates()}
	n := p.NumQubits()

	steps, width := quantum.ScheduleColumns(g.gates, n)
	g.columns = width
	g.cells = make([][]cellInfo, width)
	for c := range g.cells {
		g.cells[c] = make([]cellInfo, n)
	}

	for i := range g.gates {
		gate := &g.gates[i]
		col := g.cells[steps[i]]

		if gate.Kind == quantum.KindBarrier {
			for q := range col {
				col[q].isBarrier = true
				col[q].gate = gate
			}
			continue
		}

		lo, hi := gate.Target, gate.Target
		for _, c := range gate.Controls {
			lo, hi = min(lo, c), max(hi, c)
		}
		for q := lo; q <= hi; q++ {
			info := &col[q]
			info.gate = gate
			info.isControl = slices.Contains(gate.Controls, q)
			info.isTarget = q == gate.Target && len(gate.Controls) > 0
			info.passThrough = !info.isControl && q != gate.Target
			info.vertAbove = q > lo
			info.vertBelow = q < hi
		}
	}
	return g
}

func (g grid) numQubits() int { return g.layout.NumQubits() }

// cell returns the info at (column, qubit); out of range is an empty wire.
func (g grid) cell(column, qubit int) cellInfo {
	if column < 0 || column >= g.columns || qubit < 0 || qubit >= g.numQubits() {
		return cellInfo{}
	}
	return g.cells[column][qubit]
}

// label names a wire by register and offset, e.g. "anc[2]".
func (g grid) label(qubit int) string {
	if r, k, ok := g.layout.Locate(qubit); ok {
		return fmt.Sprintf("%s[%d]", shortName(r.Name), k)
	}
	return fmt.Sprintf("q[%d]", qubit)
}

func (g grid) labelWidth() int {
	w := 4
	for q := range g.numQubits() {
		w = max(w, len(g.label(q)))
	}
	return w + 2
}

// describe renders the gate touching (column, qubit) in QASM-like form.
func (g grid) describe(column, qubit int) string {
	info := g.cell(column, qubit)
	switch {
	case info.gate == nil:
		return "idle"
	case info.isBarrier:
		return "barrier"
	}
	operands := make([]string, 0, len(info.gate.Controls)+1)
	for _, q := range info.gate.Qubits() {
		operands = append(operands, g.label(q))
	}
	return strings.ToLower(info.gate.Name()) + " " + strings.Join(operands, ", ")
}

func shortName(name string) string {
	switch name {
	case "ancilla":
		return "anc"
	case "counter":
		return "cnt"
	}
	return name
}
