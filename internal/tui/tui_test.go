package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/grover"
	"github.com/qcodeword/qcodeword/quantum"
)

func solved(t *testing.T) *grover.Result {
	t.Helper()
	s := grover.NewSolver(grover.WithLogger(log.New(io.Discard)))
	res, err := s.SolveExact(gf2.MustParse("110"))
	if err != nil {
		t.Fatalf("SolveExact: %v", err)
	}
	return res
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestPadCenter(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"H", 5, "  H  "},
		{"SDG", 5, " SDG "},
		{"┴", 5, "  ┴  "},
		{"BARRIER", 5, "BARRI"},
	}
	for _, tt := range tests {
		if got := padCenter(tt.in, tt.width); got != tt.want {
			t.Errorf("padCenter(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestGridCells(t *testing.T) {
	var layout quantum.Layout
	layout.Add("data", 3)
	p, err := quantum.NewProgram(&layout, nil,
		quantum.H(0),
		quantum.CX(0, 2),
		quantum.Barrier(),
		quantum.MCX([]int{0, 1}, 2),
	)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	g := newGrid(p)
	if g.columns != 4 {
		t.Fatalf("columns = %d, want 4", g.columns)
	}

	if c := g.cell(0, 0); c.gate == nil || c.isControl || c.isTarget {
		t.Errorf("H cell = %+v", c)
	}
	if c := g.cell(1, 0); !c.isControl || !c.vertBelow || c.vertAbove {
		t.Errorf("CX control cell = %+v", c)
	}
	if c := g.cell(1, 1); !c.passThrough || !c.vertAbove || !c.vertBelow {
		t.Errorf("CX pass-through cell = %+v", c)
	}
	if c := g.cell(1, 2); !c.isTarget || !c.vertAbove || c.vertBelow {
		t.Errorf("CX target cell = %+v", c)
	}
	for q := range 3 {
		if !g.cell(2, q).isBarrier {
			t.Errorf("qubit %d not barred at column 2", q)
		}
	}
	if c := g.cell(3, 1); !c.isControl || c.passThrough {
		t.Errorf("CCX middle control = %+v", c)
	}
	if c := g.cell(9, 9); c.gate != nil {
		t.Errorf("out of range cell = %+v", c)
	}

	if got := g.describe(3, 2); got != "ccx data[0], data[1], data[2]" {
		t.Errorf("describe = %q", got)
	}
	if got := g.describe(2, 0); got != "barrier" {
		t.Errorf("describe barrier = %q", got)
	}
}

func TestRenderCellWidths(t *testing.T) {
	x := quantum.Gate{Kind: quantum.KindX, Target: 1, Controls: []int{0}}
	h := quantum.Gate{Kind: quantum.KindH, Target: 0}
	ch := quantum.Gate{Kind: quantum.KindH, Target: 1, Controls: []int{0}}
	cells := []cellInfo{
		{},
		{gate: &h},
		{gate: &x, isControl: true, vertBelow: true},
		{gate: &x, isTarget: true, vertAbove: true},
		{gate: &ch, isTarget: true, vertAbove: true},
		{gate: &x, passThrough: true, vertAbove: true, vertBelow: true},
		{isBarrier: true},
	}
	for i, c := range cells {
		for _, hl := range []bool{false, true} {
			top, mid, bot := renderCell(c, hl)
			for j, line := range []string{top, mid, bot} {
				if w := lipgloss.Width(line); w != cellW {
					t.Errorf("cell %d highlight=%v line %d width = %d, want %d: %q", i, hl, j, w, cellW, line)
				}
			}
		}
	}
}

func TestModelNavigation(t *testing.T) {
	res := solved(t)
	m := New(res)
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q", got)
	}

	m = press(m, tea.WindowSizeMsg{Width: 160, Height: 50})
	view := m.View()
	if !strings.Contains(view, "[3,2,1]") {
		t.Errorf("view missing descriptor:\n%s", view)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursorStep != 2 || m.cursorQubit != 1 {
		t.Errorf("cursor = (%d, %d), want (2, 1)", m.cursorStep, m.cursorQubit)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.cursorStep != m.grid.columns-1 {
		t.Errorf("end: cursorStep = %d, want %d", m.cursorStep, m.grid.columns-1)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursorStep != m.grid.columns-1 {
		t.Errorf("cursor moved past the last column")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursorQubit != 0 {
		t.Errorf("cursorQubit = %d, want 0", m.cursorQubit)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusSide {
		t.Errorf("tab did not move focus to the side panel")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if m.page != pageQASM {
		t.Errorf("page = %v, want QASM", m.page)
	}
	if !strings.Contains(m.View(), "OPENQASM") {
		t.Errorf("QASM page not rendered")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	if m.page != pageQASM {
		t.Errorf("page after wrapping back = %v, want QASM", m.page)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp || !strings.Contains(m.View(), "Keys") {
		t.Errorf("help overlay not shown")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}

func TestSaveQASM(t *testing.T) {
	res := solved(t)
	path := filepath.Join(t.TempDir(), "out.qasm")
	m := press(New(res, WithQASMPath(path)), tea.WindowSizeMsg{Width: 120, Height: 40}, tea.KeyMsg{Type: tea.KeyCtrlS})

	if !strings.HasPrefix(m.statusMsg, "Saved") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	p, err := quantum.ParseQASM(string(raw))
	if err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}
	if p.Len() != res.Program.Len() {
		t.Errorf("saved %d gates, program has %d", p.Len(), res.Program.Len())
	}
}

func TestNilProgram(t *testing.T) {
	res := &grover.Result{Mode: grover.ModeThreshold, N: 3, K: 2, Distance: 1, Codewords: []string{"001"}}
	m := press(New(res), tea.WindowSizeMsg{Width: 100, Height: 30}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.cursorStep != 0 {
		t.Errorf("cursor moved in an empty grid")
	}
	if m.statusMsg != "Nothing to save" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if !strings.Contains(m.View(), "no program") {
		t.Errorf("empty circuit panel not rendered")
	}
}

func TestSummaryPage(t *testing.T) {
	res := &grover.Result{
		Mode: grover.ModeExact, N: 3, K: 2, Distance: 1, Codewords: []string{"001"},
		Iterations: 2, Rank: 1, OptimalIterations: 1,
		Marginals: []quantum.QubitProbability{{Prob0: 0.25, Prob1: 0.75}, {Prob0: 1}, {Prob1: 1}},
	}
	page := summaryPage(res)
	for _, want := range []string{"rank        1", "iterations  2 (optimal 1)", "Data qubit marginals", "P(1) 0.7500", "P(1) 0.0000"} {
		if !strings.Contains(page, want) {
			t.Errorf("summary missing %q:\n%s", want, page)
		}
	}

	res.Mode, res.OptimalIterations, res.Marginals = grover.ModeThreshold, 0, nil
	page = summaryPage(res)
	if strings.Contains(page, "optimal") || strings.Contains(page, "marginals") {
		t.Errorf("threshold summary shows exact-only fields:\n%s", page)
	}
}
