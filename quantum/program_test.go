package quantum

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func testLayout() (*Layout, Register, Register, Register) {
	var l Layout
	data := l.Add("data", 3)
	anc := l.Add("ancilla", 2)
	flag := l.Add("flag", 1)
	return &l, data, anc, flag
}

func TestLayoutRegistersAreDisjoint(t *testing.T) {
	l, data, anc, flag := testLayout()
	if l.NumQubits() != 6 {
		t.Fatalf("expected 6 qubits, got %d", l.NumQubits())
	}
	if anc.Qubits[0] != 3 || flag.Qubits[0] != 5 || data.Last() != 2 {
		t.Errorf("unexpected allocation: data=%v ancilla=%v flag=%v", data.Qubits, anc.Qubits, flag.Qubits)
	}

	r, off, ok := l.Locate(4)
	if !ok || r.Name != "ancilla" || off != 1 {
		t.Errorf("Locate(4) = %s[%d] ok=%v", r.Name, off, ok)
	}
	if _, ok := l.Register("counter"); ok {
		t.Error("unexpected register counter")
	}
}

func TestRegisterBitsAndValue(t *testing.T) {
	_, data, anc, _ := testLayout()
	index := uint64(0b011_101) // data = q0..q2 = 1,0,1 ; ancilla = q3,q4 = 1,1
	if got := data.Bits(index); got != "101" {
		t.Errorf("data bits = %q, want 101", got)
	}
	if got := anc.Value(index); got != 3 {
		t.Errorf("ancilla value = %d, want 3", got)
	}
	if got := data.Value(index); got != 5 {
		t.Errorf("data value = %d, want 5", got)
	}
}

func TestNewProgramValidates(t *testing.T) {
	l, _, _, _ := testLayout()
	_, err := NewProgram(l, nil, CX(0, 9))
	if !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension, got %v", err)
	}
	_, err = NewProgram(l, []Register{{Name: "bogus", Qubits: []int{7}}})
	if !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension for measured register, got %v", err)
	}
}

func TestProgramIsImmutable(t *testing.T) {
	l, data, _, _ := testLayout()
	controls := []int{0, 1}
	p, err := NewProgram(l, []Register{data}, MCX(controls, 2))
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	controls[0] = 5
	l.Add("late", 4)
	gates := p.Gates()
	gates[0].Controls[1] = 4

	if got := p.Gates()[0].Controls; got[0] != 0 || got[1] != 1 {
		t.Errorf("program gates mutated: %v", got)
	}
	if p.NumQubits() != 6 {
		t.Errorf("program layout mutated: %d qubits", p.NumQubits())
	}
}

func TestGateNames(t *testing.T) {
	tests := []struct {
		gate Gate
		want string
	}{
		{H(0)[0], "H"},
		{CX(0, 1)[0], "CX"},
		{MCX([]int{0, 1}, 2)[0], "CCX"},
		{MCX([]int{0, 1, 2}, 3)[0], "MCX"},
		{MCX(nil, 3)[0], "X"},
		{CZ(0, 1)[0], "CZ"},
		{Gate{Kind: KindZ, Target: 2, Controls: []int{0, 1}}, "MCZ"},
		{Barrier()[0], "BARRIER"},
	}
	for _, tt := range tests {
		if got := tt.gate.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestFragmentRepeat(t *testing.T) {
	f := Sequence(H(0), CX(0, 1))
	if got := len(f.Repeat(3)); got != 6 {
		t.Errorf("Repeat(3) has %d gates, want 6", got)
	}
	if got := len(f.Repeat(0)); got != 0 {
		t.Errorf("Repeat(0) has %d gates, want 0", got)
	}
}

func TestScheduleParallelGates(t *testing.T) {
	gates := Sequence(H(0), H(1), CX(0, 1), X(2), Barrier(), X(3))
	steps, depth := Schedule(gates, 4)

	if steps[0] != steps[1] {
		t.Errorf("H q0 at step %d, H q1 at step %d - expected same step", steps[0], steps[1])
	}
	if steps[2] <= steps[0] {
		t.Errorf("CX should follow the H gates, got CX at %d, H at %d", steps[2], steps[0])
	}
	if steps[3] != 0 {
		t.Errorf("X q2 should be scheduled first, got %d", steps[3])
	}
	if steps[5] <= steps[4] {
		t.Errorf("X after barrier at %d, barrier at %d", steps[5], steps[4])
	}
	if depth != steps[5]+1 {
		t.Errorf("depth = %d, want %d", depth, steps[5]+1)
	}
}

func TestScheduleColumnsAvoidsCrossingWires(t *testing.T) {
	gates := Sequence(CX(0, 2), X(1))
	logical, _ := Schedule(gates, 3)
	drawn, width := ScheduleColumns(gates, 3)
	if logical[1] != 0 {
		t.Errorf("X q1 is independent, logical step %d", logical[1])
	}
	if drawn[1] != 1 || width != 2 {
		t.Errorf("X q1 drawn at column %d (width %d), want column 1", drawn[1], width)
	}
}

func TestProgramDepthIgnoresBarriers(t *testing.T) {
	l, _, _, _ := testLayout()
	p, err := NewProgram(l, nil, H(0), Barrier(), H(1), Barrier(), H(2))
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if p.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", p.Depth())
	}
	if p.Len() != 5 {
		t.Errorf("Len() = %d, want 5", p.Len())
	}
}

func TestQASMRoundTrip(t *testing.T) {
	l, data, anc, flag := testLayout()
	p, err := NewProgram(l, []Register{data, flag},
		H(data.Qubits...),
		CX(data.Qubits[0], anc.Qubits[0]),
		Barrier(),
		MCX(anc.Qubits, flag.Qubits[0]),
		MCX(append(data.Qubits[:2:2], anc.Qubits...), flag.Qubits[0]),
		CZ(data.Qubits[1], data.Qubits[2]),
		Fragment{{Kind: KindTdg, Target: 1}},
	)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	qasm := p.ToQASM()
	fmt.Printf("Round-trip QASM output:\n%s\n", qasm)

	for _, want := range []string{"qreg data[3];", "creg m_flag[1];", "ccx ancilla[0], ancilla[1], flag[0];", "mcx data[0], data[1], ancilla[0], ancilla[1], flag[0];", "tdg data[1];", "measure flag[0] -> m_flag[0];"} {
		if !strings.Contains(qasm, want) {
			t.Errorf("expected %q in QASM, got:\n%s", want, qasm)
		}
	}

	p2, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}
	if p2.NumQubits() != p.NumQubits() {
		t.Fatalf("round-trip: %d qubits, want %d", p2.NumQubits(), p.NumQubits())
	}
	g1, g2 := p.Gates(), p2.Gates()
	if len(g1) != len(g2) {
		t.Fatalf("round-trip: %d gates, want %d", len(g2), len(g1))
	}
	for i := range g1 {
		if g1[i].Name() != g2[i].Name() || g1[i].Target != g2[i].Target || fmt.Sprint(g1[i].Controls) != fmt.Sprint(g2[i].Controls) {
			t.Errorf("gate %d: got %+v, want %+v", i, g2[i], g1[i])
		}
	}
	if m := p2.Measured(); len(m) != 2 || m[0].Name != "data" || m[1].Name != "flag" {
		t.Errorf("measured registers = %+v", m)
	}
}

func TestParseQASMErrors(t *testing.T) {
	tests := []string{
		"qreg q[2];\nfoo q[0];",
		"qreg q[2];\nh r[0];",
		"qreg q[2];\nh q[2];",
		"qreg q[2];\nqreg q[1];",
		"qreg q[2];\ncx q[0];",
		"qreg q[2];\n???",
	}
	for _, src := range tests {
		if _, err := ParseQASM(src); err == nil {
			t.Errorf("expected error for:\n%s", src)
		}
	}
}
