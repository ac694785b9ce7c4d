package quantum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	measureRegex = regexp.MustCompile(`^measure\s+(\w+)\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	gateRegex    = regexp.MustCompile(`^(\w+)\s+(.+?);?$`)
	operandRegex = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

// ToQASM renders the program as OpenQASM 2.0 with one qreg per register and
// one creg per measured register.
func (p *Program) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")

	regs := p.layout.Registers()
	var names []string
	for _, r := range regs {
		if r.Size() == 0 {
			continue
		}
		fmt.Fprintf(&sb, "qreg %s[%d];\n", r.Name, r.Size())
		names = append(names, r.Name)
	}
	for _, r := range p.measured {
		fmt.Fprintf(&sb, "creg m_%s[%d];\n", r.Name, r.Size())
	}
	sb.WriteString("\n")

	ref := func(q int) string {
		r, off, _ := p.layout.Locate(q)
		return fmt.Sprintf("%s[%d]", r.Name, off)
	}

	for _, g := range p.gates {
		if g.Kind == KindBarrier {
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(names, ", "))
			continue
		}
		operands := make([]string, 0, len(g.Controls)+1)
		for _, q := range g.Qubits() {
			operands = append(operands, ref(q))
		}
		fmt.Fprintf(&sb, "%s %s;\n", strings.ToLower(g.Name()), strings.Join(operands, ", "))
	}

	for _, r := range p.measured {
		for k, q := range r.Qubits {
			fmt.Fprintf(&sb, "measure %s -> m_%s[%d];\n", ref(q), r.Name, k)
		}
	}
	return sb.String()
}

// ParseQASM reads the subset of OpenQASM 2.0 that ToQASM emits.
func ParseQASM(src string) (*Program, error) {
	var (
		layout   Layout
		gates    Fragment
		measured []Register
		seen     = map[string]bool{}
	)

	resolve := func(operand string) (int, Register, error) {
		m := operandRegex.FindStringSubmatch(strings.TrimSpace(operand))
		if m == nil {
			return 0, Register{}, fmt.Errorf("malformed operand %q", operand)
		}
		r, ok := layout.Register(m[1])
		if !ok {
			return 0, Register{}, fmt.Errorf("unknown register %q", m[1])
		}
		idx, _ := strconv.Atoi(m[2])
		if idx >= r.Size() {
			return 0, Register{}, fmt.Errorf("index %d out of range for %s[%d]", idx, r.Name, r.Size())
		}
		return r.Qubits[idx], r, nil
	}

	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "//"),
			strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"),
			strings.HasPrefix(line, "creg"):
			continue
		case strings.HasPrefix(line, "barrier"):
			gates = append(gates, Barrier()...)
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			size, _ := strconv.Atoi(m[2])
			if _, dup := layout.Register(m[1]); dup {
				return nil, fmt.Errorf("quantum: qasm line %d: register %q declared twice", lineNo+1, m[1])
			}
			layout.Add(m[1], size)
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			_, r, err := resolve(m[1] + "[" + m[2] + "]")
			if err != nil {
				return nil, fmt.Errorf("quantum: qasm line %d: %w", lineNo+1, err)
			}
			if !seen[r.Name] {
				seen[r.Name] = true
				measured = append(measured, r)
			}
			continue
		}

		m := gateRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("quantum: qasm line %d: cannot parse %q", lineNo+1, line)
		}
		parts := strings.Split(m[2], ",")
		qubits := make([]int, len(parts))
		for i, part := range parts {
			q, _, err := resolve(part)
			if err != nil {
				return nil, fmt.Errorf("quantum: qasm line %d: %w", lineNo+1, err)
			}
			qubits[i] = q
		}
		kind, err := parseGateName(m[1], len(qubits))
		if err != nil {
			return nil, fmt.Errorf("quantum: qasm line %d: %w", lineNo+1, err)
		}
		var controls []int
		if len(qubits) > 1 {
			controls = qubits[:len(qubits)-1]
		}
		gates = append(gates, Gate{Kind: kind, Target: qubits[len(qubits)-1], Controls: controls})
	}

	return NewProgram(&layout, measured, gates)
}

// parseGateName maps a QASM gate name and its operand count to a kind.
func parseGateName(name string, operands int) (GateKind, error) {
	name = strings.ToUpper(name)
	base := func(s string) (GateKind, bool) {
		k := GateKind(s)
		return k, k.known() && k != KindBarrier
	}

	switch {
	case name == "CCX" && operands == 3, name == "MCX" && operands >= 2:
		return KindX, nil
	case operands == 1:
		if k, ok := base(name); ok {
			return k, nil
		}
	case operands == 2 && strings.HasPrefix(name, "C"):
		if k, ok := base(name[1:]); ok {
			return k, nil
		}
	case operands > 2 && strings.HasPrefix(name, "MC"):
		if k, ok := base(name[2:]); ok {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported gate %q with %d operands", strings.ToLower(name), operands)
}
