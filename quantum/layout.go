package quantum

import "slices"

// Register is a named run of qubit indices inside a Layout.
type Register struct {
	Name   string
	Qubits []int
}

// Size returns the number of qubits in the register.
func (r Register) Size() int { return len(r.Qubits) }

// Last returns the highest-order qubit of the register.
func (r Register) Last() int { return r.Qubits[len(r.Qubits)-1] }

// Bits renders the register's bits of a basis index, Qubits[0] first.
func (r Register) Bits(index uint64) string {
	b := make([]byte, len(r.Qubits))
	for k, q := range r.Qubits {
		if index>>uint(q)&1 == 1 {
			b[k] = '1'
		} else {
			b[k] = '0'
		}
	}
	return string(b)
}

// Value reads the register as an unsigned integer with Qubits[0] as the
// least significant bit.
func (r Register) Value(index uint64) uint64 {
	var v uint64
	for k, q := range r.Qubits {
		v |= (index >> uint(q) & 1) << uint(k)
	}
	return v
}

// Layout hands out disjoint registers over a contiguous qubit index space.
// The zero value is an empty layout.
type Layout struct {
	registers []Register
	size      int
}

// Add allocates the next size qubits as a register. A size of zero yields
// an empty register.
func (l *Layout) Add(name string, size int) Register {
	r := Register{Name: name, Qubits: make([]int, size)}
	for k := range size {
		r.Qubits[k] = l.size + k
	}
	l.size += size
	l.registers = append(l.registers, r)
	return r
}

// NumQubits is the total allocated width.
func (l *Layout) NumQubits() int { return l.size }

// Registers returns the registers in allocation order.
func (l *Layout) Registers() []Register {
	return slices.Clone(l.registers)
}

// Register looks a register up by name.
func (l *Layout) Register(name string) (Register, bool) {
	for _, r := range l.registers {
		if r.Name == name {
			return r, true
		}
	}
	return Register{}, false
}

// Locate maps a global qubit index to its register and offset.
func (l *Layout) Locate(qubit int) (Register, int, bool) {
	for _, r := range l.registers {
		if len(r.Qubits) > 0 && qubit >= r.Qubits[0] && qubit <= r.Last() {
			return r, qubit - r.Qubits[0], true
		}
	}
	return Register{}, 0, false
}

func (l *Layout) clone() Layout {
	regs := make([]Register, len(l.registers))
	for i, r := range l.registers {
		regs[i] = Register{Name: r.Name, Qubits: slices.Clone(r.Qubits)}
	}
	return Layout{registers: regs, size: l.size}
}
