package quantum

// Schedule assigns every gate the earliest time step after all earlier
// gates sharing a qubit with it. A barrier takes a step of its own and no
// gate after it may be scheduled before it. depth is the number of steps
// used.
func Schedule(gates []Gate, numQubits int) (steps []int, depth int) {
	return schedule(gates, numQubits, false)
}

// ScheduleColumns is Schedule for drawing: a controlled gate also occupies
// every wire between its outermost qubits, so no two gates in a column
// overlap vertically.
func ScheduleColumns(gates []Gate, numQubits int) (steps []int, width int) {
	return schedule(gates, numQubits, true)
}

func schedule(gates []Gate, numQubits int, spans bool) ([]int, int) {
	steps := make([]int, len(gates))
	nextFree := make([]int, numQubits)
	depth := 0

	for i, g := range gates {
		step := 0
		if g.Kind == KindBarrier {
			for _, f := range nextFree {
				step = max(step, f)
			}
			for q := range nextFree {
				nextFree[q] = step + 1
			}
			steps[i] = step
			depth = max(depth, step+1)
			continue
		}

		occupied := g.Qubits()
		if spans {
			lo, hi := span(g)
			occupied = occupied[:0]
			for q := lo; q <= hi; q++ {
				occupied = append(occupied, q)
			}
		}
		for _, q := range occupied {
			step = max(step, nextFree[q])
		}
		for _, q := range occupied {
			nextFree[q] = step + 1
		}
		steps[i] = step
		depth = max(depth, step+1)
	}
	return steps, depth
}

func span(g Gate) (lo, hi int) {
	lo, hi = g.Target, g.Target
	for _, c := range g.Controls {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	return lo, hi
}
