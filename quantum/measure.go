package quantum

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Epsilon is the probability below which an outcome counts as impossible.
const Epsilon = 2.220446049250313e-16

// sampleChunk is the number of shots drawn from one random stream.
const sampleChunk = 4096

// Outcome is one basis state with its exact probability.
type Outcome struct {
	Index       uint64
	Probability float64
}

// Distribution is an immutable table of basis outcomes. It is safe for
// concurrent reads.
type Distribution struct {
	numQubits int
	outcomes  []Outcome
}

// NewDistribution builds a distribution from explicit outcomes, dropping
// those at or below Epsilon.
func NewDistribution(numQubits int, outcomes []Outcome) *Distribution {
	d := &Distribution{numQubits: numQubits}
	for _, o := range outcomes {
		if o.Probability > Epsilon {
			d.outcomes = append(d.outcomes, o)
		}
	}
	slices.SortFunc(d.outcomes, func(a, b Outcome) int {
		switch {
		case a.Index < b.Index:
			return -1
		case a.Index > b.Index:
			return 1
		}
		return 0
	})
	return d
}

// NumQubits returns the width of the basis indices.
func (d *Distribution) NumQubits() int { return d.numQubits }

// Outcomes returns a copy of the support in increasing index order.
func (d *Distribution) Outcomes() []Outcome { return slices.Clone(d.outcomes) }

// Len is the support size.
func (d *Distribution) Len() int { return len(d.outcomes) }

// Probability looks up one basis index; absent indices have probability 0.
func (d *Distribution) Probability(index uint64) float64 {
	i, ok := slices.BinarySearchFunc(d.outcomes, index, func(o Outcome, t uint64) int {
		switch {
		case o.Index < t:
			return -1
		case o.Index > t:
			return 1
		}
		return 0
	})
	if !ok {
		return 0
	}
	return d.outcomes[i].Probability
}

// Total sums the support.
func (d *Distribution) Total() float64 {
	var t float64
	for _, o := range d.outcomes {
		t += o.Probability
	}
	return t
}

// Max returns the largest outcome probability.
func (d *Distribution) Max() float64 {
	var m float64
	for _, o := range d.outcomes {
		m = max(m, o.Probability)
	}
	return m
}

// Counts maps basis indices to the number of shots that observed them.
type Counts map[uint64]int

// Shots sums all counts.
func (c Counts) Shots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sample draws shots independent outcomes. Shots are split into fixed-size
// chunks, each drawn from its own PCG stream seeded by (seed, chunk), so the
// result depends only on the distribution, shots and seed. The distribution
// is not modified.
func (d *Distribution) Sample(shots int, seed uint64) (Counts, error) {
	if shots <= 0 {
		return nil, errors.New("quantum: shots must be positive")
	}
	if len(d.outcomes) == 0 {
		return nil, errors.New("quantum: cannot sample an empty distribution")
	}

	cdf := make([]float64, len(d.outcomes))
	var acc float64
	for i, o := range d.outcomes {
		acc += o.Probability
		cdf[i] = acc
	}

	chunks := (shots + sampleChunk - 1) / sampleChunk
	partial := make([][]int, chunks)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := range chunks {
		g.Go(func() error {
			n := min(sampleChunk, shots-c*sampleChunk)
			rng := rand.New(rand.NewPCG(seed, uint64(c)))
			hits := make([]int, len(cdf))
			for range n {
				k := sort.SearchFloat64s(cdf, rng.Float64()*acc)
				hits[min(k, len(cdf)-1)]++
			}
			partial[c] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(Counts)
	for _, hits := range partial {
		for k, n := range hits {
			if n > 0 {
				counts[d.outcomes[k].Index] += n
			}
		}
	}
	return counts, nil
}
