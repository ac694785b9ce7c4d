// Package grover finds the codewords and minimum distance of a binary linear
// code by simulated Grover search over its parity-check matrix.
//
// Two modes share the same oracle and diffusion builders. Exact mode
// evolves a single amplified state and reads its probabilities. Threshold
// mode chains the oracle with a weight comparator, samples the result, and
// raises the weight threshold until a nonzero codeword is amplified.
package grover

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/quantum"
)

// Solver runs searches with a fixed configuration. A Solver keeps no state
// between calls and may be reused.
type Solver struct {
	cfg    Config
	logger *log.Logger
}

// NewSolver returns a Solver with DefaultConfig and the given options.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		cfg: DefaultConfig(),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "grover",
			Level:  log.WarnLevel,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Solver) Config() Config { return s.cfg }

// Solve dispatches on mode.
func (s *Solver) Solve(h *gf2.Matrix, mode Mode) (*Result, error) {
	switch mode {
	case ModeExact:
		return s.SolveExact(h)
	case ModeThreshold:
		return s.SolveThreshold(h)
	}
	return nil, fmt.Errorf("grover: unknown mode %q", mode)
}

// SolveExact amplifies every codeword at once and reads the most probable
// data words from the exact final distribution.
func (s *Solver) SolveExact(h *gf2.Matrix) (*Result, error) {
	if h == nil {
		return nil, errNilMatrix
	}
	if err := s.precheck(h, h.Cols()+h.Rows()+1); err != nil {
		return nil, err
	}

	n := h.Cols()
	rank := h.Rank()
	opt := OptimalIterations(n, math.Exp2(float64(n-rank)))
	k := s.cfg.Iterations
	if k == 0 {
		k = ExactIterations(n, h.Rows())
	}
	prog := ExactProgram(h, k)
	data, _ := prog.Layout().Register(RegisterData)

	s.logger.Debug("exact search", "code", fmt.Sprintf("%dx%d", h.Rows(), n), "rank", rank,
		"iterations", k, "optimal", opt, "qubits", prog.NumQubits(), "gates", prog.Len())

	state := mustRun(prog)
	dist := state.Probabilities()
	s.logger.Debug("final distribution", "support", dist.Len(), "mass", dist.Total(), "peak", dist.Max())
	ex, err := ExtractExact(dist, data, h)
	if err != nil {
		return nil, fmt.Errorf("exact search on %dx%d matrix: %w", h.Rows(), n, err)
	}

	all := state.QubitProbabilities()
	marginals := make([]quantum.QubitProbability, data.Size())
	for i, q := range data.Qubits {
		marginals[i] = all[q]
	}

	s.logger.Info("code found", "distance", ex.Distance, "codewords", len(ex.Codewords))
	return &Result{
		Mode:              ModeExact,
		N:                 n,
		K:                 n - h.Rows(),
		Distance:          ex.Distance,
		Codewords:         ex.Codewords,
		Iterations:        k,
		Rank:              rank,
		OptimalIterations: opt,
		Marginals:         marginals,
		Qubits:            prog.NumQubits(),
		Depth:             prog.Depth(),
		Program:           prog,
		Observations:      ex.Observations,
	}, nil
}

// SolveThreshold runs the adaptive-threshold search from InitDistance up to
// n+1 and fails with *SearchExhaustedError past that cap.
func (s *Solver) SolveThreshold(h *gf2.Matrix) (*Result, error) {
	if h == nil {
		return nil, errNilMatrix
	}
	n := h.Cols()
	if err := s.precheck(h, n+h.Rows()+CounterWidth(n)+1); err != nil {
		return nil, err
	}

	k := s.cfg.Iterations
	if k == 0 {
		k = 1
	}
	seed := s.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	limit := n + 1
	if s.cfg.InitDistance > limit {
		return nil, &gf2.InputError{Row: -1, Col: -1,
			Reason: fmt.Sprintf("init distance %d exceeds n+1 = %d", s.cfg.InitDistance, limit)}
	}

	s.logger.Debug("threshold search", "code", fmt.Sprintf("%dx%d", h.Rows(), n),
		"init_distance", s.cfg.InitDistance, "shots", s.cfg.Shots, "cutoff", s.cfg.ShotsCutoff,
		"iterations", k, "seed", seed)

	var (
		tried                  []int
		sawOutcome, sawNonzero bool
	)
	for d := s.cfg.InitDistance; d <= limit; d++ {
		tried = append(tried, d)

		prog := ThresholdProgram(h, d, k)
		layout := prog.Layout()
		data, _ := layout.Register(RegisterData)
		counter, _ := layout.Register(RegisterCounter)
		flag, _ := layout.Register(RegisterFlag)

		counts, err := mustRun(prog).Sample(s.cfg.Shots, seed+uint64(d))
		if err != nil {
			return nil, fmt.Errorf("threshold %d: %w", d, err)
		}
		ex := ExtractSampled(counts, data, counter, flag, h, s.cfg.ShotsCutoff)
		if near := nearCutoff(counts, s.cfg.Shots, s.cfg.ShotsCutoff); near > 0 {
			s.logger.Warn("counts near cutoff, result may depend on sampling noise",
				"threshold", d, "outcomes", near, "cutoff", s.cfg.ShotsCutoff, "shots", s.cfg.Shots)
		}
		sawOutcome = sawOutcome || len(ex.Observations) > 0
		sawNonzero = sawNonzero || len(ex.Codewords) > 0

		s.logger.Debug("threshold attempt", "threshold", d, "qubits", prog.NumQubits(),
			"significant", len(ex.Observations), "found", ex.Found)
		if !ex.Found {
			continue
		}

		s.logger.Info("code found", "distance", ex.Distance, "threshold", d, "codewords", len(ex.Codewords))
		return &Result{
			Mode:         ModeThreshold,
			N:            n,
			K:            n - h.Rows(),
			Distance:     ex.Distance,
			Codewords:    ex.Codewords,
			Iterations:   k,
			Thresholds:   tried,
			Rank:         h.Rank(),
			Qubits:       prog.NumQubits(),
			Depth:        prog.Depth(),
			Program:      prog,
			Observations: ex.Observations,
		}, nil
	}

	return nil, &SearchExhaustedError{
		First: s.cfg.InitDistance,
		Cap:   limit,
		Empty: sawOutcome && !sawNonzero,
	}
}

func (s *Solver) precheck(h *gf2.Matrix, width int) error {
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("grover: invalid config: %w", err)
	}
	if width > quantum.MaxQubits {
		return &gf2.InputError{Row: -1, Col: -1,
			Reason: fmt.Sprintf("%dx%d matrix needs %d qubits, simulator supports %d", h.Rows(), h.Cols(), width, quantum.MaxQubits)}
	}
	return nil
}

var errNilMatrix = &gf2.InputError{Row: -1, Col: -1, Reason: "nil parity-check matrix"}

// mustRun simulates a program built by this package. An addressing error
// here is a builder bug, not a user error.
func mustRun(p *quantum.Program) *quantum.StateVector {
	state, err := quantum.Run(p)
	if err != nil {
		panic(fmt.Sprintf("grover: internal circuit error: %v", err))
	}
	return state
}
