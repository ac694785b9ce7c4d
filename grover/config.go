package grover

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Config is the solver's tunable surface. The yaml tags match job files.
type Config struct {
	// InitDistance is the first weight threshold tried in threshold mode.
	InitDistance int `yaml:"init_distance"`
	// Shots is the number of samples drawn per threshold.
	Shots int `yaml:"shots"`
	// ShotsCutoff is the count an outcome must exceed to be significant.
	ShotsCutoff int `yaml:"shots_cutoff"`
	// Seed fixes the sampler. Zero picks a fresh seed per solve.
	Seed uint64 `yaml:"seed"`
	// Iterations overrides the number of oracle+diffusion rounds. Zero uses
	// the mode default: round(n/2^m) in exact mode, one in threshold mode.
	Iterations int `yaml:"iterations"`
}

// DefaultConfig returns init_distance 3, 10000 shots and a cutoff of 250.
func DefaultConfig() Config {
	return Config{
		InitDistance: 3,
		Shots:        10000,
		ShotsCutoff:  250,
	}
}

// Validate rejects settings no search could run with.
func (c Config) Validate() error {
	var errs []error
	if c.InitDistance < 1 {
		errs = append(errs, fmt.Errorf("init_distance must be at least 1, got %d", c.InitDistance))
	}
	if c.Shots < 1 {
		errs = append(errs, fmt.Errorf("shots must be positive, got %d", c.Shots))
	}
	if c.ShotsCutoff < 0 || c.ShotsCutoff >= c.Shots {
		errs = append(errs, fmt.Errorf("shots_cutoff must be in [0, shots), got %d", c.ShotsCutoff))
	}
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must not be negative, got %d", c.Iterations))
	}
	return errors.Join(errs...)
}

// Option configures a Solver.
type Option func(*Solver)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(s *Solver) { s.cfg = c }
}

// WithInitDistance sets the first threshold tried.
func WithInitDistance(d int) Option {
	return func(s *Solver) { s.cfg.InitDistance = d }
}

// WithShots sets the samples per threshold.
func WithShots(n int) Option {
	return func(s *Solver) { s.cfg.Shots = n }
}

// WithShotsCutoff sets the significance cutoff.
func WithShotsCutoff(n int) Option {
	return func(s *Solver) { s.cfg.ShotsCutoff = n }
}

// WithSeed fixes the sampler seed.
func WithSeed(seed uint64) Option {
	return func(s *Solver) { s.cfg.Seed = seed }
}

// WithIterations overrides the amplification round count.
func WithIterations(k int) Option {
	return func(s *Solver) { s.cfg.Iterations = k }
}

// WithLogger routes solver logs. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}
