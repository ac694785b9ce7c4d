// Command qcodeword finds the minimum distance of a binary linear code from
// its parity-check matrix by simulated Grover search.
//
//	qcodeword --matrix "0001111;0110011;1010101"
//	qcodeword --job hamming.yaml --mode threshold --seed 7
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/grover"
	"github.com/qcodeword/qcodeword/internal/jobfile"
	"github.com/qcodeword/qcodeword/internal/tui"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitEmpty     = 3
	exitExhausted = 4
)

// usageError marks a failure caused by the invocation itself.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type options struct {
	job      string
	matrix   string
	mode     string
	format   string
	out      string
	qasm     string
	logLevel string
	verify   bool
	browse   bool

	initDistance int
	shots        int
	cutoff       int
	seed         uint64
	iterations   int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "qcodeword"})

	code, err := execute(args, stdout, stderr, logger)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		logger.Error(err)
	}
	return code
}

func execute(args []string, stdout, stderr io.Writer, logger *log.Logger) (int, error) {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage, err
	}
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return exitUsage, fmt.Errorf("--log-level: %w", err)
	}
	logger.SetLevel(level)

	job, err := buildJob(opts, fs)
	if err != nil {
		return exitUsage, err
	}
	h, err := job.ParityMatrix()
	if err != nil {
		return exitUsage, err
	}

	solver := grover.NewSolver(
		grover.WithConfig(job.Solver),
		grover.WithLogger(logger.WithPrefix("grover")),
	)
	res, err := solver.Solve(h, job.Mode)
	if err != nil {
		return exitCode(err), err
	}
	logger.Info("solved", "code", res.Descriptor(), "qubits", res.Qubits, "depth", res.Depth)

	if opts.verify {
		if err := verify(h, res, logger); err != nil {
			return exitFailure, err
		}
	}

	if opts.qasm != "" && res.Program != nil {
		if err := os.WriteFile(opts.qasm, []byte(res.Program.ToQASM()), 0o644); err != nil {
			return exitFailure, err
		}
		logger.Info("program written", "path", opts.qasm)
	}

	if opts.browse {
		var tuiOpts []tui.Option
		if opts.qasm != "" {
			tuiOpts = append(tuiOpts, tui.WithQASMPath(opts.qasm))
		}
		if err := tui.Run(res, tuiOpts...); err != nil {
			return exitFailure, err
		}
		return exitOK, nil
	}

	if err := writeResult(res, job.OutputFormat(), opts.out, stdout); err != nil {
		return exitFailure, err
	}
	return exitOK, nil
}

func parseFlags(args []string, output io.Writer) (options, *pflag.FlagSet, error) {
	var o options
	def := grover.DefaultConfig()

	fs := pflag.NewFlagSet("qcodeword", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&o.matrix, "matrix", "H", "", `parity-check rows, e.g. "0001111;0110011;1010101"`)
	fs.StringVarP(&o.job, "job", "j", "", "YAML job file")
	fs.StringVarP(&o.mode, "mode", "m", string(grover.ModeExact), "search mode: exact or threshold")
	fs.StringVar(&o.format, "format", "", "JSON layout: exact or threshold (default follows mode)")
	fs.IntVar(&o.initDistance, "init-distance", def.InitDistance, "first weight threshold (threshold mode)")
	fs.IntVar(&o.shots, "shots", def.Shots, "samples per threshold")
	fs.IntVar(&o.cutoff, "cutoff", def.ShotsCutoff, "counts an outcome must exceed to be significant")
	fs.Uint64Var(&o.seed, "seed", 0, "sampler seed (0 picks one)")
	fs.IntVar(&o.iterations, "iterations", 0, "amplification rounds (0 uses the mode default)")
	fs.StringVarP(&o.out, "out", "o", "", "write JSON here instead of stdout")
	fs.StringVar(&o.qasm, "qasm", "", "write the final program as OpenQASM 2.0")
	fs.BoolVar(&o.verify, "verify", false, "check the distance against brute-force enumeration")
	fs.BoolVar(&o.browse, "tui", false, "browse the result interactively")
	fs.StringVar(&o.logLevel, "log-level", "warn", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() > 0 {
		return o, nil, &usageError{fmt.Errorf("unexpected arguments %v", fs.Args())}
	}
	return o, fs, nil
}

// buildJob loads the job file, if any, and applies explicitly set flags on
// top of it.
func buildJob(o options, fs *pflag.FlagSet) (jobfile.Job, error) {
	job := jobfile.Default()
	if o.job != "" {
		var err error
		if job, err = jobfile.Load(o.job); err != nil {
			return job, err
		}
	}

	if fs.Changed("matrix") {
		job.Matrix = []string{o.matrix}
	}
	if fs.Changed("mode") {
		mode, err := grover.ParseMode(o.mode)
		if err != nil {
			return job, err
		}
		job.Mode = mode
	}
	if fs.Changed("format") {
		f, err := grover.ParseFormat(o.format)
		if err != nil {
			return job, err
		}
		job.Format = f
	}
	if fs.Changed("init-distance") {
		job.Solver.InitDistance = o.initDistance
	}
	if fs.Changed("shots") {
		job.Solver.Shots = o.shots
	}
	if fs.Changed("cutoff") {
		job.Solver.ShotsCutoff = o.cutoff
	}
	if fs.Changed("seed") {
		job.Solver.Seed = o.seed
	}
	if fs.Changed("iterations") {
		job.Solver.Iterations = o.iterations
	}

	if len(job.Matrix) == 0 {
		return job, &usageError{errors.New("no parity-check matrix: pass --matrix or --job")}
	}
	return job, job.Validate()
}

func verify(h *gf2.Matrix, res *grover.Result, logger *log.Logger) error {
	want, ok, err := h.MinDistance()
	switch {
	case errors.Is(err, gf2.ErrEnumerationLimit):
		logger.Warn("verification skipped", "reason", err)
		return nil
	case err != nil:
		return err
	case !ok:
		return fmt.Errorf("verify: code has no nonzero codeword but search reported %s", res.Descriptor())
	case want != res.Distance:
		return fmt.Errorf("verify: search reported distance %d, enumeration found %d", res.Distance, want)
	}
	logger.Info("verified", "distance", want)
	return nil
}

func writeResult(res *grover.Result, f grover.Format, path string, stdout io.Writer) error {
	if path == "" {
		return res.WriteJSON(stdout, f)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.WriteJSON(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func exitCode(err error) int {
	var usage *usageError
	switch {
	case errors.As(err, &usage), errors.Is(err, gf2.ErrInput):
		return exitUsage
	case errors.Is(err, grover.ErrEmptyCode):
		return exitEmpty
	case errors.Is(err, grover.ErrSearchExhausted):
		return exitExhausted
	}
	return exitFailure
}
