// Package jobfile decodes YAML job descriptions for the command line.
package jobfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/grover"
)

// Job is one search request.
type Job struct {
	// Matrix holds the parity-check rows, one "0101..." string per row.
	Matrix []string    `yaml:"matrix"`
	Mode   grover.Mode `yaml:"mode"`
	// Format is the JSON record layout; empty follows Mode.
	Format grover.Format `yaml:"format,omitempty"`
	Solver grover.Config `yaml:"solver"`
}

// Default returns a job with no matrix, exact mode and
// grover.DefaultConfig.
func Default() Job {
	return Job{
		Mode:   grover.ModeExact,
		Solver: grover.DefaultConfig(),
	}
}

// Decode reads a job from r. Fields absent from the document keep their
// defaults; unknown fields are rejected.
func Decode(r io.Reader) (Job, error) {
	job := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, fmt.Errorf("jobfile: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Load decodes the job file at path.
func Load(path string) (Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("jobfile: %w", err)
	}
	job, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Validate checks mode, format and solver settings. The matrix itself is
// checked by ParityMatrix.
func (j Job) Validate() error {
	if _, err := grover.ParseMode(string(j.Mode)); err != nil {
		return fmt.Errorf("jobfile: %w", err)
	}
	if j.Format != "" {
		if _, err := grover.ParseFormat(string(j.Format)); err != nil {
			return fmt.Errorf("jobfile: %w", err)
		}
	}
	if err := j.Solver.Validate(); err != nil {
		return fmt.Errorf("jobfile: solver: %w", err)
	}
	return nil
}

// OutputFormat is Format, or the layout matching Mode when Format is empty.
func (j Job) OutputFormat() grover.Format {
	if j.Format != "" {
		return j.Format
	}
	if j.Mode == grover.ModeThreshold {
		return grover.FormatThreshold
	}
	return grover.FormatExact
}

// ParityMatrix parses the job's rows.
func (j Job) ParityMatrix() (*gf2.Matrix, error) {
	return gf2.ParseMatrix(strings.Join(j.Matrix, ";"))
}

// Encode writes the job as YAML.
func (j Job) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(j); err != nil {
		return err
	}
	return enc.Close()
}
