package grover

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/qcodeword/qcodeword/quantum"
)

// Mode selects the search strategy.
type Mode string

const (
	// ModeExact evolves one amplified state and reads exact probabilities.
	ModeExact Mode = "exact"
	// ModeThreshold samples a weight-thresholded search, raising the
	// threshold until a nonzero codeword appears.
	ModeThreshold Mode = "threshold"
)

// ParseMode accepts "exact" or "threshold".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExact, ModeThreshold:
		return Mode(s), nil
	}
	return "", fmt.Errorf("grover: unknown mode %q (want exact or threshold)", s)
}

// Observation is one data outcome as seen by the extractor.
type Observation struct {
	Data        string
	Weight      int // counter reading in threshold mode, popcount otherwise
	Flag        bool
	Count       int
	Probability float64
	Codeword    bool // zero syndrome
}

// Result describes the code found by one solve. It is not modified after
// it is returned.
type Result struct {
	Mode      Mode
	N         int
	K         int
	Distance  int
	Codewords []string

	Iterations int
	Thresholds []int // threshold mode: every threshold tried, in order
	Rank       int   // GF(2) rank of H
	Qubits     int
	Depth      int

	// OptimalIterations is the textbook round count for the 2^(n-rank)
	// codewords. Exact mode only.
	OptimalIterations int
	// Marginals are the data qubits' final marginals, Qubits[0] first.
	// Exact mode only.
	Marginals []quantum.QubitProbability

	// Program is the final program that produced the codewords.
	Program *quantum.Program
	// Observations are the extractor's candidates, most likely first.
	Observations []Observation
}

// Descriptor renders "[n,k,d]".
func (r *Result) Descriptor() string {
	return fmt.Sprintf("[%d,%d,%d]", r.N, r.K, r.Distance)
}

// Format selects the JSON record layout.
type Format string

const (
	// FormatExact is {"[n,k,d]": {"code_distance": d, "code_words": [...]}}.
	FormatExact Format = "exact"
	// FormatThreshold is {"code": "[n, k, d]", "codewords": [...]}.
	FormatThreshold Format = "threshold"
)

// ParseFormat accepts "exact" or "threshold".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatExact, FormatThreshold:
		return Format(s), nil
	}
	return "", fmt.Errorf("grover: unknown format %q (want exact or threshold)", s)
}

type exactRecord struct {
	CodeDistance int      `json:"code_distance"`
	CodeWords    []string `json:"code_words"`
}

type thresholdRecord struct {
	Code      string   `json:"code"`
	Codewords []string `json:"codewords"`
}

// Record returns the JSON-ready value for the format.
func (r *Result) Record(f Format) (any, error) {
	words := r.Codewords
	if words == nil {
		words = []string{}
	}
	switch f {
	case FormatExact:
		return map[string]exactRecord{
			r.Descriptor(): {CodeDistance: r.Distance, CodeWords: words},
		}, nil
	case FormatThreshold:
		return thresholdRecord{
			Code:      fmt.Sprintf("[%d, %d, %d]", r.N, r.K, r.Distance),
			Codewords: words,
		}, nil
	}
	return nil, fmt.Errorf("grover: unknown format %q", f)
}

// WriteJSON encodes the record for the format, indented, followed by a
// newline.
func (r *Result) WriteJSON(w io.Writer, f Format) error {
	rec, err := r.Record(f)
	if err != nil {
		return err
	}
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
