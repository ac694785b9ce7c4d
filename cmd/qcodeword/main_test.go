package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcodeword/qcodeword/quantum"
)

const hamming = "0001111;0110011;1010101"

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestExactModeJSON(t *testing.T) {
	code, out, stderr := runCLI("--matrix", hamming, "--verify")
	require.Equal(t, exitOK, code, stderr)

	var rec map[string]struct {
		CodeDistance int      `json:"code_distance"`
		CodeWords    []string `json:"code_words"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &rec))
	require.Contains(t, rec, "[7,4,3]")
	assert.Equal(t, 3, rec["[7,4,3]"].CodeDistance)
	assert.Len(t, rec["[7,4,3]"].CodeWords, 15)
}

func TestThresholdModeJSON(t *testing.T) {
	code, out, stderr := runCLI("-H", hamming, "--mode", "threshold", "--seed", "5", "--log-level", "debug")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "threshold attempt")

	var rec struct {
		Code      string   `json:"code"`
		Codewords []string `json:"codewords"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "[7, 4, 3]", rec.Code)
	assert.NotEmpty(t, rec.Codewords)
}

func TestFormatOverride(t *testing.T) {
	code, out, _ := runCLI("-H", "110", "--format", "threshold")
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `{"code": "[3, 2, 1]", "codewords": ["001", "110", "111"]}`, out)
}

func TestJobFileAndOutputs(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.yaml")
	outPath := filepath.Join(dir, "result.json")
	qasmPath := filepath.Join(dir, "final.qasm")

	job := "matrix:\n  - \"0001111\"\n  - \"0110011\"\n  - \"1010101\"\nmode: threshold\nsolver:\n  seed: 11\n"
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0o644))

	code, out, stderr := runCLI("--job", jobPath, "--out", outPath, "--qasm", qasmPath)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, out)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"code": "[7, 4, 3]"`), string(raw))

	src, err := os.ReadFile(qasmPath)
	require.NoError(t, err)
	p, err := quantum.ParseQASM(string(src))
	require.NoError(t, err)
	assert.Equal(t, 14, p.NumQubits())
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"--help"}, exitOK},
		{"no matrix", nil, exitUsage},
		{"unknown flag", []string{"--bogus"}, exitUsage},
		{"stray argument", []string{"-H", "110", "extra"}, exitUsage},
		{"ragged matrix", []string{"-H", "110;01"}, exitUsage},
		{"non-binary", []string{"-H", "120"}, exitUsage},
		{"bad mode", []string{"-H", "110", "--mode", "fast"}, exitUsage},
		{"bad format", []string{"-H", "110", "--format", "xml"}, exitUsage},
		{"bad cutoff", []string{"-H", "110", "--shots", "10", "--cutoff", "10"}, exitUsage},
		{"bad log level", []string{"-H", "110", "--log-level", "loud"}, exitUsage},
		{"init distance past n+1", []string{"-H", "110", "--mode", "threshold", "--init-distance", "9"}, exitUsage},
		{"missing job", []string{"--job", "/nonexistent/job.yaml"}, exitUsage},
		{"empty code", []string{"-H", "100;010;001"}, exitEmpty},
		{"empty code, threshold", []string{"-H", "100;010;001", "--mode", "threshold", "--seed", "1"}, exitEmpty},
		{"exhausted", []string{"-H", "110", "--mode", "threshold", "--seed", "1", "--shots", "1000", "--cutoff", "999"}, exitExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			assert.Equal(t, tt.want, code, stderr)
		})
	}
}
