package grover

import (
	"cmp"
	"math"
	"slices"

	"github.com/qcodeword/qcodeword/gf2"
	"github.com/qcodeword/qcodeword/quantum"
)

// tieTolerance groups probabilities that differ only by rounding.
const tieTolerance = 1e-9

// Extraction is what the extractor recovers from one run.
type Extraction struct {
	Codewords    []string // nonzero, zero-syndrome, sorted by weight then value
	Distance     int
	Found        bool // threshold mode: a flagged nonzero codeword was significant
	Observations []Observation
}

// ExtractExact keeps the data outcomes at the maximum marginal probability,
// discards those failing the syndrome check, and reports the nonzero ones.
func ExtractExact(dist *quantum.Distribution, data quantum.Register, h *gf2.Matrix) (*Extraction, error) {
	marginal := make(map[string]float64)
	for _, o := range dist.Outcomes() {
		marginal[data.Bits(o.Index)] += o.Probability
	}

	var top float64
	for _, p := range marginal {
		top = max(top, p)
	}

	ex := &Extraction{}
	amplified := false
	for word, p := range marginal {
		if p < top-tieTolerance {
			continue
		}
		ok := h.IsCodeword(word)
		amplified = amplified || ok
		ex.Observations = append(ex.Observations, Observation{
			Data:        word,
			Weight:      gf2.Weight(word),
			Probability: p,
			Codeword:    ok,
		})
		if ok && !gf2.IsZero(word) {
			ex.Codewords = append(ex.Codewords, word)
		}
	}
	sortObservations(ex.Observations)

	if !amplified {
		return nil, ErrNotAmplified
	}
	if len(ex.Codewords) == 0 {
		return nil, ErrEmptyCode
	}
	sortWords(ex.Codewords)
	ex.Distance = gf2.Weight(ex.Codewords[0])
	ex.Found = true
	return ex, nil
}

// ExtractSampled keeps outcomes observed more than cutoff times. A run is
// successful when one of them has the flag set, a nonzero data word and a
// zero syndrome; the distance is the least weight among those.
func ExtractSampled(counts quantum.Counts, data, counter, flag quantum.Register, h *gf2.Matrix, cutoff int) *Extraction {
	ex := &Extraction{}
	seen := make(map[string]bool)

	for index, n := range counts {
		if n <= cutoff {
			continue
		}
		word := data.Bits(index)
		obs := Observation{
			Data:     word,
			Weight:   int(counter.Value(index)),
			Flag:     flag.Value(index) == 1,
			Count:    n,
			Codeword: h.IsCodeword(word),
		}
		ex.Observations = append(ex.Observations, obs)

		if !obs.Codeword || gf2.IsZero(word) {
			continue
		}
		if !seen[word] {
			seen[word] = true
			ex.Codewords = append(ex.Codewords, word)
		}
		if obs.Flag {
			wt := gf2.Weight(word)
			if !ex.Found || wt < ex.Distance {
				ex.Distance = wt
			}
			ex.Found = true
		}
	}
	sortObservations(ex.Observations)
	sortWords(ex.Codewords)
	return ex
}

// cutoffBand is how many binomial standard deviations around the cutoff
// count as ambiguous.
const cutoffBand = 3

// nearCutoff counts the outcomes whose shot count lies within cutoffBand
// binomial standard deviations of cutoff, on either side.
func nearCutoff(counts quantum.Counts, shots, cutoff int) int {
	p := float64(cutoff) / float64(shots)
	sigma := max(math.Sqrt(float64(shots)*p*(1-p)), 1)
	near := 0
	for _, n := range counts {
		if math.Abs(float64(n-cutoff)) <= cutoffBand*sigma {
			near++
		}
	}
	return near
}

func sortWords(words []string) {
	slices.SortFunc(words, func(a, b string) int {
		return cmp.Or(cmp.Compare(gf2.Weight(a), gf2.Weight(b)), cmp.Compare(a, b))
	})
}

func sortObservations(obs []Observation) {
	slices.SortFunc(obs, func(a, b Observation) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(b.Probability, a.Probability),
			cmp.Compare(a.Data, b.Data),
		)
	})
}
