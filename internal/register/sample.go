package register

import (
	"cmp"
	"fmt"
	"slices"
)

// Counts tallies outcome labels.
type Counts map[string]int

// LabelCount is one row of a sorted tally.
type LabelCount struct {
	Label string
	Count int
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sorted returns the tally ordered by label.
func (c Counts) Sorted() []LabelCount {
	rows := make([]LabelCount, 0, len(c))
	for label, n := range c {
		rows = append(rows, LabelCount{Label: label, Count: n})
	}
	slices.SortFunc(rows, func(a, b LabelCount) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return rows
}

// Sample measures spec trials times, each time against the state as it was
// before the call, and tallies the outcome labels. The register is left
// uncollapsed.
func (r *Register) Sample(spec string, trials int) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, trials)
	}
	spec, err := NormalizeBasisSpec(spec, r.n)
	if err != nil {
		return nil, err
	}

	saved, savedGen := r.amplitudes, r.gen
	defer func() { r.amplitudes, r.gen = saved, savedGen }()

	counts := make(Counts)
	var cache *Candidates
	for range trials {
		var label string
		label, cache, err = r.MeasureWith(spec, cache)
		if err != nil {
			return nil, err
		}
		counts[label]++
		r.amplitudes, r.gen = saved, savedGen
	}
	r.logger.Debug("sampled", "spec", spec, "trials", trials, "outcomes", len(counts), "branches", cache.Realized())
	return counts, nil
}
