package register

import (
	"fmt"
	"strings"
	"unicode"

	"qregdeck/internal/gates"
	"qregdeck/internal/linalg"
)

// Candidate is one joint eigenstate branch of the measured qubits. Bits holds
// one bit per measured qubit, the left-most measured qubit in the most
// significant position. The collapsed vector is unnormalized; its squared
// norm is the Born-rule probability of the branch.
type Candidate struct {
	Bits   int
	Label  string
	Prob   float64
	Vector linalg.Vector

	realized bool
}

// Candidates caches realized outcome branches for one basis spec. A cache is
// only valid against the register state it was built from; MeasureWith
// discards it once that state has changed.
type Candidates struct {
	spec  string
	slots []Candidate
	owner *Register
	gen   uint64
}

// Spec returns the normalized basis spec the cache was built for.
func (c *Candidates) Spec() string { return c.spec }

// Len is the number of outcome branches, 2^m for m measured qubits.
func (c *Candidates) Len() int { return len(c.slots) }

// Realized reports how many branches have been computed so far.
func (c *Candidates) Realized() int {
	n := 0
	for _, s := range c.slots {
		if s.realized {
			n++
		}
	}
	return n
}

// validFor reports whether the cache was built for spec against the current
// state of r.
func (c *Candidates) validFor(r *Register, spec string) bool {
	return c != nil && c.owner == r && c.gen == r.gen && c.spec == spec
}

func (r *Register) newCandidates(spec string) *Candidates {
	m := strings.Count(spec, "X") + strings.Count(spec, "Y") + strings.Count(spec, "Z")
	slots := make([]Candidate, 1<<m)
	for i := range slots {
		slots[i].Bits = i
	}
	return &Candidates{spec: spec, slots: slots, owner: r, gen: r.gen}
}

// NormalizeBasisSpec strips whitespace, upper-cases and validates spec
// against an n-qubit register.
func NormalizeBasisSpec(spec string, n int) (string, error) {
	spec = strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, spec))
	if len(spec) != n {
		return "", fmt.Errorf("%w: %q has %d entries, register has %d qubits", ErrInvalidBasisSpec, spec, len(spec), n)
	}
	for i := range len(spec) {
		switch spec[i] {
		case gates.BasisI, gates.BasisX, gates.BasisY, gates.BasisZ:
		default:
			return "", fmt.Errorf("%w: %q at qubit %d (want I, X, Y or Z)", ErrInvalidBasisSpec, spec[i], i+1)
		}
	}
	return spec, nil
}

// Measure measures the qubits selected by spec, one letter per qubit from
// {I, X, Y, Z}, collapses the state onto the observed branch and returns its
// label, e.g. "|0>|psi_2>|->".
func (r *Register) Measure(spec string) (string, error) {
	label, _, err := r.MeasureWith(spec, nil)
	return label, err
}

// MeasureWith is Measure with an explicit candidate cache. A cache is reused
// only while the register still holds the state it was built from; a nil
// cache, one for another spec or register, or one from an earlier state is
// replaced by a fresh one. The collapse itself counts as a state change.
//
// Outcomes are drawn by rejection sampling: a branch is picked uniformly and
// accepted with its probability. After the configured number of rejections
// the remaining branches are all realized and the outcome is drawn from the
// exact distribution, which leaves the outcome distribution unchanged.
func (r *Register) MeasureWith(spec string, cache *Candidates) (string, *Candidates, error) {
	spec, err := NormalizeBasisSpec(spec, r.n)
	if err != nil {
		return "", cache, err
	}
	if !cache.validFor(r, spec) {
		cache = r.newCandidates(spec)
	}

	var chosen *Candidate
	attempts := 0
	for chosen == nil {
		attempts++
		if r.maxAttempts > 0 && attempts > r.maxAttempts {
			chosen = r.drawExact(cache)
			r.logger.Debug("rejection sampling exhausted, drew from exact distribution", "spec", spec, "attempts", attempts-1)
			break
		}
		c := r.realize(cache, r.rng.IntN(len(cache.slots)))
		if u := r.rng.Float64(); c.Prob > 0 && u <= c.Prob {
			chosen = c
		}
	}

	r.amplitudes = chosen.Vector.Normalized()
	r.gen++
	r.logger.Debug("measured", "spec", spec, "outcome", chosen.Label, "p", chosen.Prob, "attempts", attempts)
	return chosen.Label, cache, nil
}

// Distribution returns the exact probability of every outcome label for spec
// without collapsing the state.
func (r *Register) Distribution(spec string) (map[string]float64, error) {
	spec, err := NormalizeBasisSpec(spec, r.n)
	if err != nil {
		return nil, err
	}
	cache := r.newCandidates(spec)
	dist := make(map[string]float64, len(cache.slots))
	for i := range cache.slots {
		c := r.realize(cache, i)
		dist[c.Label] = c.Prob
	}
	return dist, nil
}

// realize computes the collapsed vector, probability and label of slot i once.
func (r *Register) realize(cache *Candidates, i int) *Candidate {
	c := &cache.slots[i]
	if c.realized {
		return c
	}

	spec := cache.spec
	m := len(cache.slots) - 1
	width := 0
	for ; m > 0; m >>= 1 {
		width++
	}

	ops := make([]linalg.Matrix, r.n)
	var label strings.Builder
	j := 0
	for q := range r.n {
		if spec[q] == gates.BasisI {
			ops[q] = linalg.Identity(2)
			fmt.Fprintf(&label, "|psi_%d>", q+1)
			continue
		}
		bit := (c.Bits >> (width - 1 - j)) & 1
		j++
		p, ket, err := gates.Projector(spec[q], bit)
		if err != nil {
			// NormalizeBasisSpec has already rejected anything Projector would.
			panic(err)
		}
		ops[q] = p
		label.WriteString(ket)
	}

	c.Vector = linalg.MulVec(gates.Combine(ops...), r.amplitudes)
	c.Prob = c.Vector.NormSquared()
	c.Label = label.String()
	c.realized = true
	return c
}

// drawExact realizes every branch and samples one by inverse CDF.
func (r *Register) drawExact(cache *Candidates) *Candidate {
	var total float64
	for i := range cache.slots {
		total += r.realize(cache, i).Prob
	}

	u := r.rng.Float64() * total
	var last *Candidate
	for i := range cache.slots {
		c := &cache.slots[i]
		if c.Prob <= 0 {
			continue
		}
		last = c
		if u < c.Prob {
			return c
		}
		u -= c.Prob
	}
	return last
}
