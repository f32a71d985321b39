// Package register implements an n-qubit statevector register: named gate
// application onto arbitrary qubit positions and basis measurement with
// collapse.
//
// Qubits are numbered from 1. Qubit 1 is the most significant bit of an
// amplitude index and the left-most factor of every lifted operator.
package register

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"qregdeck/internal/linalg"
)

const (
	DefaultMaxQubits   = 10
	DefaultMaxAttempts = 10000
)

// Register owns the amplitude vector of an n-qubit pure state. It is not safe
// for concurrent use.
type Register struct {
	id          uuid.UUID
	n           int
	amplitudes  linalg.Vector
	rng         *rand.Rand
	logger      *log.Logger
	maxAttempts int

	// gen changes on every write to amplitudes. Candidate caches record it
	// so that a cache built against an earlier state is never reused.
	gen uint64
}

type settings struct {
	rng         *rand.Rand
	logger      *log.Logger
	maxAttempts int
	maxQubits   int
}

// Option configures a Register at construction.
type Option func(*settings)

// WithSeed makes measurement outcomes reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand uses the given source for all random draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) { s.rng = rng }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMaxAttempts bounds the rejection-sampling loop of a single measurement.
// After that many rejected draws the outcome is drawn directly from the exact
// distribution. Zero or less removes the bound.
func WithMaxAttempts(n int) Option {
	return func(s *settings) { s.maxAttempts = n }
}

// WithMaxQubits raises or lowers the register size limit. Every lifted
// operator is a dense 2^n x 2^n matrix, so memory grows as 4^n.
func WithMaxQubits(n int) Option {
	return func(s *settings) { s.maxQubits = n }
}

// New returns an n-qubit register in the all-zero basis state.
func New(n int, opts ...Option) (*Register, error) {
	s := settings{
		maxAttempts: DefaultMaxAttempts,
		maxQubits:   DefaultMaxQubits,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if n < 1 || n > s.maxQubits {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidQubitCount, n, s.maxQubits)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	id := uuid.New()
	r := &Register{
		id:          id,
		n:           n,
		rng:         s.rng,
		logger:      s.logger.With("register", id.String()[:8]),
		maxAttempts: s.maxAttempts,
	}
	r.Reset()
	r.logger.Debug("register created", "qubits", n)
	return r, nil
}

func (r *Register) ID() uuid.UUID { return r.id }

func (r *Register) NumQubits() int { return r.n }

// Reset puts the register back into |0...0>.
func (r *Register) Reset() {
	r.amplitudes = make(linalg.Vector, 1<<r.n)
	r.amplitudes[0] = 1
	r.gen++
}

// Amplitudes returns a copy of the state vector.
func (r *Register) Amplitudes() linalg.Vector {
	return r.amplitudes.Clone()
}

// Load replaces the state with amps, normalized. The length must be 2^n.
func (r *Register) Load(amps linalg.Vector) error {
	if len(amps) != len(r.amplitudes) {
		return fmt.Errorf("state has %d amplitudes, register needs %d", len(amps), len(r.amplitudes))
	}
	if amps.Norm() == 0 {
		return fmt.Errorf("state has zero norm")
	}
	r.amplitudes = amps.Normalized()
	r.gen++
	return nil
}

// Clone returns an independent register with the same state. The clone shares
// the random source and logger but not candidate caches.
func (r *Register) Clone() *Register {
	c := *r
	c.amplitudes = r.amplitudes.Clone()
	return &c
}

func (r *Register) Norm() float64 {
	return r.amplitudes.Norm()
}

// Probabilities returns |a_i|² for every basis index.
func (r *Register) Probabilities() []float64 {
	probs := make([]float64, len(r.amplitudes))
	for i, a := range r.amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Ket renders basis index i as |b1 b2 ... bn> with qubit 1 first.
func (r *Register) Ket(i int) string {
	return fmt.Sprintf("|%0*b>", r.n, i)
}

// String lists the non-negligible amplitudes in ket notation.
func (r *Register) String() string {
	var terms []string
	for i, a := range r.amplitudes {
		if cmplx.Abs(a) < 1e-10 {
			continue
		}
		terms = append(terms, fmt.Sprintf("(%s)%s", formatAmplitude(a), r.Ket(i)))
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func formatAmplitude(a complex128) string {
	re, im := real(a), imag(a)
	if math.Abs(re) < 1e-10 {
		re = 0
	}
	if math.Abs(im) < 1e-10 {
		im = 0
	}
	return fmt.Sprintf("%.4f%+.4fi", re, im)
}
