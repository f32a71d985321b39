package register

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"

	"qregdeck/internal/gates"
	"qregdeck/internal/linalg"
)

const tol = 1e-9

func randomState(rng *rand.Rand, dim int) linalg.Vector {
	v := make(linalg.Vector, dim)
	for i := range v {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return v.Normalized()
}

func newSeeded(n int) *Register {
	r, err := New(n, WithSeed(7))
	if err != nil {
		panic(err)
	}
	return r
}

// directOperator builds the 2^n operator applying g to targets by index
// arithmetic alone, with no swaps involved.
func directOperator(n int, g linalg.Matrix, targets []int) linalg.Matrix {
	dim := 1 << n
	var mask int
	for _, t := range targets {
		mask |= 1 << (n - t)
	}
	sub := func(i int) int {
		s := 0
		for _, t := range targets {
			s = s<<1 | (i>>(n-t))&1
		}
		return s
	}
	out := linalg.NewMatrix(dim, dim)
	for i := range dim {
		for j := range dim {
			if i&^mask != j&^mask {
				continue
			}
			out.Set(i, j, g.At(sub(i), sub(j)))
		}
	}
	return out
}

func TestNewRegister(t *testing.T) {
	Convey("Given a qubit count", t, func() {
		Convey("When it is in range", func() {
			r, err := New(3)

			Convey("Then the register starts in |000>", func() {
				So(err, ShouldBeNil)
				So(r.NumQubits(), ShouldEqual, 3)
				amps := r.Amplitudes()
				So(len(amps), ShouldEqual, 8)
				So(amps[0], ShouldEqual, complex(1, 0))
				So(r.Norm(), ShouldAlmostEqual, 1.0, tol)
				So(r.String(), ShouldEqual, "(1.0000+0.0000i)|000>")
			})
		})

		Convey("When it is out of range", func() {
			for _, n := range []int{0, -1, DefaultMaxQubits + 1} {
				_, err := New(n)
				So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
			}
			_, err := New(12, WithMaxQubits(12))
			So(err, ShouldBeNil)
		})
	})
}

func TestCloneIsIndependent(t *testing.T) {
	Convey("Given a register in superposition and its clone", t, func() {
		r := newSeeded(2)
		So(r.ApplyGate("H", 1), ShouldBeNil)
		c := r.Clone()

		So(c.ID(), ShouldEqual, r.ID())
		So(c.Amplitudes().ApproxEqual(r.Amplitudes(), 0), ShouldBeTrue)

		Convey("Gates on the clone leave the original alone", func() {
			before := r.Amplitudes()
			So(c.ApplyGate("X", 2), ShouldBeNil)
			So(r.Amplitudes().ApproxEqual(before, 0), ShouldBeTrue)
			So(c.Amplitudes().ApproxEqual(before, tol), ShouldBeFalse)
		})

		Convey("Collapsing the original leaves the clone in superposition", func() {
			_, err := r.Measure("ZI")
			So(err, ShouldBeNil)
			probs := c.Probabilities()
			So(probs[0], ShouldAlmostEqual, 0.5, tol)
			So(probs[2], ShouldAlmostEqual, 0.5, tol)
		})
	})
}

func TestWithRandSource(t *testing.T) {
	Convey("Given two registers drawing from identically seeded sources", t, func() {
		newReg := func() *Register {
			r, err := New(3, WithRand(rand.New(rand.NewPCG(5, 9))))
			So(err, ShouldBeNil)
			So(r.ApplyGate("H", 1, 2, 3), ShouldBeNil)
			return r
		}
		a, b := newReg(), newReg()

		Convey("They produce the same tallies", func() {
			ca, err := a.Sample("ZZZ", 200)
			So(err, ShouldBeNil)
			cb, err := b.Sample("ZZZ", 200)
			So(err, ShouldBeNil)
			if len(ca) != len(cb) {
				t.Log(spew.Sdump(ca, cb))
			}
			So(cb, ShouldResemble, ca)
		})
	})
}

func TestApplyGateValidation(t *testing.T) {
	Convey("Given a 3-qubit register in a random state", t, func() {
		r := newSeeded(3)
		So(r.Load(randomState(rand.New(rand.NewPCG(1, 2)), 8)), ShouldBeNil)
		before := r.Amplitudes()

		cases := []struct {
			name    string
			gate    string
			targets []int
			want    error
		}{
			{"unknown gate", "RX", []int{1}, ErrUnsupportedGate},
			{"lower-case alias", "cnot", []int{1, 2}, ErrUnsupportedGate},
			{"no targets", "H", nil, ErrInvalidTargets},
			{"too few targets", "CNOT", []int{1}, ErrInvalidTargets},
			{"too many targets", "SWAP", []int{1, 2, 3}, ErrInvalidTargets},
			{"zero index", "X", []int{0}, ErrInvalidTargets},
			{"index past n", "TOFF", []int{1, 2, 4}, ErrInvalidTargets},
			{"duplicate", "CZ", []int{2, 2}, ErrInvalidTargets},
			{"duplicate single", "H", []int{1, 3, 1}, ErrInvalidTargets},
		}

		for _, tc := range cases {
			Convey("When applying with "+tc.name, func() {
				err := r.ApplyGate(tc.gate, tc.targets...)

				Convey("Then it fails without touching the state", func() {
					So(errors.Is(err, tc.want), ShouldBeTrue)
					So(r.Amplitudes().ApproxEqual(before, 0), ShouldBeTrue)
				})
			})
		}
	})
}

func TestSelfInverseGates(t *testing.T) {
	Convey("Given a 4-qubit register in a random state", t, func() {
		rng := rand.New(rand.NewPCG(3, 4))
		r := newSeeded(4)
		So(r.Load(randomState(rng, 16)), ShouldBeNil)
		before := r.Amplitudes()

		Convey("X twice restores the state exactly", func() {
			for q := 1; q <= 4; q++ {
				So(r.ApplyGate("X", q), ShouldBeNil)
				So(r.ApplyGate("NOT", q), ShouldBeNil)
			}
			So(r.Amplitudes().ApproxEqual(before, 0), ShouldBeTrue)
		})

		Convey("H twice restores the state", func() {
			So(r.ApplyGate("H", 2), ShouldBeNil)
			So(r.ApplyGate("H", 2), ShouldBeNil)
			So(r.Amplitudes().ApproxEqual(before, tol), ShouldBeTrue)
		})

		Convey("SWAP twice is the identity for every pair", func() {
			for a := 1; a <= 4; a++ {
				for b := 1; b <= 4; b++ {
					if a == b {
						continue
					}
					So(r.Swap(a, b), ShouldBeNil)
					So(r.Swap(a, b), ShouldBeNil)
					So(r.Amplitudes().ApproxEqual(before, tol), ShouldBeTrue)
				}
			}
		})
	})
}

func TestNormPreserved(t *testing.T) {
	Convey("Given a random circuit over every catalog gate", t, func() {
		rng := rand.New(rand.NewPCG(5, 6))
		r := newSeeded(5)
		names := gates.Names()

		Convey("The norm stays 1 after every gate", func() {
			for range 60 {
				name := names[rng.IntN(len(names))]
				g, _ := gates.Lookup(name)
				perm := rng.Perm(5)
				targets := make([]int, g.Arity)
				for i := range targets {
					targets[i] = perm[i] + 1
				}
				So(r.ApplyGate(name, targets...), ShouldBeNil)
				So(r.Norm(), ShouldAlmostEqual, 1.0, tol)
			}

			Convey("And after a measurement", func() {
				_, err := r.Measure("XIZYZ")
				So(err, ShouldBeNil)
				So(r.Norm(), ShouldAlmostEqual, 1.0, tol)
			})
		})
	})
}

func TestSwapNetworkMatchesDirectOperator(t *testing.T) {
	Convey("Given a 5-qubit register", t, func() {
		const n = 5
		r := newSeeded(n)

		Convey("Every ordered pair of targets lifts two-qubit gates exactly", func() {
			for _, name := range gates.ByArity(2) {
				g, _ := gates.Lookup(name)
				for a := 1; a <= n; a++ {
					for b := 1; b <= n; b++ {
						if a == b {
							continue
						}
						got, err := r.Operator(name, a, b)
						So(err, ShouldBeNil)
						want := directOperator(n, g.Matrix, []int{a, b})
						if !linalg.MatrixApproxEqual(got, want, tol) {
							t.Logf("%s %d %d\n%s", name, a, b, spew.Sdump(planRoute(n, []int{a, b})))
						}
						So(linalg.MatrixApproxEqual(got, want, tol), ShouldBeTrue)
					}
				}
			}
		})

		Convey("Every ordered triple of targets lifts three-qubit gates exactly", func() {
			for _, name := range gates.ByArity(3) {
				g, _ := gates.Lookup(name)
				for a := 1; a <= n; a++ {
					for b := 1; b <= n; b++ {
						for c := 1; c <= n; c++ {
							if a == b || b == c || a == c {
								continue
							}
							got, err := r.Operator(name, a, b, c)
							So(err, ShouldBeNil)
							want := directOperator(n, g.Matrix, []int{a, b, c})
							So(linalg.MatrixApproxEqual(got, want, tol), ShouldBeTrue)
						}
					}
				}
			}
		})
	})
}

func TestDetourEqualsAdjacentApplication(t *testing.T) {
	Convey("Given two copies of a random 4-qubit state", t, func() {
		rng := rand.New(rand.NewPCG(8, 9))
		state := randomState(rng, 16)
		direct, detour := newSeeded(4), newSeeded(4)
		So(direct.Load(state), ShouldBeNil)
		So(detour.Load(state), ShouldBeNil)

		Convey("CNOT on (1,2) equals moving qubit 2 away and back around it", func() {
			So(direct.ApplyGate("CNOT", 1, 2), ShouldBeNil)

			So(detour.Swap(2, 4), ShouldBeNil)
			So(detour.ApplyGate("CNOT", 1, 4), ShouldBeNil)
			So(detour.Swap(2, 4), ShouldBeNil)

			So(detour.Amplitudes().EqualUpToPhase(direct.Amplitudes(), tol), ShouldBeTrue)
		})

		Convey("CS on (3,2) equals the swapped ascending form", func() {
			So(direct.ApplyGate("CS", 3, 2), ShouldBeNil)

			So(detour.Swap(2, 3), ShouldBeNil)
			So(detour.ApplyGate("CS", 2, 3), ShouldBeNil)
			So(detour.Swap(2, 3), ShouldBeNil)

			So(detour.Amplitudes().EqualUpToPhase(direct.Amplitudes(), tol), ShouldBeTrue)
		})
	})
}

func TestRoutePlans(t *testing.T) {
	Convey("Given target lists on a 6-qubit register", t, func() {
		cases := []struct {
			targets []int
			start   int
			swaps   int
		}{
			{[]int{2, 3}, 2, 0},
			{[]int{1, 5}, 1, 3},
			{[]int{3, 2}, 2, 1},
			{[]int{5, 1}, 1, 4},
			{[]int{4, 5, 6}, 4, 0},
			{[]int{6, 5, 4}, 4, 3},
			{[]int{1, 6, 3}, 1, 5},
			{[]int{6, 2, 4}, 2, 5},
		}
		for _, tc := range cases {
			rt := planRoute(6, tc.targets)
			So(rt.start, ShouldEqual, tc.start)
			So(len(rt.swaps), ShouldEqual, tc.swaps)
		}
	})
}

func TestToffoliTruthTable(t *testing.T) {
	Convey("Given Toffoli on every ordering of three positions in a 5-qubit register", t, func() {
		triples := [][]int{
			{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
			{1, 3, 5}, {5, 3, 1}, {2, 5, 4}, {4, 1, 5}, {5, 1, 3}, {1, 5, 2},
		}

		for _, tr := range triples {
			c1, c2, tgt := tr[0], tr[1], tr[2]
			for _, controls := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
				r := newSeeded(5)
				if controls[0] == 1 {
					So(r.ApplyGate("X", c1), ShouldBeNil)
				}
				if controls[1] == 1 {
					So(r.ApplyGate("X", c2), ShouldBeNil)
				}
				So(r.ApplyGate("TOFF", c1, c2, tgt), ShouldBeNil)

				spec := []byte("IIIII")
				spec[tgt-1] = 'Z'
				label, err := r.Measure(string(spec))
				So(err, ShouldBeNil)

				flipped := "|0>"
				if controls == [2]int{1, 1} {
					flipped = "|1>"
				}
				want := ""
				for q := 1; q <= 5; q++ {
					if q == tgt {
						want += flipped
					} else {
						want += fmt.Sprintf("|psi_%d>", q)
					}
				}
				So(label, ShouldEqual, want)
			}
		}
	})
}

func TestFredkinSwapsTargetsWhenControlSet(t *testing.T) {
	Convey("Given |1,1,0> spread over positions 4, 1, 3", t, func() {
		r := newSeeded(4)
		So(r.ApplyGate("X", 4, 1), ShouldBeNil)

		Convey("FRED with control 4 swaps qubits 1 and 3", func() {
			So(r.ApplyGate("FRED", 4, 1, 3), ShouldBeNil)
			label, err := r.Measure("ZZZZ")
			So(err, ShouldBeNil)
			So(label, ShouldEqual, "|0>|0>|1>|1>")
		})
	})
}
