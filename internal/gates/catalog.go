// Package gates is the fixed catalog of named unitary gates.
//
// Matrices use big-endian ordering: the first target qubit of a gate is the
// most significant bit of the matrix index, so CNOT's control is its first
// target and TOFFOLI's flip target is its last.
package gates

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"qregdeck/internal/linalg"
)

var ErrUnsupportedGate = errors.New("unsupported gate")

// Gate is a catalog entry resolved from a name or alias.
type Gate struct {
	Name   string
	Arity  int
	Matrix linalg.Matrix
}

type entry struct {
	name  string
	arity int
	build func() linalg.Matrix
}

var (
	identity = entry{"I", 1, func() linalg.Matrix { return linalg.Identity(2) }}
	hadamard = entry{"H", 1, func() linalg.Matrix {
		h := complex(1/math.Sqrt2, 0)
		return linalg.FromRows([][]complex128{{h, h}, {h, -h}})
	}}
	pauliX = entry{"X", 1, func() linalg.Matrix {
		return linalg.FromRows([][]complex128{{0, 1}, {1, 0}})
	}}
	pauliY = entry{"Y", 1, func() linalg.Matrix {
		return linalg.FromRows([][]complex128{{0, -1i}, {1i, 0}})
	}}
	pauliZ = entry{"Z", 1, func() linalg.Matrix {
		return linalg.FromRows([][]complex128{{1, 0}, {0, -1}})
	}}
	phaseS = entry{"S", 1, func() linalg.Matrix {
		return linalg.FromRows([][]complex128{{1, 0}, {0, 1i}})
	}}
	phaseT = entry{"T", 1, func() linalg.Matrix {
		return linalg.FromRows([][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}})
	}}
	cnot = entry{"CNOT", 2, func() linalg.Matrix {
		return permutation(4, 2, 3)
	}}
	swap = entry{"SWAP", 2, func() linalg.Matrix {
		return permutation(4, 1, 2)
	}}
	cz = entry{"CZ", 2, func() linalg.Matrix {
		return diagonal(4, -1)
	}}
	cs = entry{"CS", 2, func() linalg.Matrix {
		return diagonal(4, 1i)
	}}
	toffoli = entry{"TOFFOLI", 3, func() linalg.Matrix {
		return permutation(8, 6, 7)
	}}
	fredkin = entry{"FREDKIN", 3, func() linalg.Matrix {
		return permutation(8, 5, 6)
	}}
)

// catalog maps every accepted spelling to its entry. Lookups are case-sensitive.
var catalog = map[string]entry{
	"I":       identity,
	"H":       hadamard,
	"X":       pauliX,
	"NOT":     pauliX,
	"Y":       pauliY,
	"Z":       pauliZ,
	"S":       phaseS,
	"T":       phaseT,
	"CNOT":    cnot,
	"CX":      cnot,
	"SWAP":    swap,
	"CZ":      cz,
	"CS":      cs,
	"TOFFOLI": toffoli,
	"TOFF":    toffoli,
	"FREDKIN": fredkin,
	"FRED":    fredkin,
}

// Lookup resolves a gate name or alias. The returned matrix is freshly built,
// so callers may modify it freely.
func Lookup(name string) (Gate, error) {
	e, ok := catalog[name]
	if !ok {
		return Gate{}, fmt.Errorf("%w: %q", ErrUnsupportedGate, name)
	}
	return Gate{Name: e.name, Arity: e.arity, Matrix: e.build()}, nil
}

// Names returns every accepted spelling, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByArity returns the canonical names of all gates acting on arity qubits, sorted.
func ByArity(arity int) []string {
	var names []string
	for _, e := range catalog {
		if e.arity == arity && !slices.Contains(names, e.name) {
			names = append(names, e.name)
		}
	}
	slices.Sort(names)
	return names
}

// Aliases returns the spellings that resolve to the same gate as name,
// including the canonical one.
func Aliases(name string) []string {
	e, ok := catalog[name]
	if !ok {
		return nil
	}
	var out []string
	for alias, other := range catalog {
		if other.name == e.name {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Combine lifts a list of operators into one by ordered Kronecker product.
// The first operator acts on the most significant qubits.
func Combine(ops ...linalg.Matrix) linalg.Matrix {
	if len(ops) == 0 {
		return linalg.Identity(1)
	}
	out := ops[0]
	for _, op := range ops[1:] {
		out = linalg.Kron(out, op)
	}
	return out
}

// permutation returns the dim x dim identity with basis states a and b exchanged.
func permutation(dim, a, b int) linalg.Matrix {
	m := linalg.Identity(dim)
	m.Set(a, a, 0)
	m.Set(b, b, 0)
	m.Set(a, b, 1)
	m.Set(b, a, 1)
	return m
}

// diagonal returns the dim x dim identity with the last diagonal entry set to phase.
func diagonal(dim int, phase complex128) linalg.Matrix {
	m := linalg.Identity(dim)
	m.Set(dim-1, dim-1, phase)
	return m
}
