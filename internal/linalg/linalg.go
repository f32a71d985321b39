// Package linalg holds the dense complex vector and matrix arithmetic the
// register is built on. Everything is row-major and allocation-explicit: no
// function mutates its inputs.
package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Tolerance is the default absolute tolerance used by approximate comparisons.
const Tolerance = 1e-9

type Vector []complex128

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []complex128
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// FromRows builds a matrix from row slices. All rows must share a length.
func FromRows(rows [][]complex128) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("linalg: ragged row %d: %d != %d", i, len(row), m.Cols))
		}
		copy(m.Data[i*m.Cols:], row)
	}
	return m
}

// Identity returns the dim x dim identity.
func Identity(dim int) Matrix {
	m := NewMatrix(dim, dim)
	for i := range dim {
		m.Data[i*dim+i] = 1
	}
	return m
}

func (m Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

func (m Matrix) Set(i, j int, v complex128) {
	m.Data[i*m.Cols+j] = v
}

func (m Matrix) Clone() Matrix {
	data := make([]complex128, len(m.Data))
	copy(data, m.Data)
	return Matrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b Matrix) Matrix {
	out := NewMatrix(a.Rows*b.Rows, a.Cols*b.Cols)
	for ai := range a.Rows {
		for aj := range a.Cols {
			av := a.At(ai, aj)
			if av == 0 {
				continue
			}
			for bi := range b.Rows {
				row := (ai*b.Rows + bi) * out.Cols
				for bj := range b.Cols {
					out.Data[row+aj*b.Cols+bj] = av * b.At(bi, bj)
				}
			}
		}
	}
	return out
}

// Mul returns the matrix product a·b.
func Mul(a, b Matrix) Matrix {
	if a.Cols != b.Rows {
		panic(fmt.Sprintf("linalg: Mul shape mismatch %dx%d · %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	out := NewMatrix(a.Rows, b.Cols)
	for i := range a.Rows {
		for k := range a.Cols {
			av := a.At(i, k)
			if av == 0 {
				continue
			}
			for j := range b.Cols {
				out.Data[i*out.Cols+j] += av * b.At(k, j)
			}
		}
	}
	return out
}

// MulVec returns m·v as a new vector.
func MulVec(m Matrix, v Vector) Vector {
	if m.Cols != len(v) {
		panic(fmt.Sprintf("linalg: MulVec shape mismatch %dx%d · %d", m.Rows, m.Cols, len(v)))
	}
	out := make(Vector, m.Rows)
	for i := range m.Rows {
		var sum complex128
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		for j, mv := range row {
			if mv != 0 {
				sum += mv * v[j]
			}
		}
		out[i] = sum
	}
	return out
}

// Adjoint returns the conjugate transpose.
func Adjoint(m Matrix) Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := range m.Rows {
		for j := range m.Cols {
			out.Set(j, i, cmplx.Conj(m.At(i, j)))
		}
	}
	return out
}

// IsUnitary reports whether m†m equals the identity within tol.
func IsUnitary(m Matrix, tol float64) bool {
	if m.Rows != m.Cols {
		return false
	}
	return MatrixApproxEqual(Mul(Adjoint(m), m), Identity(m.Rows), tol)
}

// MatrixApproxEqual compares two matrices entry by entry.
func MatrixApproxEqual(a, b Matrix, tol float64) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for i := range a.Data {
		if cmplx.Abs(a.Data[i]-b.Data[i]) > tol {
			return false
		}
	}
	return true
}

func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// NormSquared is Σ|v_i|².
func (v Vector) NormSquared() float64 {
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.NormSquared())
}

// Scale returns v·s.
func (v Vector) Scale(s complex128) Vector {
	out := make(Vector, len(v))
	for i, a := range v {
		out[i] = a * s
	}
	return out
}

// Normalized returns v/‖v‖. A zero vector is returned unchanged.
func (v Vector) Normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v.Clone()
	}
	return v.Scale(complex(1/n, 0))
}

// ApproxEqual compares two vectors entry by entry.
func (v Vector) ApproxEqual(w Vector, tol float64) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if cmplx.Abs(v[i]-w[i]) > tol {
			return false
		}
	}
	return true
}

// EqualUpToPhase reports whether v = e^{iθ}·w for some θ, within tol.
func (v Vector) EqualUpToPhase(w Vector, tol float64) bool {
	if len(v) != len(w) {
		return false
	}
	// Align on the largest entry of w to keep the phase estimate stable.
	k, best := -1, 0.0
	for i, a := range w {
		if m := cmplx.Abs(a); m > best {
			k, best = i, m
		}
	}
	if k < 0 {
		return v.Norm() <= tol
	}
	if cmplx.Abs(v[k]) <= tol {
		return false
	}
	phase := v[k] / w[k]
	phase /= complex(cmplx.Abs(phase), 0)
	return v.ApproxEqual(w.Scale(phase), tol)
}
