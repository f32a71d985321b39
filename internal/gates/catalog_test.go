package gates

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qregdeck/internal/linalg"
)

func TestLookupAliases(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		arity     int
	}{
		{"I", "I", 1},
		{"H", "H", 1},
		{"X", "X", 1},
		{"NOT", "X", 1},
		{"Y", "Y", 1},
		{"Z", "Z", 1},
		{"S", "S", 1},
		{"T", "T", 1},
		{"CNOT", "CNOT", 2},
		{"CX", "CNOT", 2},
		{"SWAP", "SWAP", 2},
		{"CZ", "CZ", 2},
		{"CS", "CS", 2},
		{"TOFFOLI", "TOFFOLI", 3},
		{"TOFF", "TOFFOLI", 3},
		{"FREDKIN", "FREDKIN", 3},
		{"FRED", "FREDKIN", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, g.Name)
			assert.Equal(t, tt.arity, g.Arity)

			dim := 1 << tt.arity
			assert.Equal(t, dim, g.Matrix.Rows)
			assert.Equal(t, dim, g.Matrix.Cols)
			assert.True(t, linalg.IsUnitary(g.Matrix, linalg.Tolerance), "%s is not unitary", tt.name)
		})
	}
}

func TestLookupUnsupported(t *testing.T) {
	for _, name := range []string{"cnot", "h", "RX", "", "CCX"} {
		_, err := Lookup(name)
		assert.ErrorIs(t, err, ErrUnsupportedGate, "Lookup(%q)", name)
	}
}

func TestLookupReturnsFreshMatrix(t *testing.T) {
	g, err := Lookup("X")
	require.NoError(t, err)
	g.Matrix.Set(0, 0, 42)

	again, err := Lookup("X")
	require.NoError(t, err)
	assert.Equal(t, complex128(0), again.Matrix.At(0, 0), "catalog matrix was mutated through a lookup result")
}

func TestControlledGatesActOnLastTarget(t *testing.T) {
	tests := []struct {
		gate string
		in   int
		out  int
	}{
		{"CNOT", 0b10, 0b11},
		{"CNOT", 0b01, 0b01},
		{"SWAP", 0b01, 0b10},
		{"TOFFOLI", 0b110, 0b111},
		{"TOFFOLI", 0b101, 0b101},
		{"FREDKIN", 0b101, 0b110},
		{"FREDKIN", 0b011, 0b011},
	}

	for _, tt := range tests {
		g, err := Lookup(tt.gate)
		require.NoError(t, err)
		v := make(linalg.Vector, g.Matrix.Rows)
		v[tt.in] = 1
		got := linalg.MulVec(g.Matrix, v)
		assert.Equal(t, complex128(1), got[tt.out], "%s |%b> did not map to |%b>: %v", tt.gate, tt.in, tt.out, got)
	}
}

func TestCombine(t *testing.T) {
	x, _ := Lookup("X")
	i, _ := Lookup("I")

	op := Combine(x.Matrix, i.Matrix, i.Matrix)
	require.Equal(t, 8, op.Rows)
	v := make(linalg.Vector, 8)
	v[0] = 1
	assert.Equal(t, complex128(1), linalg.MulVec(op, v)[0b100], "X on qubit 1 should set the most significant bit")

	id := Combine()
	assert.Equal(t, 1, id.Rows)
	assert.Equal(t, complex128(1), id.At(0, 0), "empty Combine should be the 1x1 identity")
}

func TestNamesAndArity(t *testing.T) {
	names := Names()
	assert.True(t, slices.IsSorted(names))
	assert.Len(t, names, 17)
	assert.Equal(t, []string{"FREDKIN", "TOFFOLI"}, ByArity(3))
	assert.Equal(t, []string{"CNOT", "CX"}, Aliases("CX"))
}
