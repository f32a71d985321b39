package gates

import (
	"fmt"

	"qregdeck/internal/linalg"
)

// Basis letters accepted in a measurement spec. I leaves a qubit unmeasured.
const (
	BasisI = 'I'
	BasisX = 'X'
	BasisY = 'Y'
	BasisZ = 'Z'
)

// Projector returns the single-qubit projector onto the eigenstate selected by
// bit in the given basis, together with its ket label:
//
//	Z: 0 -> |0>, 1 -> |1>
//	X: 0 -> |+>, 1 -> |->
//	Y: 0 -> |i>, 1 -> |-i>
//
// Basis I yields the identity and an empty label.
func Projector(basis byte, bit int) (linalg.Matrix, string, error) {
	if bit != 0 && bit != 1 {
		return linalg.Matrix{}, "", fmt.Errorf("projector bit must be 0 or 1, got %d", bit)
	}
	switch basis {
	case BasisI:
		return linalg.Identity(2), "", nil
	case BasisZ:
		if bit == 0 {
			return linalg.FromRows([][]complex128{{1, 0}, {0, 0}}), "|0>", nil
		}
		return linalg.FromRows([][]complex128{{0, 0}, {0, 1}}), "|1>", nil
	case BasisX:
		if bit == 0 {
			return linalg.FromRows([][]complex128{{0.5, 0.5}, {0.5, 0.5}}), "|+>", nil
		}
		return linalg.FromRows([][]complex128{{0.5, -0.5}, {-0.5, 0.5}}), "|->", nil
	case BasisY:
		// |i> = (|0> + i|1>)/√2, so |i><i| = ½[[1, -i], [i, 1]].
		if bit == 0 {
			return linalg.FromRows([][]complex128{{0.5, -0.5i}, {0.5i, 0.5}}), "|i>", nil
		}
		return linalg.FromRows([][]complex128{{0.5, 0.5i}, {-0.5i, 0.5}}), "|-i>", nil
	default:
		return linalg.Matrix{}, "", fmt.Errorf("unknown basis %q", basis)
	}
}
