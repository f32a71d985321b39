package register

import (
	"slices"

	"qregdeck/internal/gates"
	"qregdeck/internal/linalg"
)

// route gathers the targets of a multi-qubit gate into a contiguous,
// correctly ordered block by adjacent transpositions.
//
// Each entry p in swaps exchanges physical positions p and p+1. Replaying
// swaps forward moves target i to position start+i; replaying them backwards
// restores every qubit to where it was.
type route struct {
	start int
	swaps []int
}

// planRoute computes the route for targets on an n-qubit register. The block
// begins at the lowest target, pulled left when the gate would overrun qubit
// n. Every target is walked leftwards into its slot in target order, so
// targets already placed are never disturbed. Targets that are already
// contiguous and ascending give an empty route.
func planRoute(n int, targets []int) route {
	k := len(targets)
	start := min(slices.Min(targets), n-k+1)

	// layout[p] is the qubit currently at position p; pos is its inverse.
	layout := make([]int, n+1)
	pos := make([]int, n+1)
	for p := 1; p <= n; p++ {
		layout[p], pos[p] = p, p
	}

	var swaps []int
	for i, t := range targets {
		for p := pos[t]; p > start+i; p-- {
			a, b := layout[p-1], layout[p]
			layout[p-1], layout[p] = b, a
			pos[a], pos[b] = p, p-1
			swaps = append(swaps, p-1)
		}
	}
	return route{start: start, swaps: swaps}
}

// step is one lifted operation: a small matrix on the block starting at at.
type step struct {
	op linalg.Matrix
	at int
}

// steps expands the route around gate into the full sequence of lifted
// operations: the gathering swaps, the gate on the block, then the same swaps
// in reverse.
func (rt route) steps(gate linalg.Matrix) []step {
	swap, _ := gates.Lookup("SWAP")
	out := make([]step, 0, 2*len(rt.swaps)+1)
	for _, p := range rt.swaps {
		out = append(out, step{op: swap.Matrix, at: p})
	}
	out = append(out, step{op: gate, at: rt.start})
	for i := len(rt.swaps) - 1; i >= 0; i-- {
		out = append(out, step{op: swap.Matrix, at: rt.swaps[i]})
	}
	return out
}
