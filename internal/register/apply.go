package register

import (
	"fmt"
	"slices"

	"qregdeck/internal/gates"
	"qregdeck/internal/linalg"
)

// ApplyGate applies the named catalog gate to the given 1-indexed qubits.
//
// A single-qubit gate may list several targets and is applied to all of them
// at once. Multi-qubit gates take exactly arity targets; their order selects
// roles (CNOT's first target is the control, TOFFOLI's last is the flipped
// qubit) and they may be anywhere in the register. On error the state is left
// untouched.
func (r *Register) ApplyGate(name string, targets ...int) error {
	g, err := gates.Lookup(name)
	if err != nil {
		return err
	}
	if err := r.validateTargets(g, targets); err != nil {
		return err
	}

	if g.Arity == 1 {
		r.amplitudes = linalg.MulVec(r.spread(g.Matrix, targets), r.amplitudes)
		r.gen++
		r.logger.Debug("applied gate", "gate", g.Name, "targets", targets)
		return nil
	}

	plan := planRoute(r.n, targets)
	for _, step := range plan.steps(g.Matrix) {
		r.amplitudes = linalg.MulVec(r.lift(step.op, step.at), r.amplitudes)
	}
	r.gen++
	r.logger.Debug("applied gate", "gate", g.Name, "targets", targets, "block", plan.start, "swaps", len(plan.swaps))
	return nil
}

// Swap exchanges two qubits.
func (r *Register) Swap(a, b int) error {
	return r.ApplyGate("SWAP", a, b)
}

// Operator returns the full 2^n x 2^n operator ApplyGate would apply for the
// same arguments, composed from the individual lifted steps.
func (r *Register) Operator(name string, targets ...int) (linalg.Matrix, error) {
	g, err := gates.Lookup(name)
	if err != nil {
		return linalg.Matrix{}, err
	}
	if err := r.validateTargets(g, targets); err != nil {
		return linalg.Matrix{}, err
	}
	if g.Arity == 1 {
		return r.spread(g.Matrix, targets), nil
	}

	op := linalg.Identity(1 << r.n)
	for _, step := range planRoute(r.n, targets).steps(g.Matrix) {
		op = linalg.Mul(r.lift(step.op, step.at), op)
	}
	return op, nil
}

func (r *Register) validateTargets(g gates.Gate, targets []int) error {
	switch {
	case g.Arity == 1 && len(targets) == 0:
		return fmt.Errorf("%w: %s needs at least one target", ErrInvalidTargets, g.Name)
	case g.Arity > 1 && len(targets) != g.Arity:
		return fmt.Errorf("%w: %s needs %d targets, got %d", ErrInvalidTargets, g.Name, g.Arity, len(targets))
	}
	for i, t := range targets {
		if t < 1 || t > r.n {
			return fmt.Errorf("%w: qubit %d out of range [1, %d]", ErrInvalidTargets, t, r.n)
		}
		if slices.Contains(targets[:i], t) {
			return fmt.Errorf("%w: qubit %d listed twice", ErrInvalidTargets, t)
		}
	}
	return nil
}

// spread builds the operator applying a single-qubit matrix to every listed
// qubit and the identity to the rest.
func (r *Register) spread(m linalg.Matrix, targets []int) linalg.Matrix {
	ops := make([]linalg.Matrix, r.n)
	for q := range r.n {
		if slices.Contains(targets, q+1) {
			ops[q] = m
		} else {
			ops[q] = linalg.Identity(2)
		}
	}
	return gates.Combine(ops...)
}

// lift places a k-qubit matrix on the contiguous block starting at qubit at,
// with identities on every other qubit.
func (r *Register) lift(m linalg.Matrix, at int) linalg.Matrix {
	k := 0
	for d := m.Rows; d > 1; d >>= 1 {
		k++
	}
	ops := make([]linalg.Matrix, 0, r.n-k+1)
	for q := 1; q <= r.n-k+1; q++ {
		if q == at {
			ops = append(ops, m)
		} else {
			ops = append(ops, linalg.Identity(2))
		}
	}
	return gates.Combine(ops...)
}
