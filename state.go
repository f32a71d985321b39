package main

import (
	"math/cmplx"

	"qregdeck/internal/register"
)

// basisRow is one non-negligible entry of the state vector, for display.
type basisRow struct {
	Index     int
	Ket       string
	Amplitude complex128
	Prob      float64
	Phase     float64
}

// stateRows lists the basis states with non-negligible probability, in
// index order.
func stateRows(reg *register.Register) []basisRow {
	amps := reg.Amplitudes()
	rows := make([]basisRow, 0, len(amps))

	for i, amp := range amps {
		prob := real(amp * cmplx.Conj(amp))
		if prob > 1e-10 {
			rows = append(rows, basisRow{
				Index:     i,
				Ket:       reg.Ket(i),
				Amplitude: amp,
				Prob:      prob,
				Phase:     cmplx.Phase(amp),
			})
		}
	}

	return rows
}

// qubitProbability is the marginal Z-basis distribution of one qubit.
type qubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// qubitMarginals returns the marginals of every qubit, qubit 1 first.
func qubitMarginals(reg *register.Register) []qubitProbability {
	n := reg.NumQubits()
	probs := make([]qubitProbability, n)

	for i, p := range reg.Probabilities() {
		for q := range n {
			// Qubit q+1 is bit n-1-q of the index.
			if i&(1<<(n-1-q)) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}

	return probs
}
