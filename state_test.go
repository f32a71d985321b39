package main

import (
	"math"
	"testing"

	"qregdeck/internal/register"
)

func TestStateRows(t *testing.T) {
	reg, err := register.New(2, register.WithSeed(3))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for _, g := range []struct {
		name    string
		targets []int
	}{
		{"X", []int{1}},
		{"H", []int{2}},
		{"S", []int{2}},
	} {
		if err := reg.ApplyGate(g.name, g.targets...); err != nil {
			t.Fatalf("ApplyGate(%s) error: %v", g.name, err)
		}
	}

	// X on qubit 1, then H and S on qubit 2: (|10> + i|11>)/sqrt2.
	rows := stateRows(reg)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []struct {
		index int
		ket   string
		phase string
	}{
		{2, "|10>", "0"},
		{3, "|11>", "pi/2"},
	}
	for i, w := range want {
		row := rows[i]
		if row.Index != w.index || row.Ket != w.ket {
			t.Errorf("row %d: got %d %s, want %d %s", i, row.Index, row.Ket, w.index, w.ket)
		}
		if math.Abs(row.Prob-0.5) > 1e-9 {
			t.Errorf("row %d: probability %g, want 0.5", i, row.Prob)
		}
		if got := formatPhase(row.Phase); got != w.phase {
			t.Errorf("row %d: phase %s, want %s", i, got, w.phase)
		}
	}
}

func TestQubitMarginals(t *testing.T) {
	reg, err := register.New(3, register.WithSeed(3))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := reg.ApplyGate("X", 1); err != nil {
		t.Fatal(err)
	}
	if err := reg.ApplyGate("H", 3); err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 0, 0.5}
	for q, m := range qubitMarginals(reg) {
		if math.Abs(m.Prob1-want[q]) > 1e-9 {
			t.Errorf("qubit %d: P(1) = %g, want %g", q+1, m.Prob1, want[q])
		}
		if math.Abs(m.Prob0+m.Prob1-1) > 1e-9 {
			t.Errorf("qubit %d: marginals do not sum to 1", q+1)
		}
	}
}
