package main

import (
	"fmt"
	"math"
)

// formatPhase formats an angle in radians, using pi notation when it is a
// common fraction of pi: 0, pi, pi/2, pi/4, 3*pi/4, -pi/4 and so on.
func formatPhase(val float64) string {
	if math.Abs(val) < 1e-10 {
		return "0"
	}

	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi / 3, "2*pi/3"},
		{5 * math.Pi / 6, "5*pi/6"},
		{3 * math.Pi / 8, "3*pi/8"},
		{5 * math.Pi / 8, "5*pi/8"},
		{7 * math.Pi / 8, "7*pi/8"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%.4f", val)
}

// formatAmplitude renders a complex amplitude compactly, dropping a zero
// imaginary or real part.
func formatAmplitude(a complex128) string {
	re, im := real(a), imag(a)
	switch {
	case math.Abs(im) < 1e-10:
		return fmt.Sprintf("%+.4f", re)
	case math.Abs(re) < 1e-10:
		return fmt.Sprintf("%+.4fi", im)
	default:
		return fmt.Sprintf("%+.4f%+.4fi", re, im)
	}
}
