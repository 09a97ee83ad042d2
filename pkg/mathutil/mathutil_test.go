package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Rounds up", 1.236, 1.24},
		{"Rounds down", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number", -1.236, -1.24},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Positive passes through", 42.5, 42.5},
		{"Zero passes through", 0, 0},
		{"Negative clamps to zero", -17.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NonNegative(tt.input); got != tt.expected {
				t.Errorf("NonNegative(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{"Within range", 0.5, 0, 0.95, 0.5},
		{"Below floor", -0.2, 0, 0.95, 0},
		{"Above ceiling", 1.4, 0, 0.95, 0.95},
		{"At bound", 0.95, 0, 0.95, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 12); got != 1 {
		t.Errorf("ClampInt(0, 1, 12) = %d, expected 1", got)
	}
	if got := ClampInt(15, 1, 12); got != 12 {
		t.Errorf("ClampInt(15, 1, 12) = %d, expected 12", got)
	}
	if got := ClampInt(7, 1, 12); got != 7 {
		t.Errorf("ClampInt(7, 1, 12) = %d, expected 7", got)
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		num, den    float64
		expected    float64
		wantFloored bool
	}{
		{"Normal division", 10, 4, 2.5, false},
		{"Zero denominator engages floor", 5, 0, 5e6, true},
		{"Negative denominator engages floor", 5, -0.1, 5e6, true},
		{"Denominator just above epsilon", 1, 0.01, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, floored := SafeDivide(tt.num, tt.den)
			if floored != tt.wantFloored {
				t.Fatalf("SafeDivide(%v, %v) floored = %v, expected %v", tt.num, tt.den, floored, tt.wantFloored)
			}
			if math.Abs(got-tt.expected) > math.Abs(tt.expected)*1e-9 {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.num, tt.den, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.001, 1.002, 0.01) {
		t.Error("expected values within tolerance")
	}
	if WithinTolerance(1.0, 1.1, 0.01) {
		t.Error("expected values outside tolerance")
	}
}

func TestCalculatePercentage(t *testing.T) {
	if got := CalculatePercentage(25, 100); got != 25 {
		t.Errorf("CalculatePercentage(25, 100) = %v, expected 25", got)
	}
	if got := CalculatePercentage(10, 0); got != 0 {
		t.Errorf("CalculatePercentage(10, 0) = %v, expected 0", got)
	}
}
