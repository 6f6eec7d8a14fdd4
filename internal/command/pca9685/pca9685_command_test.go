package command

import "testing"

func TestFraction(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0.5},
		{InputMax, MaxValue},
		{InputMin, MinValue},
		{3, MaxValue},
		{0.75, 0.75},
	}
	for _, tt := range tests {
		if got := Fraction(tt.value); got != tt.want {
			t.Errorf("Fraction(%.2f): expected %.2f, got %.2f", tt.value, tt.want, got)
		}
	}
}
