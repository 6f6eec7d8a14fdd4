package command

import "testing"

func TestMapToRange(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{3, 1},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := MapToRange(tt.value, -1, 1, 0, 1); got != tt.want {
			t.Errorf("MapToRange(%.1f): expected %.2f, got %.2f", tt.value, tt.want, got)
		}
	}
}

func TestGetValueWithMidDeadZone(t *testing.T) {
	if got := GetValueWithMidDeadZone(0.02, 0, 0.05); got != 0 {
		t.Errorf("expected value inside the dead zone snapped to mid, got %.2f", got)
	}
	if got := GetValueWithMidDeadZone(0.2, 0, 0.05); got != 0.2 {
		t.Errorf("expected value outside the dead zone kept, got %.2f", got)
	}
}

func TestValue(t *testing.T) {
	values := []float64{0.1, 0.2}
	if Value(values, 2) != 0.2 || Value(values, 3) != 0 || Value(values, 0) != 0 {
		t.Errorf("unexpected channel lookup")
	}
}
