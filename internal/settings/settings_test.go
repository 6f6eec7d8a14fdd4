package settings

import (
	"encoding/json"
	"testing"
)

func TestBoundsStepSaturates(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		start  int
		deltas []int
	}{
		{"trim up", TrimBounds, 95, []int{5, 5, 1, 1}},
		{"trim down", TrimBounds, -97, []int{-5, -1, -5}},
		{"dualrate", DualRateBounds, 3, []int{-5, -5, 5, 1}},
		{"expo mixed", ExpoBounds, 0, []int{5, 5, -1, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}},
		{"endpoint", EndpointBounds(&GlobalSettings{EndpointMax: 120}), 118, []int{1, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := tt.start
			for _, d := range tt.deltas {
				value = tt.bounds.Step(value, d)
				if value < tt.bounds.Min || value > tt.bounds.Max {
					t.Fatalf("value %d escaped [%d, %d]", value, tt.bounds.Min, tt.bounds.Max)
				}
			}
		})
	}
}

func TestBoundsClampsExactlyToBound(t *testing.T) {
	if got := TrimBounds.Step(97, 5); got != TrimMax {
		t.Errorf("expected %d, got %d", TrimMax, got)
	}
	if got := TrimBounds.Step(-97, -5); got != -TrimMax {
		t.Errorf("expected %d, got %d", -TrimMax, got)
	}
	if got := DualRateBounds.Step(2, -5); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestNameText(t *testing.T) {
	n := NewName("ab")
	if n.String() != "AB " {
		t.Errorf("expected padded upper case name, got %q", n.String())
	}

	data, err := json.Marshal(DefaultModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var m ModelSettings
	err = json.Unmarshal(data, &m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != DefaultModel() {
		t.Errorf("expected default model after json round trip, got %+v", m)
	}

	if err := n.UnmarshalText([]byte("TOOLONG")); err == nil {
		t.Errorf("expected error for long name")
	}
}

func TestReverseBit(t *testing.T) {
	m := DefaultModel()
	m.Reverse ^= ReverseBit(2)
	if !m.Reversed(2) || m.Reversed(1) {
		t.Errorf("expected only channel 2 reversed, got %08b", m.Reverse)
	}
}
