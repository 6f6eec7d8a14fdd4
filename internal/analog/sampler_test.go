package analog

import (
	"context"
	"errors"
	"testing"

	"github.com/Speshl/gorrc_tx/internal/config"
)

func newTestSampler(sim *Sim) *Sampler {
	return NewSampler(config.SamplerConfig{
		IdleDivider:  4,
		BatteryEvery: 10,
		BatteryLow:   700,
	}, sim, sim)
}

func TestOversampledDomain(t *testing.T) {
	sim := NewSim()
	s := newTestSampler(sim)
	if err := s.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.Channel(Steering); got != uint16(Oversampled(simMid)) {
		t.Errorf("expected primed value %d, got %d", Oversampled(simMid), got)
	}
	if got := Filtered(s.Channel(Steering)); got != simMid {
		t.Errorf("expected filtered %d, got %d", simMid, got)
	}

	sim.Move(Steering, 100)
	for i := 0; i < 64; i++ {
		if err := s.Sample(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := Filtered(s.Channel(Steering)); got != simMid+100 {
		t.Errorf("expected filter to settle on %d, got %d", simMid+100, got)
	}
	if got := Filtered(s.Channel(Throttle)); got != simMid {
		t.Errorf("expected throttle untouched, got %d", got)
	}
}

func TestBatteryLow(t *testing.T) {
	sim := NewSim()
	s := newTestSampler(sim)
	s.SetWantsBattery(true)
	if err := s.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BatteryLow() {
		t.Fatalf("expected battery ok at %d", s.Battery())
	}

	sim.MoveBattery(-200)
	for i := 0; i < 32; i++ {
		_ = s.Sample()
	}
	if !s.BatteryLow() {
		t.Errorf("expected battery low at %d", s.Battery())
	}
}

func TestWaitWakesOnEverySampleWhenTaken(t *testing.T) {
	s := newTestSampler(NewSim())
	s.SetTakesADC(true)
	_ = s.Sample()
	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SetTakesADC(false)
	for i := 0; i < 2; i++ {
		_ = s.Sample()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected no wake before idle divider, got %v", err)
	}

	_ = s.Sample()
	if err := s.Wait(context.Background()); err != nil {
		t.Errorf("expected wake on idle divider, got %v", err)
	}
}
