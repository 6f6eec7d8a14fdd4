package menu

import (
	"context"
	"testing"
	"time"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
	"github.com/Speshl/gorrc_tx/internal/store"
)

// step is one pass of a screen loop. Its events are visible until the next
// ResetAutorepeat, do runs inside the pass's stop.
type step struct {
	pressed input.Button
	held    input.Button
	do      func(s *script)
}

func press(b input.Button) step { return step{pressed: b} }
func long(b input.Button) step  { return step{pressed: b, held: b} }
func idle() step                { return step{} }

func stick(index, raw int) step {
	return step{do: func(s *script) {
		s.channels[index] = uint16(analog.Oversampled(raw))
	}}
}

func battery(value uint16, low bool) step {
	return step{do: func(s *script) {
		s.battery = value
		s.low = low
	}}
}

func inspect(fn func()) step {
	return step{do: func(*script) { fn() }}
}

// script plays the sampler and the input latch.
type script struct {
	steps  []step
	pos    int
	cur    step
	cancel context.CancelFunc

	channels     [analog.ChannelCount]uint16
	battery      uint16
	low          bool
	takesADC     bool
	wantsBattery bool
	autorepeat   time.Duration
}

func (s *script) Wait(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.pos >= len(s.steps) {
		s.cancel()
		return context.Canceled
	}
	s.cur = s.steps[s.pos]
	s.pos++
	if s.cur.do != nil {
		s.cur.do(s)
	}
	return nil
}

func (s *script) Channel(index int) uint16       { return s.channels[index] }
func (s *script) Battery() uint16                { return s.battery }
func (s *script) BatteryLow() bool               { return s.low }
func (s *script) SetTakesADC(takes bool)         { s.takesADC = takes }
func (s *script) SetWantsBattery(wants bool)     { s.wantsBattery = wants }
func (s *script) Pressed(mask input.Button) bool { return s.cur.pressed&mask != 0 }
func (s *script) Held(mask input.Button) bool    { return s.cur.held&mask != 0 }
func (s *script) SetAutorepeat(d time.Duration)  { s.autorepeat = d }

func (s *script) ResetAutorepeat() {
	s.cur.pressed = input.BtnNone
	s.cur.held = input.BtnNone
}

type fakeBuzzer struct {
	beeps []time.Duration
	ons   int
	offs  int
}

func (b *fakeBuzzer) Beep(d time.Duration)                   { b.beeps = append(b.beeps, d) }
func (b *fakeBuzzer) On(on, off time.Duration, volume uint8) { b.ons++ }
func (b *fakeBuzzer) Off()                                   { b.offs++ }

type fakeBacklight struct {
	defaults []uint16
	ons      int
}

func (b *fakeBacklight) SetDefault(seconds uint16) { b.defaults = append(b.defaults, seconds) }
func (b *fakeBacklight) On()                       { b.ons++ }

type fakeCalc struct {
	globals []settings.GlobalSettings
	models  []settings.ModelSettings
	wakes   int
}

func (c *fakeCalc) SetGlobal(g settings.GlobalSettings) { c.globals = append(c.globals, g) }
func (c *fakeCalc) SetModel(m settings.ModelSettings)   { c.models = append(c.models, m) }
func (c *fakeCalc) Wake()                               { c.wakes++ }

type harness struct {
	ctx       context.Context
	script    *script
	lcd       *display.LCD
	store     *store.Memory
	buzzer    *fakeBuzzer
	backlight *fakeBacklight
	calc      *fakeCalc
	menu      *Menu
}

// newHarness builds a menu over a store that already holds the defaults,
// so Run does not start with calibration.
func newHarness(t *testing.T, steps ...step) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &harness{
		ctx:       ctx,
		script:    &script{steps: steps, cancel: cancel, battery: 820},
		lcd:       display.NewLCD(nil),
		store:     store.NewMemory(20),
		buzzer:    &fakeBuzzer{},
		backlight: &fakeBacklight{},
		calc:      &fakeCalc{},
	}
	for i := range h.script.channels {
		h.script.channels[i] = uint16(analog.Oversampled(512))
	}
	if err := h.store.SaveGlobal(settings.DefaultGlobal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.store.GlobalSaves = 0

	h.menu = NewMenu(Options{}, Devices{
		Store:     h.store,
		Analog:    h.script,
		Input:     h.script,
		Display:   h.lcd,
		Buzzer:    h.buzzer,
		Backlight: h.backlight,
		Calc:      h.calc,
	})
	return h
}

func (h *harness) shownChars() string {
	f := h.lcd.Shown()
	return string(f.Chars[:])
}

func (h *harness) saveModel(t *testing.T, slot int, m settings.ModelSettings) {
	t.Helper()
	if err := h.store.SaveModel(slot, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.store.ModelSaves = 0
}
