package menu

import (
	"testing"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

func TestWrapRoundTrip(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		for start := 1; start <= n; start++ {
			for steps := 0; steps < 3*n; steps++ {
				value := start
				for i := 0; i < steps; i++ {
					value = wrap(value, 1, n)
				}
				for i := 0; i < steps; i++ {
					value = wrap(value, -1, n)
				}
				if value != start {
					t.Fatalf("n=%d start=%d steps=%d: ended at %d", n, start, steps, value)
				}
			}
		}
	}
	if wrap(1, -1, 4) != 4 || wrap(4, 1, 4) != 1 {
		t.Errorf("expected wraparound at both ends")
	}
}

func TestDirectionDeadband(t *testing.T) {
	tests := []struct {
		name    string
		channel int
		index   int
		mid     int
		raw     int
		start   int
		want    int
	}{
		{"inside low edge", 1, analog.Steering, 512, 512 - Deadband, settings.DirRight, settings.DirRight},
		{"past low edge", 1, analog.Steering, 512, 512 - Deadband - 1, settings.DirRight, settings.DirLeft},
		{"inside high edge", 1, analog.Steering, 512, 512 + Deadband, settings.DirLeft, settings.DirLeft},
		{"past high edge", 1, analog.Steering, 512, 512 + Deadband + 1, settings.DirLeft, settings.DirRight},
		{"throttle past low edge", 2, analog.Throttle, 600, 600 - Deadband - 1, settings.DirRight, settings.DirLeft},
		{"throttle inside high edge", 2, analog.Throttle, 600, 600 + Deadband, settings.DirLeft, settings.DirLeft},
		{"channel 3 follows steering", 3, analog.Steering, 512, 512 + Deadband + 1, settings.DirLeft, settings.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.menu.global.CalibThrottleMid = 600
			h.menu.direction = tt.start
			h.script.channels[tt.index] = uint16(analog.Oversampled(tt.raw))

			h.menu.setDirection(tt.channel)
			if h.menu.direction != tt.want {
				t.Errorf("expected direction %d, got %d", tt.want, h.menu.direction)
			}
		})
	}
}

func TestEndpointFollowsStickDirection(t *testing.T) {
	var h *harness
	var takesADC bool
	var leftShown, rightShown display.Frame
	steps := []step{
		stick(analog.Steering, 512-Deadband),
		stick(analog.Steering, 512-Deadband-1),
		inspect(func() {
			leftShown = h.lcd.Shown()
			takesADC = h.script.takesADC
		}),
		press(input.BtnEnd),
		press(input.BtnRotR),
		stick(analog.Steering, 512+Deadband),
		press(input.BtnRotR),
		stick(analog.Steering, 512+Deadband+1),
		inspect(func() { rightShown = h.lcd.Shown() }),
	}
	for i := 0; i < 12; i++ {
		steps = append(steps, long(input.BtnRotR))
	}
	steps = append(steps, press(input.BtnEnter))

	h = newHarness(t, steps...)
	h.menu.direction = settings.DirRight
	h.menu.editChannels(h.ctx, FieldEndpoint)

	ep := h.menu.Model().Endpoint[0]
	if ep[settings.DirLeft] != 102 {
		t.Errorf("expected left end-point 102, got %d", ep[settings.DirLeft])
	}
	if ep[settings.DirRight] != settings.DefaultEndpointMax {
		t.Errorf("expected right end-point clamped to %d, got %d", settings.DefaultEndpointMax, ep[settings.DirRight])
	}

	if leftShown.Symbols&display.SymLeft == 0 || leftShown.Symbols&display.SymRight != 0 {
		t.Errorf("expected left indicator, got %s", leftShown)
	}
	if rightShown.Symbols&display.SymRight == 0 || rightShown.Symbols&display.SymLeft != 0 {
		t.Errorf("expected right indicator, got %s", rightShown)
	}
	if string(rightShown.Chars[:]) != "100" {
		t.Errorf("expected the right end-point shown after the flip, got %q", string(rightShown.Chars[:]))
	}
	if !takesADC || h.script.takesADC {
		t.Errorf("expected the sampler taken while editing and released after")
	}

	saved, ok := h.store.Saved(0)
	if !ok || saved.Endpoint[0] != ep {
		t.Errorf("expected end-points saved, got %+v", saved.Endpoint[0])
	}
}

func TestTrimSaturatesAndWrapsChannels(t *testing.T) {
	var h *harness
	var shown string
	steps := []step{press(input.BtnEnd)}
	for i := 0; i < 25; i++ {
		steps = append(steps, long(input.BtnRotR))
	}
	steps = append(steps,
		inspect(func() { shown = h.shownChars() }),
		press(input.BtnEnd),
		press(input.BtnRotR),
		press(input.BtnRotR),
		press(input.BtnEnd),
		press(input.BtnRotL),
		press(input.BtnBack),
	)

	h = newHarness(t, steps...)
	h.menu.editChannels(h.ctx, FieldTrim)

	m := h.menu.Model()
	if m.Trim[0] != settings.TrimMax-1 {
		t.Errorf("expected trim 1 at %d after one step down, got %d", settings.TrimMax-1, m.Trim[0])
	}
	if m.Trim[1] != 0 {
		t.Errorf("expected trim 2 untouched, got %d", m.Trim[1])
	}
	if shown != "R99" {
		t.Errorf("expected saturated trim shown as R99, got %q", shown)
	}
	if h.store.ModelSaves != 1 {
		t.Errorf("expected one model save, got %d", h.store.ModelSaves)
	}
}

func TestSubtrimCoversAllChannels(t *testing.T) {
	var h *harness
	var digit byte
	var menuBlink display.Blink
	h = newHarness(t,
		press(input.BtnRotL),
		inspect(func() {
			digit = h.lcd.Shown().Digit
			menuBlink = h.lcd.Shown().Blink[display.RegionMenu]
		}),
		press(input.BtnEnd),
		press(input.BtnRotL),
		press(input.BtnEnter),
	)

	h.menu.editChannels(h.ctx, FieldSubtrim)
	if digit != '4' {
		t.Errorf("expected channel 4 after wrapping left, got %c", digit)
	}
	if menuBlink != display.BlinkSpace {
		t.Errorf("expected the menu row blinking during sub-trim")
	}
	if got := h.menu.Model().Subtrim[3]; got != -1 {
		t.Errorf("expected sub-trim 4 at -1, got %d", got)
	}
	if h.lcd.Shown().Blink[display.RegionMenu] != display.BlinkOff {
		t.Errorf("expected blink restored on exit")
	}
}

func TestCursorBlink(t *testing.T) {
	var h *harness
	var selecting, editing display.Frame
	h = newHarness(t,
		inspect(func() { selecting = h.lcd.Shown() }),
		press(input.BtnEnd),
		inspect(func() { editing = h.lcd.Shown() }),
		press(input.BtnBack),
	)

	h.menu.editChannels(h.ctx, FieldDualRate)
	if selecting.Blink[display.Region7Seg] != display.BlinkSpace || selecting.Blink[display.RegionChar1] != display.BlinkOff {
		t.Errorf("expected the channel digit blinking while selecting")
	}
	if editing.Blink[display.Region7Seg] != display.BlinkOff || editing.Blink[display.RegionChar3] != display.BlinkSpace {
		t.Errorf("expected the value blinking while editing")
	}
	if string(editing.Chars[:]) != "100" {
		t.Errorf("expected dual rate 100, got %q", string(editing.Chars[:]))
	}
}
