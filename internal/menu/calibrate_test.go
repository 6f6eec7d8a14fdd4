package menu

import (
	"testing"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		value uint16
		want  int
	}{
		{0, 0},
		{CalibLowMid - 1, 0},
		{CalibLowMid, 1},
		{512, 1},
		{CalibMidHigh, 1},
		{CalibMidHigh + 1, 2},
		{analog.MaxRaw, 2},
	}
	for _, tt := range tests {
		if got := Bucket(tt.value); got != tt.want {
			t.Errorf("Bucket(%d): expected %d, got %d", tt.value, tt.want, got)
		}
	}
}

func TestCalibrationRecordsPoints(t *testing.T) {
	var afterLeft display.MenuItem
	var takesADC bool
	var h *harness
	h = newHarness(t,
		stick(analog.Steering, 200),
		press(input.BtnEnter),
		inspect(func() {
			afterLeft = h.lcd.Shown().Menu
			takesADC = h.script.takesADC
		}),
		stick(analog.Steering, CalibLowMid),
		press(input.BtnEnter),
		stick(analog.Steering, 900),
		press(input.BtnEnter),
		press(input.BtnRotR),
		stick(analog.Throttle, 150),
		press(input.BtnEnter),
		stick(analog.Throttle, 850),
		press(input.BtnEnter),
		long(input.BtnBack),
	)

	h.menu.calibrate(h.ctx)

	g := h.menu.Global()
	if g.CalibSteeringLeft != 200 || g.CalibSteeringMid != CalibLowMid || g.CalibSteeringRight != 900 {
		t.Errorf("unexpected steering calibration %d/%d/%d", g.CalibSteeringLeft, g.CalibSteeringMid, g.CalibSteeringRight)
	}
	if g.CalibThrottleFwd != 150 || g.CalibThrottleMid != 512 || g.CalibThrottleBck != 850 {
		t.Errorf("unexpected throttle calibration %d/%d/%d", g.CalibThrottleFwd, g.CalibThrottleMid, g.CalibThrottleBck)
	}

	if afterLeft != calibTargets&^display.MenuModel {
		t.Errorf("expected only the left target to stop showing, got %s", afterLeft)
	}
	if !takesADC {
		t.Errorf("expected the sampler to be taken during calibration")
	}
	if h.script.takesADC {
		t.Errorf("expected the sampler to be released on exit")
	}
	if h.store.GlobalSaves != 1 {
		t.Errorf("expected global settings saved once, got %d", h.store.GlobalSaves)
	}
	if h.lcd.Shown().Menu != display.MenuNone {
		t.Errorf("expected menu indicators cleared, got %s", h.lcd.Shown().Menu)
	}
	if len(h.buzzer.beeps) == 0 || h.buzzer.beeps[len(h.buzzer.beeps)-1] != CalibDoneBeep {
		t.Errorf("expected the done beep last, got %v", h.buzzer.beeps)
	}
	if len(h.backlight.defaults) != 2 || h.backlight.defaults[0] != settings.BacklightMax || h.backlight.defaults[1] != g.BacklightTime {
		t.Errorf("unexpected backlight defaults %v", h.backlight.defaults)
	}
}

func TestCalibrationPointCanBeOverwritten(t *testing.T) {
	h := newHarness(t,
		stick(analog.Steering, 100),
		press(input.BtnEnter),
		stick(analog.Steering, 50),
		press(input.BtnEnter),
		long(input.BtnBack),
	)

	h.menu.calibrate(h.ctx)
	if got := h.menu.Global().CalibSteeringLeft; got != 50 {
		t.Errorf("expected the second reading to win, got %d", got)
	}
}

func TestCalibrationShowsBattery(t *testing.T) {
	var shown []string
	var wants bool
	var h *harness
	h = newHarness(t,
		press(input.BtnRotL),
		inspect(func() {
			shown = append(shown, h.shownChars())
			wants = h.script.wantsBattery
		}),
		battery(700, false),
		inspect(func() { shown = append(shown, h.shownChars()) }),
		battery(655, false),
		inspect(func() { shown = append(shown, h.shownChars()) }),
	)

	h.menu.calibrate(h.ctx)

	want := []string{"820", "700", "655"}
	if len(shown) != len(want) {
		t.Fatalf("expected %d snapshots, got %v", len(want), shown)
	}
	for i := range want {
		if shown[i] != want[i] {
			t.Errorf("snapshot %d: expected %q, got %q", i, want[i], shown[i])
		}
	}
	if h.lcd.Shown().Digit != '4' {
		t.Errorf("expected channel 4 on the digit, got %c", h.lcd.Shown().Digit)
	}
	if !wants {
		t.Errorf("expected wants battery while channel 4 is shown")
	}
	if h.script.wantsBattery || h.script.takesADC {
		t.Errorf("expected sampler flags cleared on exit")
	}
}
