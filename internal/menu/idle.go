package menu

import (
	"context"
	"time"

	"github.com/Speshl/gorrc_tx/internal/display"
)

// stop is the single suspension point of every screen loop. It waits for
// the sampler and then surfaces battery alerts. It returns false once ctx
// is done so loops leave through their normal exit path.
func (m *Menu) stop(ctx context.Context) bool {
	err := m.analog.Wait(ctx)
	if err != nil {
		return false
	}
	m.updateIdleAlert()
	return true
}

// updateIdleAlert only writes to the display and buzzer when the low
// battery state changes.
func (m *Menu) updateIdleAlert() {
	if m.alertSuspended {
		return
	}
	low := m.analog.BatteryLow()
	if low == m.batteryLowShown {
		return
	}
	m.batteryLowShown = low

	if low {
		m.lcd.Segment(display.SymLowPwr, true)
		m.lcd.SegmentBlink(display.SymLowPwr, true)
		m.buzzer.On(AlertToneOn, AlertToneOff, AlertVolume)
	} else {
		m.lcd.Segment(display.SymLowPwr, false)
		m.buzzer.Off()
	}
	m.lcd.Update()
}

// suspendAlert silences the battery alert while a screen owns the whole display.
func (m *Menu) suspendAlert() {
	m.alertSuspended = true
	m.buzzer.Off()
}

// resumeAlert lets the next pass show a still low battery again.
func (m *Menu) resumeAlert() {
	m.alertSuspended = false
	m.batteryLowShown = false
}

// delay keeps servicing stop until d has passed.
func (m *Menu) delay(ctx context.Context, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if !m.stop(ctx) {
			return false
		}
	}
	return true
}

// updateStop commits the frame and waits for any key.
func (m *Menu) updateStop(ctx context.Context) bool {
	m.lcd.Update()
	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			return false
		}
		if m.input.Pressed(anyKey) {
			return true
		}
	}
}
