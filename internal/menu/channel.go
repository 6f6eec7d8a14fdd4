package menu

import (
	"context"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

// Deadband around the calibrated mid point, in raw units.
const Deadband = 40

// editChannels runs the select channel / edit value cursor for one field.
// The END button switches between the two levels, confirm or back leaves.
func (m *Menu) editChannels(ctx context.Context, f Field) {
	end := f.Channels()
	trackDir := f.TracksDirection()
	channel := 1
	editing := false

	if trackDir {
		m.analog.SetTakesADC(true)
		m.setDirection(channel)
	}
	if f == FieldSubtrim {
		m.lcd.SetBlink(display.RegionMenu, display.BlinkSpace)
	}
	m.lcd.Segment(display.SymModelNo, false)
	m.lcd.Segment(display.SymLeft, false)
	m.lcd.Segment(display.SymRight, false)
	m.lcd.Segment(display.SymChannel, true)
	if trackDir {
		m.showDirection()
	}
	m.lcd.Seven(uint8(channel))
	m.cursorBlink(editing)
	m.editField(f, channel, false)
	m.lcd.Update()

	lastDir := m.direction
	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Pressed(input.BtnBack | input.BtnEnter) {
			break
		}
		if trackDir {
			m.setDirection(channel)
		}

		if m.input.Pressed(input.BtnRotAll) {
			if editing {
				m.editField(f, channel, true)
			} else {
				channel = wrap(channel, m.rotation(1), end)
				m.lcd.Seven(uint8(channel))
				m.editField(f, channel, false)
			}
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnEnd) {
			m.keyBeep()
			editing = !editing
			m.cursorBlink(editing)
			m.lcd.Update()
		}

		if m.direction != lastDir {
			lastDir = m.direction
			m.editField(f, channel, false)
			m.lcd.Update()
		}
	}

	if trackDir {
		m.analog.SetTakesADC(false)
	}
	m.keyBeep()
	m.saveModel()

	m.lcd.SetBlink(display.Region7Seg, display.BlinkOff)
	for i := 0; i < display.CharCount; i++ {
		m.lcd.SetBlink(display.CharRegion(i), display.BlinkOff)
	}
	m.lcd.SetBlink(display.RegionMenu, display.BlinkOff)
	m.lcd.Segment(display.SymChannel, false)
	m.lcd.Segment(display.SymPercent, false)
	m.lcd.Segment(display.SymLeft, false)
	m.lcd.Segment(display.SymRight, false)
	m.lcd.Update()
}

// cursorBlink blinks the channel digit while selecting and the value while editing.
func (m *Menu) cursorBlink(editing bool) {
	digit, value := display.BlinkSpace, display.BlinkOff
	if editing {
		digit, value = display.BlinkOff, display.BlinkSpace
	}
	m.lcd.SetBlink(display.Region7Seg, digit)
	for i := 0; i < display.CharCount; i++ {
		m.lcd.SetBlink(display.CharRegion(i), value)
	}
}

// setDirection follows the stick of the channel once it leaves the deadband.
// Channel 2 follows the throttle, every other channel the steering.
func (m *Menu) setDirection(channel int) {
	index, mid := analog.Steering, int(m.global.CalibSteeringMid)
	if channel == 2 {
		index, mid = analog.Throttle, int(m.global.CalibThrottleMid)
	}
	value := int(m.analog.Channel(index))

	if value < analog.Oversampled(mid-Deadband) && m.direction != settings.DirLeft {
		m.direction = settings.DirLeft
		m.showDirection()
	} else if value > analog.Oversampled(mid+Deadband) && m.direction != settings.DirRight {
		m.direction = settings.DirRight
		m.showDirection()
	}
}

func (m *Menu) showDirection() {
	m.lcd.Segment(display.SymLeft, m.direction == settings.DirLeft)
	m.lcd.Segment(display.SymRight, m.direction == settings.DirRight)
}
