package menu

import (
	"context"
	"log"

	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

type setupItem int

const (
	setupKeyBeep setupItem = iota
	setupBacklight
	setupAutorepeat
	setupEndpointMax
	setupItemCount
)

// globalSetup edits the transmitter wide settings, END moves to the next item.
func (m *Menu) globalSetup(ctx context.Context) {
	log.Println("starting global setup")
	item := setupKeyBeep
	m.lcd.Clear()
	for i := 0; i < display.CharCount; i++ {
		m.lcd.SetBlink(display.CharRegion(i), display.BlinkSpace)
	}
	m.renderSetup(item)
	m.lcd.Update()

	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Pressed(input.BtnEnter | input.BtnBack) {
			break
		}

		if m.input.Pressed(input.BtnEnd) {
			m.keyBeep()
			item = (item + 1) % setupItemCount
			m.renderSetup(item)
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnRotAll) {
			m.applySetup(item)
			m.renderSetup(item)
			m.lcd.Update()
		}
	}

	for i := 0; i < display.CharCount; i++ {
		m.lcd.SetBlink(display.CharRegion(i), display.BlinkOff)
	}
	m.lcd.Segment(display.SymPercent, false)
	m.keyBeep()

	m.applyAutorepeat()
	m.backlight.SetDefault(m.global.BacklightTime)
	m.backlight.On()
	m.saveGlobal()
	if m.model.ClampEndpoints(&m.global) {
		m.saveModel()
	}
}

func (m *Menu) applySetup(item setupItem) {
	switch item {
	case setupKeyBeep:
		m.global.KeyBeep = !m.global.KeyBeep
	case setupBacklight:
		m.global.BacklightTime = uint16(m.changeValue(int(m.global.BacklightTime), settings.BacklightBounds))
	case setupAutorepeat:
		m.global.Autorepeat = uint8(m.changeValue(int(m.global.Autorepeat), settings.AutorepeatBounds))
	case setupEndpointMax:
		m.global.EndpointMax = uint8(m.changeValue(int(m.global.EndpointMax), settings.EndpointMaxBounds))
	}
}

// renderSetup shows the item number on the digit and its value on the characters.
func (m *Menu) renderSetup(item setupItem) {
	m.lcd.Seven(uint8(item) + 1)
	m.lcd.Segment(display.SymPercent, item == setupEndpointMax)
	switch item {
	case setupKeyBeep:
		if m.global.KeyBeep {
			m.lcd.Chars("ON")
		} else {
			m.lcd.Chars("OFF")
		}
	case setupBacklight:
		if m.global.BacklightTime == 0 {
			m.lcd.Chars("---")
		} else {
			m.lcd.CharNum3(int(m.global.BacklightTime))
		}
	case setupAutorepeat:
		m.lcd.CharNum3(int(m.global.Autorepeat))
	case setupEndpointMax:
		m.lcd.CharNum3(int(m.global.EndpointMax))
	}
}
