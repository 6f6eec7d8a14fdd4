package menu

import (
	"context"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
)

type screenItem int

const (
	itemName screenItem = iota
	itemBattery
)

// showModelNumber puts the ones on the digit and the tens on the arrows,
// both arrows blink from model 40 up.
func (m *Menu) showModelNumber(model int) {
	m.lcd.Seven(uint8(model % 10))
	if model >= 40 {
		m.lcd.Segment(display.SymLeft, true)
		m.lcd.Segment(display.SymRight, true)
		m.lcd.SegmentBlink(display.SymLeft, true)
		m.lcd.SegmentBlink(display.SymRight, true)
		return
	}
	m.lcd.SegmentBlink(display.SymLeft, false)
	m.lcd.SegmentBlink(display.SymRight, false)
	m.lcd.Segment(display.SymRight, (model/10)&1 != 0)
	m.lcd.Segment(display.SymLeft, (model/20)&1 != 0)
}

func (m *Menu) mainScreen(item screenItem) {
	m.lcd.Segment(display.SymModelNo, true)
	m.lcd.Segment(display.SymChannel, false)
	m.lcd.Segment(display.SymPercent, false)
	m.lcd.Segment(display.SymLeft, false)
	m.lcd.Segment(display.SymRight, false)
	m.showModelNumber(m.global.Model)

	switch item {
	case itemName:
		m.lcd.Segment(display.SymDot, false)
		m.lcd.Segment(display.SymVolts, false)
		m.lcd.Chars(m.model.Name.String())
	case itemBattery:
		m.lcd.Segment(display.SymDot, true)
		m.lcd.Segment(display.SymVolts, true)
		m.shownBattery = int(m.analog.Battery())
		m.lcd.CharNum3(m.shownBattery)
	}
	m.lcd.Update()
}

// loop is the top level screen. Confirm opens the navigator, a long confirm
// opens calibration, key test or global setup by the steering position.
func (m *Menu) loop(ctx context.Context) {
	item := itemName
	m.lcd.Clear()
	m.mainScreen(item)

	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			return
		}

		if m.input.Held(input.BtnEnter) {
			m.keyBeep()
			m.analog.SetWantsBattery(false)
			steering := m.analog.Channel(analog.Steering)
			switch {
			case steering > uint16(analog.Oversampled(CalibMidHigh)):
				m.calibrate(ctx)
			case steering < uint16(analog.Oversampled(CalibLowMid)):
				m.keyTest(ctx)
			default:
				m.globalSetup(ctx)
			}
			m.lcd.Clear()
			m.mainScreen(item)
		} else if m.input.Pressed(input.BtnEnter) {
			m.keyBeep()
			m.analog.SetWantsBattery(false)
			m.selectMenu(ctx)
			m.mainScreen(item)
		} else if m.input.Pressed(input.BtnRotAll) {
			if item == itemName {
				item = itemBattery
			} else {
				item = itemName
			}
			m.mainScreen(item)
		} else if item == itemBattery {
			m.mainScreenBattery()
		}
		m.analog.SetWantsBattery(item == itemBattery)
	}
}

// mainScreenBattery refreshes the battery reading when it changed.
func (m *Menu) mainScreenBattery() {
	if int(m.analog.Battery()) != m.shownBattery {
		m.mainScreen(itemBattery)
	}
}
