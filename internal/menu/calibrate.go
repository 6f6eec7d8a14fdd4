package menu

import (
	"context"
	"log"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

// Calibration buckets in the raw domain: below CalibLowMid is low, up to and
// including CalibMidHigh is mid, above is high.
const (
	CalibLowMid  = 300
	CalibMidHigh = 723

	calibChannels  = 4
	batteryChannel = 4
)

// calibTargets are the menu indicators standing for the three points of
// steering (channel 1) and throttle (channel 2).
const calibTargets = display.MenuModel | display.MenuName | display.MenuReverse |
	display.MenuTrim | display.MenuDualRate | display.MenuExpo

// Bucket classifies a filtered reading into 0 (low), 1 (mid) or 2 (high).
func Bucket(value uint16) int {
	if value < CalibLowMid {
		return 0
	} else if value <= CalibMidHigh {
		return 1
	}
	return 2
}

func (m *Menu) calibrate(ctx context.Context) {
	log.Println("starting calibration")
	m.analog.SetTakesADC(true)
	m.suspendAlert()
	m.backlight.SetDefault(settings.BacklightMax)
	m.backlight.On()

	m.lcd.Clear()
	m.input.ResetAutorepeat()
	m.lcd.Chars("CAL")
	m.lcd.Update()
	m.delay(ctx, m.opts.IntroDelay)

	channel := 1
	lastValue := -1
	m.lcd.Segment(display.SymChannel, true)
	m.lcd.Seven(uint8(channel))
	m.lcd.Menu(calibTargets)
	m.lcd.SetBlink(display.RegionMenu, display.BlinkSpace)
	m.lcd.Update()

	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Held(input.BtnBack) {
			break
		}

		if m.input.Pressed(input.BtnEnd | input.BtnRotAll) {
			if m.input.Pressed(input.BtnEnd) {
				m.keyBeep()
			}
			if m.input.Pressed(input.BtnRotL) {
				channel = wrap(channel, -1, calibChannels)
			} else {
				channel = wrap(channel, 1, calibChannels)
			}
			m.analog.SetWantsBattery(channel == batteryChannel)
			m.lcd.Seven(uint8(channel))
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnEnter) {
			m.calibratePoint(channel)
		}

		value := m.calibValue(channel)
		if value != lastValue {
			lastValue = value
			m.lcd.CharNum3(value)
			m.lcd.Update()
		}
	}

	m.analog.SetTakesADC(false)
	m.analog.SetWantsBattery(false)
	m.buzzer.Beep(CalibDoneBeep)
	m.lcd.Menu(display.MenuNone)
	m.lcd.SetBlink(display.RegionMenu, display.BlinkOff)
	m.lcd.Segment(display.SymChannel, false)
	m.lcd.Update()
	m.saveGlobal()
	m.backlight.SetDefault(m.global.BacklightTime)
	m.backlight.On()
	m.resumeAlert()
	log.Printf("calibration done: steering %d/%d/%d throttle %d/%d/%d\n",
		m.global.CalibSteeringLeft, m.global.CalibSteeringMid, m.global.CalibSteeringRight,
		m.global.CalibThrottleFwd, m.global.CalibThrottleMid, m.global.CalibThrottleBck)
}

// calibratePoint records the live reading of channel 1 or 2 into the bucket it falls in.
func (m *Menu) calibratePoint(channel int) {
	var points [3]*uint16
	var targets [3]display.MenuItem
	switch channel {
	case 1:
		points = [3]*uint16{&m.global.CalibSteeringLeft, &m.global.CalibSteeringMid, &m.global.CalibSteeringRight}
		targets = [3]display.MenuItem{display.MenuModel, display.MenuName, display.MenuReverse}
	case 2:
		points = [3]*uint16{&m.global.CalibThrottleFwd, &m.global.CalibThrottleMid, &m.global.CalibThrottleBck}
		targets = [3]display.MenuItem{display.MenuTrim, display.MenuDualRate, display.MenuExpo}
	default:
		return
	}
	m.keyBeep()

	value := analog.Filtered(m.analog.Channel(channel - 1))
	bucket := Bucket(value)
	*points[bucket] = value
	m.lcd.MenuSegment(targets[bucket], false)
	m.lcd.Update()
}

// calibValue is the number shown for the selected channel, the battery for channel 4.
func (m *Menu) calibValue(channel int) int {
	if channel == batteryChannel {
		return int(m.analog.Battery())
	}
	return int(analog.Filtered(m.analog.Channel(channel - 1)))
}
