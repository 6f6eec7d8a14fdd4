package menu

import (
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

// Field is one per-channel model setting edited through the channel editor.
type Field uint8

const (
	FieldReverse Field = iota
	FieldEndpoint
	FieldTrim
	FieldSubtrim
	FieldDualRate
	FieldExpo
)

var fieldNames = []string{"reverse", "endpoint", "trim", "subtrim", "dualrate", "expo"}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// Channels is the number of channels the field exists for.
func (f Field) Channels() int {
	switch f {
	case FieldTrim:
		return settings.TrimChannels
	case FieldDualRate:
		return settings.DualRateChannels
	case FieldExpo:
		return settings.ExpoChannels
	default:
		return settings.MaxChannels
	}
}

// TracksDirection is set for fields stored per stick direction.
func (f Field) TracksDirection() bool {
	return f == FieldEndpoint
}

// trimLabels mark left/neutral/right and forward/neutral/back.
var trimLabels = [settings.TrimChannels]string{"LNR", "FNB"}

// editField renders the value of a 1-based channel, applying the pending
// rotate event first when apply is set.
func (m *Menu) editField(f Field, channel int, apply bool) {
	if apply {
		m.applyField(f, channel)
	}
	m.renderField(f, channel)
}

func (m *Menu) applyField(f Field, channel int) {
	i := channel - 1
	switch f {
	case FieldReverse:
		m.model.Reverse ^= settings.ReverseBit(channel)
	case FieldEndpoint:
		ep := &m.model.Endpoint[i][m.direction]
		*ep = uint8(m.changeValue(int(*ep), settings.EndpointBounds(&m.global)))
	case FieldTrim:
		m.model.Trim[i] = int8(m.changeValue(int(m.model.Trim[i]), settings.TrimBounds))
	case FieldSubtrim:
		m.model.Subtrim[i] = int8(m.changeValue(int(m.model.Subtrim[i]), settings.SubtrimBounds))
	case FieldDualRate:
		m.model.DualRate[i] = uint8(m.changeValue(int(m.model.DualRate[i]), settings.DualRateBounds))
	case FieldExpo:
		m.model.Expo[i] = int8(m.changeValue(int(m.model.Expo[i]), settings.ExpoBounds))
	}
	m.calc.SetModel(m.model)
}

func (m *Menu) renderField(f Field, channel int) {
	i := channel - 1
	m.lcd.Segment(display.SymPercent, false)
	switch f {
	case FieldReverse:
		if m.model.Reversed(channel) {
			m.lcd.Chars("REV")
		} else {
			m.lcd.Chars("NOR")
		}
	case FieldEndpoint:
		m.lcd.CharNum3(int(m.model.Endpoint[i][m.direction]))
		m.lcd.Segment(display.SymPercent, true)
	case FieldTrim:
		m.lcd.CharNum2Label(int(m.model.Trim[i]), trimLabels[i])
	case FieldSubtrim:
		m.lcd.CharNum2(int(m.model.Subtrim[i]))
	case FieldDualRate:
		m.lcd.CharNum3(int(m.model.DualRate[i]))
		m.lcd.Segment(display.SymPercent, true)
	case FieldExpo:
		m.lcd.CharNum2(int(m.model.Expo[i]))
		m.lcd.Segment(display.SymPercent, true)
	}
}
