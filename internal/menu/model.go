package menu

import (
	"context"
	"log"

	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

// selectModel browses the model slots. With saveAs the active settings are
// written to the chosen slot, otherwise the chosen slot is loaded.
func (m *Menu) selectModel(ctx context.Context, saveAs bool) {
	count := m.store.ModelCount()
	slot := m.global.Model

	if saveAs {
		m.lcd.SetBlink(display.RegionMenu, display.BlinkSpace)
	}
	m.lcd.SetBlink(display.Region7Seg, display.BlinkSpace)
	m.lcd.Update()

	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Pressed(input.BtnEnter | input.BtnBack) {
			break
		}
		if !m.input.Pressed(input.BtnRotAll) {
			continue
		}

		slot = (slot + m.rotation(2)) % count
		if slot < 0 {
			slot += count
		}
		m.showModelNumber(slot)
		m.lcd.SetBlink(display.Region7Seg, display.BlinkSpace)
		m.lcd.Chars(m.store.ModelName(slot))
		m.lcd.Update()
	}

	m.keyBeep()
	if slot != m.global.Model {
		log.Printf("switching to model %d (saveAs=%t)\n", slot, saveAs)
		m.global.Model = slot
		m.saveGlobal()
		if saveAs {
			m.saveModel()
		} else {
			m.loadModel()
			m.calc.Wake()
		}
	}

	m.lcd.SetBlink(display.Region7Seg, display.BlinkOff)
	if saveAs {
		m.lcd.SetBlink(display.RegionMenu, display.BlinkOff)
	}
}

// editName edits the three name characters, END moves to the next one.
func (m *Menu) editName(ctx context.Context) {
	pos := 0
	m.lcd.SetBlink(display.CharRegion(pos), display.BlinkSpace)
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
			m.lcd.SetBlink(display.CharRegion(pos), display.BlinkOff)
			pos = (pos + 1) % settings.NameLength
			m.lcd.SetBlink(display.CharRegion(pos), display.BlinkSpace)
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnRotL) {
			m.model.Name[pos] = PrevLetter(m.model.Name[pos])
			m.lcd.Char(pos, m.model.Name[pos])
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnRotR) {
			m.model.Name[pos] = NextLetter(m.model.Name[pos])
			m.lcd.Char(pos, m.model.Name[pos])
			m.lcd.Update()
		}
	}

	m.lcd.SetBlink(display.CharRegion(pos), display.BlinkOff)
	m.keyBeep()
	m.saveModel()
}

// NextLetter steps the ring 0-9 then A-Z.
func NextLetter(c byte) byte {
	switch {
	case c == '9':
		return 'A'
	case c == 'Z':
		return '0'
	case c >= '0' && c < '9', c >= 'A' && c < 'Z':
		return c + 1
	default:
		return 'A'
	}
}

func PrevLetter(c byte) byte {
	switch {
	case c == '0':
		return 'Z'
	case c == 'A':
		return '9'
	case c > '0' && c <= '9', c > 'A' && c <= 'Z':
		return c - 1
	default:
		return 'Z'
	}
}

// resetModel replaces the active model with defaults and saves it right away.
func (m *Menu) resetModel() {
	log.Printf("resetting model %d\n", m.global.Model)
	m.model = settings.DefaultModel()
	m.saveModel()
	m.calc.Wake()
}
