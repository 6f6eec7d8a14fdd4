package menu

import (
	"context"
	"log"

	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
)

// NextEntry moves one entry toward MenuAbs, wrapping to MenuModel.
func NextEntry(entry display.MenuItem) display.MenuItem {
	entry >>= 1
	if entry == display.MenuNone {
		return display.MenuModel
	}
	return entry
}

// PrevEntry moves one entry toward MenuModel, wrapping to MenuAbs.
func PrevEntry(entry display.MenuItem) display.MenuItem {
	entry <<= 1
	if entry == display.MenuNone {
		return display.MenuAbs
	}
	return entry
}

// selectMenu is the navigator over the menu row.
func (m *Menu) selectMenu(ctx context.Context) {
	entry := display.MenuModel
	m.lcd.Menu(entry)
	m.mainScreen(itemName)

	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Pressed(input.BtnBack) {
			break
		}

		if m.input.Pressed(input.BtnEnter) {
			m.keyBeep()
			m.dispatch(ctx, entry)
			m.lcd.Menu(entry)
			m.mainScreen(itemName)
			if m.input.Pressed(input.BtnBack) {
				break
			}
		} else if m.input.Pressed(input.BtnRotR) {
			entry = NextEntry(entry)
			m.lcd.Menu(entry)
			m.lcd.Update()
		} else if m.input.Pressed(input.BtnRotL) {
			entry = PrevEntry(entry)
			m.lcd.Menu(entry)
			m.lcd.Update()
		}
	}

	m.keyBeep()
	m.lcd.Menu(display.MenuNone)
	m.lcd.Update()
}

func (m *Menu) dispatch(ctx context.Context, entry display.MenuItem) {
	long := m.input.Held(input.BtnEnter)
	log.Printf("menu %s (long=%t)\n", entry, long)

	switch entry {
	case display.MenuModel:
		m.selectModel(ctx, long)
	case display.MenuName:
		if long {
			m.resetModel()
		} else {
			m.editName(ctx)
		}
	case display.MenuReverse:
		m.editChannels(ctx, FieldReverse)
	case display.MenuEndpoint:
		m.editChannels(ctx, FieldEndpoint)
	case display.MenuTrim:
		if long {
			m.editChannels(ctx, FieldSubtrim)
		} else {
			m.editChannels(ctx, FieldTrim)
		}
	case display.MenuDualRate:
		m.editChannels(ctx, FieldDualRate)
	case display.MenuExpo:
		m.editChannels(ctx, FieldExpo)
	default:
		// abs has no settings yet
	}
}
