package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

var entryOrder = []display.MenuItem{
	display.MenuModel,
	display.MenuName,
	display.MenuReverse,
	display.MenuEndpoint,
	display.MenuTrim,
	display.MenuDualRate,
	display.MenuExpo,
	display.MenuAbs,
}

func TestEntryOrder(t *testing.T) {
	entry := display.MenuModel
	for i := range entryOrder {
		if entry != entryOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, entryOrder[i], entry)
		}
		entry = NextEntry(entry)
	}
	if entry != display.MenuModel {
		t.Errorf("expected wraparound to model, got %s", entry)
	}
	if PrevEntry(display.MenuModel) != display.MenuAbs {
		t.Errorf("expected wraparound to abs")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	for _, start := range entryOrder {
		for n := 0; n < 20; n++ {
			entry := start
			for i := 0; i < n; i++ {
				entry = NextEntry(entry)
			}
			for i := 0; i < n; i++ {
				entry = PrevEntry(entry)
			}
			if entry != start {
				t.Fatalf("start %s n=%d: ended at %s", start, n, entry)
			}
		}
	}
}

func TestReverseToggleTwice(t *testing.T) {
	var h *harness
	var toggled string
	h = newHarness(t,
		press(input.BtnEnter),
		press(input.BtnRotR),
		press(input.BtnRotR),
		press(input.BtnEnter),
		press(input.BtnRotR),
		press(input.BtnEnd),
		press(input.BtnRotR),
		inspect(func() { toggled = h.shownChars() }),
		press(input.BtnRotR),
		press(input.BtnEnter),
		press(input.BtnBack),
	)
	original := settings.DefaultModel()
	original.Reverse = settings.ReverseBit(3)
	h.saveModel(t, 0, original)

	err := h.menu.Run(h.ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if toggled != "REV" {
		t.Errorf("expected channel 2 reversed after one toggle, got %q", toggled)
	}
	saved, ok := h.store.Saved(0)
	if !ok || saved != original {
		t.Errorf("expected unchanged record persisted, got %+v", saved)
	}
	if h.store.ModelSaves != 1 {
		t.Errorf("expected one model save, got %d", h.store.ModelSaves)
	}
	if h.lcd.Shown().Menu != display.MenuNone {
		t.Errorf("expected the menu row cleared after leaving the navigator")
	}
}

func TestLongTrimOpensSubtrim(t *testing.T) {
	var h *harness
	var menuBlink display.Blink
	h = newHarness(t,
		press(input.BtnRotR),
		press(input.BtnRotR),
		press(input.BtnRotR),
		press(input.BtnRotR),
		long(input.BtnEnter),
		inspect(func() { menuBlink = h.lcd.Shown().Blink[display.RegionMenu] }),
		press(input.BtnRotL),
		press(input.BtnEnd),
		press(input.BtnRotR),
		press(input.BtnEnter),
		press(input.BtnBack),
	)

	h.menu.selectMenu(h.ctx)
	if menuBlink != display.BlinkSpace {
		t.Errorf("expected sub-trim screen")
	}
	m := h.menu.Model()
	if m.Subtrim[3] != 1 || m.Trim != [settings.TrimChannels]int8{} {
		t.Errorf("expected only sub-trim 4 changed, got trim %v sub-trim %v", m.Trim, m.Subtrim)
	}
}

func TestLongNameResetsModel(t *testing.T) {
	h := newHarness(t,
		press(input.BtnRotR),
		long(input.BtnEnter),
		press(input.BtnBack),
	)
	h.menu.model.Name = settings.NewName("ABC")
	h.menu.model.Trim[0] = 12

	h.menu.selectMenu(h.ctx)
	if h.menu.Model() != settings.DefaultModel() {
		t.Errorf("expected defaults, got %+v", h.menu.Model())
	}
	saved, ok := h.store.Saved(0)
	if !ok || saved != settings.DefaultModel() {
		t.Errorf("expected defaults persisted")
	}
}

func TestAbsEntryIsNoop(t *testing.T) {
	h := newHarness(t,
		press(input.BtnRotL),
		press(input.BtnEnter),
		press(input.BtnBack),
	)

	h.menu.selectMenu(h.ctx)
	if h.store.ModelSaves != 0 || h.store.GlobalSaves != 0 {
		t.Errorf("expected nothing saved")
	}
}
