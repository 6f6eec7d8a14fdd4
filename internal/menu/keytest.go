package menu

import (
	"context"
	"log"

	"github.com/Speshl/gorrc_tx/internal/input"
)

// anyKey covers every button and both rotate directions.
const anyKey = input.Button(1<<input.ButtonCount - 1)

// keyTest shows the id of every key pressed until back is held.
func (m *Menu) keyTest(ctx context.Context) {
	log.Println("starting key test")
	m.suspendAlert()
	m.lcd.FullOn()
	m.delay(ctx, m.opts.KeyTestDelay)
	m.lcd.Clear()
	m.input.ResetAutorepeat()
	m.lcd.Chars("KEY")
	m.updateStop(ctx)

	masks := input.BuildButtonMasks()
	for {
		m.input.ResetAutorepeat()
		if !m.stop(ctx) {
			break
		}
		if m.input.Held(input.BtnBack) {
			break
		}

		for _, mask := range masks {
			if !m.input.Pressed(mask) {
				continue
			}
			m.keyBeep()
			m.lcd.Chars(mask.ID())
			if m.input.Held(mask) {
				m.lcd.Seven(1)
			} else {
				m.lcd.SevenBlank()
			}
			m.lcd.Update()
			break
		}
	}

	m.keyBeep()
	m.resumeAlert()
}
