package input

import (
	"sync"
	"time"
)

// Latch turns sampled button levels into the discrete events the menu polls.
// A short press is reported on release, a long press is reported together
// with the held flag once the button stayed down for the long press time.
// Trim and dual-rate keys repeat after a long press every autorepeat interval.
type Latch struct {
	lock sync.Mutex

	pressed Button
	held    Button
	down    Button

	downSince  [ButtonCount]time.Time
	lastRepeat [ButtonCount]time.Time
	longSent   [ButtonCount]bool

	longPress  time.Duration
	autorepeat time.Duration
	masks      []Button
}

func NewLatch(longPress time.Duration) *Latch {
	return &Latch{
		longPress: longPress,
		masks:     BuildButtonMasks(),
	}
}

func (l *Latch) SetAutorepeat(interval time.Duration) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.autorepeat = interval
}

// Update feeds the set of buttons currently down.
func (l *Latch) Update(down Button, now time.Time) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i, bit := range l.masks {
		isDown := down&bit != 0
		wasDown := l.down&bit != 0

		switch {
		case isDown && !wasDown:
			l.downSince[i] = now
			l.longSent[i] = false
		case isDown && wasDown:
			if !l.longSent[i] {
				if now.Sub(l.downSince[i]) >= l.longPress {
					l.pressed |= bit
					l.held |= bit
					l.longSent[i] = true
					l.lastRepeat[i] = now
				}
			} else if bit&repeatMask != 0 && l.autorepeat > 0 && now.Sub(l.lastRepeat[i]) >= l.autorepeat {
				l.pressed |= bit
				l.held |= bit
				l.lastRepeat[i] = now
			}
		case !isDown && wasDown:
			if !l.longSent[i] {
				l.pressed |= bit
			}
		}
	}
	l.down = down
}

// Press injects a discrete event, used for encoder steps and the keyboard.
func (l *Latch) Press(b Button, long bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.pressed |= b
	if long {
		l.held |= b
	}
}

func (l *Latch) Pressed(mask Button) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.pressed&mask != 0
}

func (l *Latch) Held(mask Button) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.held&mask != 0
}

// ResetAutorepeat drops every latched event, called at the top of each menu pass.
func (l *Latch) ResetAutorepeat() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.pressed = BtnNone
	l.held = BtnNone
}
