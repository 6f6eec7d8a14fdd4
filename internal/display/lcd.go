package display

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CharCount = 3
	blank     = ' '
)

type RendererIFace interface {
	Render(Frame)
}

// Frame is one committed state of the segment display.
type Frame struct {
	Chars       [CharCount]byte
	Digit       byte
	Symbols     Symbol
	Menu        MenuItem
	Blink       [regionCount]Blink
	SymbolBlink Symbol
	FullOn      bool
}

// Visible returns what is lit during the given blink phase.
func (f Frame) Visible(phaseOn bool) Frame {
	if f.FullOn || phaseOn {
		return f
	}
	if f.Blink[Region7Seg] != BlinkOff {
		f.Digit = blank
	}
	for i := range f.Chars {
		if f.Blink[CharRegion(i)] != BlinkOff {
			f.Chars[i] = blank
		}
	}
	if f.Blink[RegionMenu] != BlinkOff {
		f.Menu = MenuNone
	}
	f.Symbols &^= f.SymbolBlink
	return f
}

func (f Frame) String() string {
	if f.FullOn {
		return "[888] 8 ALL"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %c", string(f.Chars[:]), f.Digit)
	if f.Symbols != 0 {
		fmt.Fprintf(&b, " %s", f.Symbols)
	}
	if f.Menu != MenuNone {
		fmt.Fprintf(&b, " {%s}", f.Menu)
	}
	return b.String()
}

// LCD buffers segment writes until Update commits them as one Frame.
type LCD struct {
	renderer RendererIFace
	pending  Frame
	shown    Frame
	updates  int
}

func NewLCD(renderer RendererIFace) *LCD {
	l := &LCD{renderer: renderer}
	l.Clear()
	l.shown = l.pending
	return l
}

func (l *LCD) Clear() {
	l.pending = Frame{
		Chars: [CharCount]byte{blank, blank, blank},
		Digit: blank,
	}
}

func (l *LCD) FullOn() {
	l.pending.FullOn = true
	l.Update()
}

func (l *LCD) Chars(text string) {
	for i := 0; i < CharCount; i++ {
		if i < len(text) {
			l.pending.Chars[i] = text[i]
		} else {
			l.pending.Chars[i] = blank
		}
	}
}

func (l *LCD) Char(pos int, c byte) {
	if pos < 0 || pos >= CharCount {
		return
	}
	l.pending.Chars[pos] = c
}

func (l *LCD) Seven(digit uint8) {
	l.pending.Digit = '0' + digit%10
}

func (l *LCD) SevenBlank() {
	l.pending.Digit = blank
}

func (l *LCD) Segment(sym Symbol, on bool) {
	if on {
		l.pending.Symbols |= sym
	} else {
		l.pending.Symbols &^= sym
		l.pending.SymbolBlink &^= sym
	}
}

func (l *LCD) SegmentBlink(sym Symbol, blink bool) {
	if blink {
		l.pending.SymbolBlink |= sym
	} else {
		l.pending.SymbolBlink &^= sym
	}
}

func (l *LCD) Menu(items MenuItem) {
	l.pending.Menu = items
}

func (l *LCD) MenuSegment(item MenuItem, on bool) {
	if on {
		l.pending.Menu |= item
	} else {
		l.pending.Menu &^= item
	}
}

func (l *LCD) SetBlink(region Region, mode Blink) {
	if region >= regionCount {
		return
	}
	l.pending.Blink[region] = mode
}

// CharNum3 shows an unsigned value right aligned, saturating at 999.
func (l *LCD) CharNum3(value int) {
	if value < 0 {
		value = 0
	} else if value > 999 {
		value = 999
	}
	l.Chars(fmt.Sprintf("%3d", value))
}

// CharNum2 shows a sign and two digits.
func (l *LCD) CharNum2(value int) {
	sign := byte(blank)
	if value < 0 {
		sign = '-'
	}
	l.pending.Chars[0] = sign
	l.num2(value)
}

// CharNum2Label shows labels[0] for negative, labels[1] for zero and
// labels[2] for positive values followed by two digits.
func (l *LCD) CharNum2Label(value int, labels string) {
	idx := 1
	if value < 0 {
		idx = 0
	} else if value > 0 {
		idx = 2
	}
	l.pending.Chars[0] = labels[idx]
	l.num2(value)
}

func (l *LCD) num2(value int) {
	if value < 0 {
		value = -value
	}
	if value > 99 {
		value = 99
	}
	digits := strconv.Itoa(value)
	if len(digits) == 1 {
		digits = " " + digits
	}
	l.pending.Chars[1] = digits[0]
	l.pending.Chars[2] = digits[1]
}

// Update commits all pending writes.
func (l *LCD) Update() {
	l.shown = l.pending
	l.pending.FullOn = false
	l.updates++
	if l.renderer != nil {
		l.renderer.Render(l.shown)
	}
}

// Shown returns the last committed frame.
func (l *LCD) Shown() Frame {
	return l.shown
}

func (l *LCD) Updates() int {
	return l.updates
}
