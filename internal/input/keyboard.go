package input

import "log"

// Keyboard maps terminal keys onto buttons. Terminals report no key release,
// so a key is a short press and its shifted variant a long press.
type Keyboard struct {
	latch *Latch
	keys  map[string]Button
}

// DefaultKeys is the simulator key map, upper case means long press.
var DefaultKeys = map[string]Button{
	"enter":     BtnEnter,
	"backspace": BtnBack,
	"esc":       BtnBack,
	"tab":       BtnEnd,
	"left":      BtnRotL,
	"right":     BtnRotR,
	"c":         BtnCh3,
	"1":         BtnT1L,
	"2":         BtnT1R,
	"3":         BtnT2F,
	"4":         BtnT2B,
	"5":         BtnT3Minus,
	"6":         BtnT3Plus,
	"7":         BtnDRMinus,
	"8":         BtnDRPlus,
	"e":         BtnEnter,
	"b":         BtnBack,
	"n":         BtnEnd,
}

func NewKeyboard(latch *Latch, keys map[string]Button) *Keyboard {
	return &Keyboard{
		latch: latch,
		keys:  keys,
	}
}

// Key handles one key name, it reports whether the key was mapped.
func (k *Keyboard) Key(name string, long bool) bool {
	button, ok := k.keys[name]
	if !ok {
		return false
	}
	log.Printf("key %s -> %s (long=%t)\n", name, button, long)
	k.latch.Press(button, long)
	return true
}
