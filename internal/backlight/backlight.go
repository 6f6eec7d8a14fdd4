package backlight

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/Speshl/gorrc_tx/internal/gpio"
	"github.com/Speshl/gorrc_tx/internal/settings"
	"github.com/stianeikeland/go-rpio/v4"
)

type PinIFace interface {
	Set(on bool)
}

// Backlight lights the display and turns it off again after the default timeout.
type Backlight struct {
	lock    sync.Mutex
	pin     PinIFace
	timeout time.Duration
	timer   *time.Timer
	armed   uint64 // bumped whenever the timer is replaced
	lit     bool
}

func NewBacklight(pin PinIFace) *Backlight {
	return &Backlight{
		pin:     pin,
		timeout: settings.DefaultBacklight * time.Second,
	}
}

// SetDefault sets the timeout in seconds, 0 or BacklightMax keep it lit.
func (b *Backlight) SetDefault(seconds uint16) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if seconds == 0 || seconds == settings.BacklightMax {
		b.timeout = 0
	} else {
		b.timeout = time.Duration(seconds) * time.Second
	}
}

func (b *Backlight) On() {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.set(true)
	b.stopTimer()
	if b.timeout > 0 {
		armed := b.armed
		b.timer = time.AfterFunc(b.timeout, func() { b.expire(armed) })
	}
}

func (b *Backlight) Off() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.stopTimer()
	b.set(false)
}

func (b *Backlight) Lit() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.lit
}

// stopTimer cancels the pending timeout, a callback already waiting on the
// lock is ignored once it runs.
func (b *Backlight) stopTimer() {
	b.armed++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Backlight) expire(armed uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if armed != b.armed {
		return
	}
	b.timer = nil
	b.set(false)
}

func (b *Backlight) set(on bool) {
	if b.lit == on {
		return
	}
	b.lit = on
	b.pin.Set(on)
}

// RPIOPin drives the backlight transistor from a gpio output.
type RPIOPin struct {
	pin rpio.Pin
}

func NewRPIOPin(cfg config.BacklightConfig) (*RPIOPin, error) {
	err := gpio.Open()
	if err != nil {
		return nil, fmt.Errorf("failed initializing backlight pin: %w", err)
	}
	pin := rpio.Pin(cfg.Pin)
	pin.Output()
	pin.Low()
	log.Printf("backlight on pin %d\n", cfg.Pin)
	return &RPIOPin{pin: pin}, nil
}

func (p *RPIOPin) Set(on bool) {
	if on {
		p.pin.High()
	} else {
		p.pin.Low()
	}
}

func (p *RPIOPin) Close() error {
	p.pin.Low()
	return gpio.Close()
}

type NopPin struct{}

func (NopPin) Set(bool) {}
