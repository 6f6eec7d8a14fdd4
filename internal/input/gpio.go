package input

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/Speshl/gorrc_tx/internal/gpio"
	"github.com/stianeikeland/go-rpio/v4"
)

// fastStep marks an encoder step as a held rotate when it follows the
// previous one this closely.
const fastStep = 40 * time.Millisecond

// quadrature transition table indexed by previous<<2 | current state.
var quadrature = [16]int8{0, -1, 1, 0, 1, 0, 0, -1, -1, 0, 0, 1, 0, 1, -1, 0}

// GPIO polls active-low buttons and a rotary encoder on the pi header.
type GPIO struct {
	cfg   config.InputConfig
	latch *Latch

	buttons []rpio.Pin
	encA    rpio.Pin
	encB    rpio.Pin

	encState uint8
	encCount int8
	lastStep time.Time
}

func NewGPIO(cfg config.InputConfig, latch *Latch) *GPIO {
	return &GPIO{
		cfg:   cfg,
		latch: latch,
	}
}

func (g *GPIO) Init() error {
	if len(g.cfg.ButtonPins) < PhysicalCount {
		return fmt.Errorf("need %d button pins, got %d", PhysicalCount, len(g.cfg.ButtonPins))
	}

	err := gpio.Open()
	if err != nil {
		return fmt.Errorf("failed initializing input pins: %w", err)
	}

	g.buttons = make([]rpio.Pin, 0, PhysicalCount)
	for i := 0; i < PhysicalCount; i++ {
		pin := rpio.Pin(g.cfg.ButtonPins[i])
		pin.Input()
		pin.PullUp()
		g.buttons = append(g.buttons, pin)
	}

	g.encA = rpio.Pin(g.cfg.EncoderPinA)
	g.encB = rpio.Pin(g.cfg.EncoderPinB)
	for _, pin := range []rpio.Pin{g.encA, g.encB} {
		pin.Input()
		pin.PullUp()
	}
	g.encState = g.readEncoder()
	log.Printf("input pins configured: %d buttons, encoder on %d/%d\n", len(g.buttons), g.cfg.EncoderPinA, g.cfg.EncoderPinB)
	return nil
}

func (g *GPIO) Start(ctx context.Context) error {
	log.Println("starting input poller")
	defer func() {
		err := gpio.Close()
		if err != nil {
			log.Printf("error: %s\n", err.Error())
		}
	}()

	pollTicker := time.NewTicker(g.cfg.PollInterval)
	defer pollTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopping input poller: %s\n", ctx.Err().Error())
			return ctx.Err()
		case now := <-pollTicker.C:
			g.latch.Update(g.readButtons(), now)
			g.pollEncoder(now)
		}
	}
}

func (g *GPIO) readButtons() Button {
	down := BtnNone
	for i, pin := range g.buttons {
		if pin.Read() == rpio.Low {
			down |= 1 << i
		}
	}
	return down
}

func (g *GPIO) readEncoder() uint8 {
	var state uint8
	if g.encA.Read() == rpio.High {
		state |= 2
	}
	if g.encB.Read() == rpio.High {
		state |= 1
	}
	return state
}

// pollEncoder decodes one detent per four quadrature transitions.
func (g *GPIO) pollEncoder(now time.Time) {
	state := g.readEncoder()
	if state == g.encState {
		return
	}
	g.encCount += quadrature[g.encState<<2|state]
	g.encState = state

	var step Button
	if g.encCount >= 4 {
		step = BtnRotR
	} else if g.encCount <= -4 {
		step = BtnRotL
	} else {
		return
	}
	g.encCount = 0

	fast := !g.lastStep.IsZero() && now.Sub(g.lastStep) < fastStep
	g.lastStep = now
	g.latch.Press(step, fast)
}
