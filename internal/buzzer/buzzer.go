package buzzer

import (
	"context"
	"log"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
)

const MaxVolume = 255

type PinIFace interface {
	Init() error
	Tone(volume uint8)
	Silence()
	Stop() error
}

type commandKind int

const (
	beepCommand commandKind = iota
	patternCommand
	offCommand
)

type command struct {
	kind   commandKind
	on     time.Duration
	off    time.Duration
	volume uint8
}

// Buzzer plays beeps and repeating tone patterns without blocking the caller.
type Buzzer struct {
	cfg      config.BuzzerConfig
	pin      PinIFace
	commands chan command
}

func NewBuzzer(cfg config.BuzzerConfig, pin PinIFace) *Buzzer {
	return &Buzzer{
		cfg:      cfg,
		pin:      pin,
		commands: make(chan command, 16),
	}
}

func (b *Buzzer) Init() error {
	if !b.cfg.Enabled {
		log.Println("warning: buzzer disabled")
		return nil
	}
	return b.pin.Init()
}

func (b *Buzzer) Beep(length time.Duration) {
	b.send(command{kind: beepCommand, on: length, volume: MaxVolume})
}

// On starts a tone pattern that repeats until Off.
func (b *Buzzer) On(on, off time.Duration, volume uint8) {
	b.send(command{kind: patternCommand, on: on, off: off, volume: volume})
}

func (b *Buzzer) Off() {
	b.send(command{kind: offCommand})
}

func (b *Buzzer) send(cmd command) {
	select {
	case b.commands <- cmd:
	default:
		log.Println("buzzer channel full, skipping")
	}
}

func (b *Buzzer) Start(ctx context.Context) error {
	log.Println("starting buzzer")
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	var pattern *command
	phaseOn := false
	for {
		select {
		case <-ctx.Done():
			log.Println("buzzer done due to ctx")
			b.silence()
			return b.stopPin()
		case cmd := <-b.commands:
			switch cmd.kind {
			case beepCommand:
				// a running pattern resumes with its off phase once the beep ends
				phaseOn = true
				b.tone(cmd.volume)
				timer.Reset(cmd.on)
			case patternCommand:
				pattern = &cmd
				phaseOn = true
				b.tone(cmd.volume)
				timer.Reset(cmd.on)
			case offCommand:
				pattern = nil
				timer.Stop()
				b.silence()
			}
		case <-timer.C:
			if pattern == nil {
				b.silence()
				continue
			}
			phaseOn = !phaseOn
			if phaseOn {
				b.tone(pattern.volume)
				timer.Reset(pattern.on)
			} else {
				b.silence()
				timer.Reset(pattern.off)
			}
		}
	}
}

func (b *Buzzer) tone(volume uint8) {
	if b.cfg.Enabled {
		b.pin.Tone(volume)
	}
}

func (b *Buzzer) silence() {
	if b.cfg.Enabled {
		b.pin.Silence()
	}
}

func (b *Buzzer) stopPin() error {
	if !b.cfg.Enabled {
		return nil
	}
	return b.pin.Stop()
}
