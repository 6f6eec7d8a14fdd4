package buzzer

import (
	"fmt"
	"log"

	"github.com/Speshl/gorrc_tx/internal/gpio"
	"github.com/stianeikeland/go-rpio/v4"
)

const cycleLength = uint32(32)

// PWMPin drives a passive buzzer from a hardware pwm pin.
type PWMPin struct {
	pin  rpio.Pin
	freq int
}

func NewPWMPin(pin, freq int) *PWMPin {
	return &PWMPin{
		pin:  rpio.Pin(pin),
		freq: freq,
	}
}

func (p *PWMPin) Init() error {
	err := gpio.Open()
	if err != nil {
		return fmt.Errorf("failed initializing buzzer pin: %w", err)
	}
	p.pin.Mode(rpio.Pwm)
	p.pin.Freq(p.freq * int(cycleLength))
	p.pin.DutyCycle(0, cycleLength)
	log.Printf("buzzer on pin %d at %dHz\n", p.pin, p.freq)
	return nil
}

// Tone maps the volume onto the duty cycle, half duty is the loudest.
func (p *PWMPin) Tone(volume uint8) {
	p.pin.DutyCycle(uint32(volume)*cycleLength/2/MaxVolume, cycleLength)
}

func (p *PWMPin) Silence() {
	p.pin.DutyCycle(0, cycleLength)
}

func (p *PWMPin) Stop() error {
	p.Silence()
	return gpio.Close()
}

// NopPin stands in for the buzzer in the simulator.
type NopPin struct{}

func (NopPin) Init() error { return nil }
func (NopPin) Tone(volume uint8) {
	log.Printf("buzzer on volume=%d\n", volume)
}
func (NopPin) Silence()    {}
func (NopPin) Stop() error { return nil }
