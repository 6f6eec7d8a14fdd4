package pipwm

import (
	"fmt"
	"log"

	"github.com/Speshl/gorrc_tx/internal/command"
	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/Speshl/gorrc_tx/internal/gpio"
	"github.com/stianeikeland/go-rpio/v4"
)

const (
	Frequency          = 100000
	CycleLength        = uint32(2000)
	MaxSupportedServos = 2

	CenterPulse = 1500.0
	PulseSpan   = 500.0
)

var PinMap = []int{12, 13} //Servo0, Servo1

// CommandDriver generates servo pulses on the two hardware pwm pins.
type CommandDriver struct {
	cfg    config.CommandConfig
	servos []Servo
}

type Servo struct {
	name     string
	channel  int
	servo    rpio.Pin
	maxValue float64
	minValue float64
}

func NewCommand(cfg config.CommandConfig) *CommandDriver {
	return &CommandDriver{
		cfg: cfg,
	}
}

func (c *CommandDriver) Init() error {
	err := gpio.Open()
	if err != nil {
		return fmt.Errorf("failed initializing pwm pins: %w", err)
	}

	c.servos = make([]Servo, 0, MaxSupportedServos)
	for i := range c.cfg.ServoCfgs {
		if i >= MaxSupportedServos {
			log.Printf("warning: only %d pwm servos supported, skipping %s\n", MaxSupportedServos, c.cfg.ServoCfgs[i].Name)
			continue
		}

		servo := Servo{
			name:     c.cfg.ServoCfgs[i].Name,
			channel:  c.cfg.ServoCfgs[i].Channel,
			servo:    rpio.Pin(PinMap[i]),
			maxValue: c.cfg.ServoCfgs[i].MaxPulse,
			minValue: c.cfg.ServoCfgs[i].MinPulse,
		}
		servo.servo.Mode(rpio.Pwm)
		servo.servo.Freq(Frequency)
		c.servos = append(c.servos, servo)
		log.Printf("servo added: %s\n", servo.name)
	}
	c.CenterAll()
	return nil
}

func (c *CommandDriver) Stop() error {
	c.CenterAll()
	return gpio.Close()
}

func (c *CommandDriver) CenterAll() {
	log.Println("centering all servos")
	for i := range c.servos {
		c.servos[i].servo.DutyCycle(uint32(c.servos[i].pulse(0)), CycleLength)
	}
}

func (c *CommandDriver) SetMany(values []float64) error {
	for i := range c.servos {
		pulse := c.servos[i].pulse(command.Value(values, c.servos[i].channel))
		c.servos[i].servo.DutyCycle(uint32(pulse), CycleLength)
	}
	return nil
}

// pulse is the pulse width in microseconds, one duty step per microsecond.
func (s Servo) pulse(value float64) float64 {
	return Pulse(value, s.minValue, s.maxValue)
}

func Pulse(value, minPulse, maxPulse float64) float64 {
	pulse := CenterPulse + PulseSpan*value
	if pulse > maxPulse {
		return maxPulse
	} else if pulse < minPulse {
		return minPulse
	}
	return pulse
}
