package command

import (
	"fmt"
	"log"

	"github.com/Speshl/gorrc_tx/internal/command"
	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/googolgl/go-i2c"
	"github.com/googolgl/go-pca9685"
)

const (
	MaxValue = 1.0
	MinValue = 0.0
	AcRange  = pca9685.ServoRangeDef

	// the full servo fraction is reached at 150% end-point
	InputMax = 1.5
	InputMin = -1.5
)

// Command drives one servo output of a pca9685 board per configured channel.
type Command struct {
	cfg    config.CommandConfig
	servos []Servo
	driver *pca9685.PCA9685
}

type Servo struct {
	name    string
	channel int
	servo   *pca9685.Servo
}

func NewCommand(cfg config.CommandConfig) *Command {
	return &Command{
		cfg: cfg,
	}
}

func (c *Command) Init() error {
	i2c, err := i2c.New(c.cfg.Address, c.cfg.I2CDevice)
	if err != nil {
		return fmt.Errorf("error starting i2c with address - %w", err)
	}

	c.driver, err = pca9685.New(i2c, nil)
	if err != nil {
		return fmt.Errorf("error getting servo driver - %w", err)
	}

	c.servos = make([]Servo, 0, len(c.cfg.ServoCfgs))
	for _, servoCfg := range c.cfg.ServoCfgs {
		c.servos = append(c.servos, Servo{
			name:    servoCfg.Name,
			channel: servoCfg.Channel,
			servo: c.driver.ServoNew(servoCfg.Output, &pca9685.ServOptions{
				AcRange:  AcRange,
				MinPulse: float32(servoCfg.MinPulse),
				MaxPulse: float32(servoCfg.MaxPulse),
			}),
		})
		log.Printf("servo added: %s on output %d for channel %d\n", servoCfg.Name, servoCfg.Output, servoCfg.Channel)
	}
	c.CenterAll()
	return nil
}

func (c *Command) Stop() error {
	c.CenterAll()
	return nil
}

func (c *Command) CenterAll() {
	log.Println("centering all servos")
	for i := range c.servos {
		err := c.servos[i].servo.Fraction(0.5)
		if err != nil {
			log.Printf("warning: failed centering servo %s: %s\n", c.servos[i].name, err.Error())
		}
	}
}

func (c *Command) SetMany(values []float64) error {
	for i := range c.servos {
		fraction := Fraction(command.Value(values, c.servos[i].channel))
		err := c.servos[i].servo.Fraction(float32(fraction))
		if err != nil {
			return fmt.Errorf("failed setting servo value - name: %s value: %.2f - error: %w", c.servos[i].name, fraction, err)
		}
	}
	return nil
}

// Fraction maps a channel value onto the servo travel.
func Fraction(value float64) float64 {
	return command.MapToRange(value, InputMin, InputMax, MinValue, MaxValue)
}
