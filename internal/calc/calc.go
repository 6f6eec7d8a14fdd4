package calc

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/command"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

// trimScale turns trim and sub-trim steps into channel offset.
const trimScale = 400.0

type ChannelReaderIFace interface {
	Channels() [analog.ChannelCount]uint16
}

// Calc turns the sampled sticks into channel values and hands them to every output.
type Calc struct {
	lock   sync.RWMutex
	global settings.GlobalSettings
	model  settings.ModelSettings
	values []float64

	interval time.Duration
	reader   ChannelReaderIFace
	outputs  []command.CommandIFace
	wake     chan struct{}
}

func NewCalc(interval time.Duration, reader ChannelReaderIFace, outputs ...command.CommandIFace) *Calc {
	return &Calc{
		global:   settings.DefaultGlobal(),
		model:    settings.DefaultModel(),
		values:   make([]float64, settings.MaxChannels),
		interval: interval,
		reader:   reader,
		outputs:  outputs,
		wake:     make(chan struct{}, 1),
	}
}

func (c *Calc) Init() error {
	for i := range c.outputs {
		err := c.outputs[i].Init()
		if err != nil {
			return fmt.Errorf("failed initializing output %d: %w", i, err)
		}
	}
	return nil
}

func (c *Calc) SetGlobal(global settings.GlobalSettings) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.global = global
}

func (c *Calc) SetModel(model settings.ModelSettings) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.model = model
}

// Wake asks for a frame right away.
func (c *Calc) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Values returns a copy of the last computed frame.
func (c *Calc) Values() []float64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	values := make([]float64, len(c.values))
	copy(values, c.values)
	return values
}

func (c *Calc) Start(ctx context.Context) error {
	log.Println("starting calc loop")
	defer c.stopOutputs()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopping calc loop: %s\n", ctx.Err().Error())
			return ctx.Err()
		case <-ticker.C:
		case <-c.wake:
		}
		c.Frame()
	}
}

// Frame computes one set of channel values and sends it.
func (c *Calc) Frame() {
	raw := c.reader.Channels()
	c.lock.Lock()
	c.values = Compute(&c.global, &c.model, raw)
	values := c.values
	c.lock.Unlock()

	for i := range c.outputs {
		err := c.outputs[i].SetMany(values)
		if err != nil {
			log.Printf("error: output %d: %s\n", i, err.Error())
		}
	}
}

func (c *Calc) stopOutputs() {
	for i := range c.outputs {
		err := c.outputs[i].Stop()
		if err != nil {
			log.Printf("error: failed stopping output %d: %s\n", i, err.Error())
		}
	}
}

// Compute maps oversampled stick readings to channel values in [-1, 1]
// before end-points, which may push them up to 1.5.
func Compute(global *settings.GlobalSettings, model *settings.ModelSettings, ovs [analog.ChannelCount]uint16) []float64 {
	values := make([]float64, settings.MaxChannels)

	steering, steeringDir := stick(analog.Filtered(ovs[analog.Steering]),
		global.CalibSteeringLeft, global.CalibSteeringMid, global.CalibSteeringRight)
	throttle, throttleDir := stick(analog.Filtered(ovs[analog.Throttle]),
		global.CalibThrottleFwd, global.CalibThrottleMid, global.CalibThrottleBck)

	ch3 := command.MapToRange(float64(analog.Filtered(ovs[analog.Channel3])), 0, analog.MaxRaw, -1, 1)
	ch3Dir := settings.DirRight
	if ch3 < 0 {
		ch3Dir = settings.DirLeft
	}

	inputs := [settings.MaxChannels]float64{steering, throttle, ch3, 0}
	dirs := [settings.MaxChannels]int{steeringDir, throttleDir, ch3Dir, settings.DirRight}

	for i := range values {
		v := inputs[i]
		if i < settings.DualRateChannels {
			v *= float64(model.DualRate[i]) / 100
		}
		v *= float64(model.Endpoint[i][dirs[i]]) / 100

		offset := float64(model.Subtrim[i])
		if i < settings.TrimChannels {
			offset += float64(model.Trim[i])
		}
		v += offset / trimScale

		if model.Reversed(i + 1) {
			v = -v
		}
		values[i] = v
	}
	return values
}

// stick maps a calibrated reading to [-1, 1], the low side is negative.
func stick(value, low, mid, high uint16) (float64, int) {
	if value < mid {
		if mid <= low {
			return 0, settings.DirLeft
		}
		return command.MapToRange(float64(value), float64(low), float64(mid), -1, 0), settings.DirLeft
	}
	if high <= mid {
		return 0, settings.DirRight
	}
	return command.MapToRange(float64(value), float64(mid), float64(high), 0, 1), settings.DirRight
}
