package analog

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
)

const (
	ChannelCount = 3

	Steering = 0
	Throttle = 1
	Channel3 = 2

	// Channel values are kept in the oversampled domain, raw<<OvsShift at rest.
	OvsShift = 2
	OvsRound = 1 << (OvsShift - 1)

	MaxRaw = 1023
)

type ChannelSourceIFace interface {
	Init() error
	ReadChannels() ([ChannelCount]uint16, error)
	Close() error
}

// BatterySourceIFace reports the battery in 10mV units.
type BatterySourceIFace interface {
	ReadBattery() (uint16, error)
}

// Filtered rounds an oversampled value back to the raw domain.
func Filtered(ovs uint16) uint16 {
	return uint16((uint32(ovs) + OvsRound) >> OvsShift)
}

// Oversampled scales a raw value into the oversampled domain.
func Oversampled(raw int) int {
	return raw << OvsShift
}

// Sampler keeps oversampled stick readings and the filtered battery value.
// It is the only writer of the readings, the menu only ever raises the
// takes-adc and wants-battery levels.
type Sampler struct {
	cfg      config.SamplerConfig
	channels ChannelSourceIFace
	battery  BatterySourceIFace

	ovs        [ChannelCount]atomic.Uint32
	batteryVal atomic.Uint32
	batteryLow atomic.Bool

	takesADC     atomic.Bool
	wantsBattery atomic.Bool

	primed        bool
	batteryPrimed bool
	ticks         int
	wake          chan struct{}
}

func NewSampler(cfg config.SamplerConfig, channels ChannelSourceIFace, battery BatterySourceIFace) *Sampler {
	if cfg.IdleDivider < 1 {
		cfg.IdleDivider = 1
	}
	if cfg.BatteryEvery < 1 {
		cfg.BatteryEvery = 1
	}
	return &Sampler{
		cfg:      cfg,
		channels: channels,
		battery:  battery,
		wake:     make(chan struct{}, 1),
	}
}

func (s *Sampler) Init() error {
	err := s.channels.Init()
	if err != nil {
		return fmt.Errorf("failed initializing analog channels: %w", err)
	}
	return s.Sample()
}

func (s *Sampler) Start(ctx context.Context) error {
	log.Println("starting sampler")
	defer func() {
		err := s.channels.Close()
		if err != nil {
			log.Printf("error: failed closing analog channels: %s\n", err.Error())
		}
	}()

	sampleTicker := time.NewTicker(s.cfg.SampleInterval)
	defer sampleTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopping sampler: %s\n", ctx.Err().Error())
			return ctx.Err()
		case <-sampleTicker.C:
			err := s.Sample()
			if err != nil {
				log.Printf("warning: %s\n", err.Error())
			}
		}
	}
}

// Sample takes one reading of every channel and wakes a waiting menu.
func (s *Sampler) Sample() error {
	raw, err := s.channels.ReadChannels()
	if err != nil {
		return fmt.Errorf("failed reading analog channels: %w", err)
	}

	for i := range raw {
		value := uint32(raw[i])
		if !s.primed {
			s.ovs[i].Store(value << OvsShift)
			continue
		}
		ovs := s.ovs[i].Load()
		s.ovs[i].Store(ovs - ovs>>OvsShift + value)
	}
	s.primed = true

	if s.battery != nil && (s.wantsBattery.Load() || s.ticks%s.cfg.BatteryEvery == 0) {
		err = s.sampleBattery()
	}

	s.ticks++
	if s.takesADC.Load() || s.ticks%s.cfg.IdleDivider == 0 {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return err
}

func (s *Sampler) sampleBattery() error {
	value, err := s.battery.ReadBattery()
	if err != nil {
		return fmt.Errorf("failed reading battery: %w", err)
	}

	filtered := uint32(value)
	if s.batteryPrimed {
		filtered = (s.batteryVal.Load()*3 + uint32(value) + 2) / 4
	}
	s.batteryPrimed = true
	s.batteryVal.Store(filtered)
	s.batteryLow.Store(int(filtered) < s.cfg.BatteryLow)
	return nil
}

// Wait is the idle primitive of the menu. It returns after the next sample
// while a screen takes the adc, otherwise after every IdleDivider samples.
func (s *Sampler) Wait(ctx context.Context) error {
	select {
	case <-s.wake:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Channel returns the oversampled reading of a stick channel.
func (s *Sampler) Channel(index int) uint16 {
	if index < 0 || index >= ChannelCount {
		return 0
	}
	return uint16(s.ovs[index].Load())
}

func (s *Sampler) Channels() [ChannelCount]uint16 {
	var values [ChannelCount]uint16
	for i := range values {
		values[i] = s.Channel(i)
	}
	return values
}

func (s *Sampler) Battery() uint16 {
	return uint16(s.batteryVal.Load())
}

func (s *Sampler) BatteryLow() bool {
	return s.batteryLow.Load()
}

func (s *Sampler) SetTakesADC(takes bool) {
	s.takesADC.Store(takes)
}

func (s *Sampler) TakesADC() bool {
	return s.takesADC.Load()
}

func (s *Sampler) SetWantsBattery(wants bool) {
	s.wantsBattery.Store(wants)
}
