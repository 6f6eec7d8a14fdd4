package analog

import (
	"fmt"
	"log"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/googolgl/go-i2c"
)

const (
	adsRegConversion = 0x00
	adsRegConfig     = 0x01

	adsStartSingle = 0x8000
	adsMuxSingle0  = 0x4000 // AIN0 against GND, add channel<<12 for the others
	adsGain4V      = 0x0200 // +-4.096V full scale
	adsModeSingle  = 0x0100
	adsRate860     = 0x00e0
	adsCompOff     = 0x0003

	adsConversionTime = 1200 * time.Microsecond
	adsMicroVoltLSB   = 125

	adsBatteryInput = 3
)

type i2cBus interface {
	WriteRegU16BE(reg byte, value uint16) error
	ReadRegU16BE(reg byte) (uint16, error)
	Close() error
}

// ADS1115 reads the three sticks on AIN0-2 and the battery divider on AIN3.
type ADS1115 struct {
	cfg config.SamplerConfig
	bus i2cBus
}

func NewADS1115(cfg config.SamplerConfig) *ADS1115 {
	return &ADS1115{
		cfg: cfg,
	}
}

func (a *ADS1115) Init() error {
	bus, err := i2c.New(a.cfg.Address, a.cfg.I2CDevice)
	if err != nil {
		return fmt.Errorf("error starting i2c with address - %w", err)
	}
	a.bus = bus
	log.Printf("ads1115 opened at %#x on %s\n", a.cfg.Address, a.cfg.I2CDevice)
	return nil
}

func (a *ADS1115) Close() error {
	if a.bus == nil {
		return nil
	}
	return a.bus.Close()
}

// ReadChannels returns 10 bit readings of the stick inputs.
func (a *ADS1115) ReadChannels() ([ChannelCount]uint16, error) {
	var values [ChannelCount]uint16
	for i := range values {
		raw, err := a.convert(i)
		if err != nil {
			return values, err
		}
		values[i] = uint16(raw >> 5)
	}
	return values, nil
}

func (a *ADS1115) ReadBattery() (uint16, error) {
	raw, err := a.convert(adsBatteryInput)
	if err != nil {
		return 0, err
	}
	microVolts := float64(raw) * adsMicroVoltLSB * a.cfg.BatteryDivider
	return uint16(microVolts / 10000), nil
}

func (a *ADS1115) convert(input int) (int, error) {
	if a.bus == nil {
		return 0, fmt.Errorf("ads1115 not initialized")
	}

	cfg := uint16(adsStartSingle | adsMuxSingle0 | input<<12 | adsGain4V | adsModeSingle | adsRate860 | adsCompOff)
	err := a.bus.WriteRegU16BE(adsRegConfig, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed starting conversion on AIN%d: %w", input, err)
	}
	time.Sleep(adsConversionTime)

	value, err := a.bus.ReadRegU16BE(adsRegConversion)
	if err != nil {
		return 0, fmt.Errorf("failed reading conversion on AIN%d: %w", input, err)
	}

	signed := int(int16(value))
	if signed < 0 {
		signed = 0
	}
	return signed, nil
}
