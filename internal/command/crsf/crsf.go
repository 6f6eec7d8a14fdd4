package crsf

import (
	"fmt"
	"log"

	"github.com/Speshl/gorrc_tx/internal/config"
	"go.bug.st/serial"
)

const (
	AddressFlightController = 0xC8
	TypeRCChannels          = 0x16

	ChannelCount = 16
	payloadLen   = 22
	// length counts type, payload and crc
	frameLen = payloadLen + 2

	ValueMin = 172
	ValueMid = 992
	ValueMax = 1811

	crcPoly = 0xD5
)

// Command streams RC channel frames to a crossfire module on a serial port.
type Command struct {
	cfg  config.CommandConfig
	port serial.Port
}

func NewCommand(cfg config.CommandConfig) *Command {
	return &Command{
		cfg: cfg,
	}
}

func (c *Command) Init() error {
	port, err := serial.Open(c.cfg.SerialPort, &serial.Mode{
		BaudRate: c.cfg.SerialBaud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("failed opening crsf port %s: %w", c.cfg.SerialPort, err)
	}
	c.port = port
	log.Printf("crsf on %s at %d baud\n", c.cfg.SerialPort, c.cfg.SerialBaud)
	return nil
}

func (c *Command) Stop() error {
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	if err != nil {
		return fmt.Errorf("failed closing crsf port: %w", err)
	}
	return nil
}

func (c *Command) SetMany(values []float64) error {
	if c.port == nil {
		return fmt.Errorf("crsf port not open")
	}
	_, err := c.port.Write(EncodeChannels(values))
	if err != nil {
		return fmt.Errorf("failed writing crsf frame: %w", err)
	}
	return nil
}

// ChannelValue maps a value in [-1, 1] onto the crsf range.
func ChannelValue(value float64) uint16 {
	v := ValueMid + value*float64(ValueMax-ValueMid)
	if v > ValueMax {
		return ValueMax
	} else if v < ValueMin {
		return ValueMin
	}
	return uint16(v + 0.5)
}

// EncodeChannels builds an RC channels frame, channels past len(values) sit at mid.
func EncodeChannels(values []float64) []byte {
	frame := make([]byte, 0, frameLen+2)
	frame = append(frame, AddressFlightController, frameLen, TypeRCChannels)

	var bits uint32
	var bitCount uint
	for i := 0; i < ChannelCount; i++ {
		value := uint16(ValueMid)
		if i < len(values) {
			value = ChannelValue(values[i])
		}
		bits |= uint32(value&0x7ff) << bitCount
		bitCount += 11
		for bitCount >= 8 {
			frame = append(frame, byte(bits))
			bits >>= 8
			bitCount -= 8
		}
	}
	return append(frame, CRC8(frame[2:]))
}

// CRC8 uses the DVB-S2 polynomial over type and payload.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
