package settings

import (
	"fmt"
	"strings"
)

const (
	MaxChannels      = 4
	TrimChannels     = 2
	DualRateChannels = 2
	ExpoChannels     = 3
	NameLength       = 3

	TrimMax     = 99
	SubtrimMax  = 99
	ExpoMax     = 99
	DualRateMax = 100

	// BacklightMax keeps the backlight on until changed.
	BacklightMax = 0xffff

	DefaultEndpoint    = 100
	DefaultEndpointMax = 150
	DefaultDualRate    = 100
	DefaultAutorepeat  = 3  // passes of 10ms between repeats
	DefaultBacklight   = 30 // seconds
)

// Direction indexes the per-direction end-points.
const (
	DirLeft  = 0 // left or forward
	DirRight = 1 // right or back
)

type GlobalSettings struct {
	Model int `json:"model"`

	CalibSteeringLeft  uint16 `json:"calib_steering_left"`
	CalibSteeringMid   uint16 `json:"calib_steering_mid"`
	CalibSteeringRight uint16 `json:"calib_steering_right"`
	CalibThrottleFwd   uint16 `json:"calib_throttle_fwd"`
	CalibThrottleMid   uint16 `json:"calib_throttle_mid"`
	CalibThrottleBck   uint16 `json:"calib_throttle_bck"`

	KeyBeep       bool   `json:"key_beep"`
	Autorepeat    uint8  `json:"autorepeat"`
	BacklightTime uint16 `json:"backlight_time"`
	EndpointMax   uint8  `json:"endpoint_max"`
}

type ModelSettings struct {
	Name     Name                    `json:"name"`
	Channels int                     `json:"channels"`
	Reverse  uint8                   `json:"reverse"`
	Endpoint [MaxChannels][2]uint8   `json:"endpoint"`
	Trim     [TrimChannels]int8      `json:"trim"`
	Subtrim  [MaxChannels]int8       `json:"subtrim"`
	DualRate [DualRateChannels]uint8 `json:"dualrate"`
	Expo     [ExpoChannels]int8      `json:"expo"`
}

// Name is the fixed length model name shown on the character segments.
type Name [NameLength]byte

func NewName(s string) Name {
	var n Name
	s = strings.ToUpper(s)
	for i := range n {
		if i < len(s) {
			n[i] = s[i]
		} else {
			n[i] = ' '
		}
	}
	return n
}

func (n Name) String() string {
	return string(n[:])
}

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	if len(text) != NameLength {
		return fmt.Errorf("model name must be %d characters, got %q", NameLength, string(text))
	}
	*n = NewName(string(text))
	return nil
}

func DefaultGlobal() GlobalSettings {
	return GlobalSettings{
		Model:              0,
		CalibSteeringLeft:  100,
		CalibSteeringMid:   512,
		CalibSteeringRight: 923,
		CalibThrottleFwd:   100,
		CalibThrottleMid:   512,
		CalibThrottleBck:   923,
		KeyBeep:            true,
		Autorepeat:         DefaultAutorepeat,
		BacklightTime:      DefaultBacklight,
		EndpointMax:        DefaultEndpointMax,
	}
}

func DefaultModel() ModelSettings {
	m := ModelSettings{
		Name:     NewName("MOD"),
		Channels: MaxChannels,
	}
	for i := range m.Endpoint {
		m.Endpoint[i] = [2]uint8{DefaultEndpoint, DefaultEndpoint}
	}
	for i := range m.DualRate {
		m.DualRate[i] = DefaultDualRate
	}
	return m
}

// Reversed reports the reverse bit of a 1-based channel.
func (m *ModelSettings) Reversed(channel int) bool {
	return m.Reverse&ReverseBit(channel) != 0
}

func ReverseBit(channel int) uint8 {
	return uint8(1 << (channel - 1))
}
