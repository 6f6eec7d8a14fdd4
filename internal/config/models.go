package config

import "time"

const (
	MaxSupportedServos = 16
	AppEnvBase         = "GORTX_"

	// Default Sampler Options
	DefaultAnalogDriver   = "ads1115"
	DefaultBatteryDriver  = "adc"
	DefaultPowerSupply    = "BAT0"
	DefaultSampleInterval = 5 * time.Millisecond
	DefaultIdleDivider    = 4
	DefaultBatteryEvery   = 20
	DefaultBatteryLow     = 680 // 10mV units
	DefaultADCI2CDevice   = "/dev/i2c-1"
	DefaultADCAddress     = 0x48
	DefaultBatteryDivider = 3.0

	// Default Input Options
	DefaultInputDriver  = "gpio"
	DefaultLongPress    = 1 * time.Second
	DefaultPollInterval = 5 * time.Millisecond

	// Default Display Options
	DefaultRenderer = "log"

	// Default Buzzer Options
	DefaultBuzzerEnabled = true
	DefaultBuzzerPin     = 18
	DefaultBuzzerFreq    = 2700

	// Default Backlight Options
	DefaultBacklightPin = 23

	// Default Store Options
	DefaultStoreDriver = "file"
	DefaultStoreDir    = "./data"
	DefaultModelCount  = 20

	// Default Command Options
	DefaultCommandDriver = "pca9685"
	DefaultAddress       = 0x40
	DefaultI2CDevice     = "/dev/i2c-1"
	DefaultMaxPulse      = 2250
	DefaultMinPulse      = 750
	DefaultSerialPort    = "/dev/ttyAMA0"
	DefaultSerialBaud    = 420000
	DefaultFrameInterval = 20 * time.Millisecond

	// Default Remote Options
	DefaultRemoteEnabled = false
	DefaultServer        = "127.0.0.1:8181"
	DefaultCarName       = ""
	DefaultSeatNumber    = 0
	DefaultRemoteKey     = ""
	DefaultPassword      = ""

	DefaultLogFile = "gortx.log"
)

// DefaultButtonPins are BCM pin numbers in button bit order.
var DefaultButtonPins = []int{5, 6, 13, 19, 26, 16, 20, 21, 12, 25, 24, 22}

type Config struct {
	SamplerCfg   SamplerConfig
	InputCfg     InputConfig
	DisplayCfg   DisplayConfig
	BuzzerCfg    BuzzerConfig
	BacklightCfg BacklightConfig
	StoreCfg     StoreConfig
	CommandCfg   CommandConfig
	RemoteCfg    RemoteConfig

	Sim       bool
	Calibrate bool
	LogFile   string
}

type SamplerConfig struct {
	AnalogDriver   string
	BatteryDriver  string
	PowerSupply    string
	BatteryDivider float64
	SampleInterval time.Duration
	IdleDivider    int
	BatteryEvery   int
	BatteryLow     int
	I2CDevice      string
	Address        byte
}

type InputConfig struct {
	InputDriver  string
	ButtonPins   []int
	EncoderPinA  int
	EncoderPinB  int
	LongPress    time.Duration
	PollInterval time.Duration
}

type DisplayConfig struct {
	Renderer string
}

type BuzzerConfig struct {
	Enabled bool
	Pin     int
	Freq    int
}

type BacklightConfig struct {
	Pin int
}

type StoreConfig struct {
	StoreDriver string
	Dir         string
	ModelCount  int
}

type CommandConfig struct {
	CommandDriver string
	Address       byte
	I2CDevice     string
	ServoCfgs     []ServoConfig
	SerialPort    string
	SerialBaud    int
	FrameInterval time.Duration
}

type ServoConfig struct {
	Name     string
	Channel  int
	Output   int
	MaxPulse float64
	MinPulse float64
}

type RemoteConfig struct {
	Enabled       bool
	Server        string
	CarName       string
	SeatNumber    int
	TransmitterID string
	Key           string
	Password      string
}
