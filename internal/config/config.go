package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetConfig() Config {
	cfg := Config{
		SamplerCfg:   GetSamplerConfig(),
		InputCfg:     GetInputConfig(),
		DisplayCfg:   GetDisplayConfig(),
		BuzzerCfg:    GetBuzzerConfig(),
		BacklightCfg: GetBacklightConfig(),
		StoreCfg:     GetStoreConfig(),
		CommandCfg:   GetCommandConfig(),
		RemoteCfg:    GetRemoteConfig(),

		LogFile: GetStringEnv("LOGFILE", DefaultLogFile),
	}

	log.Printf("app Config: \n%+v\n", cfg)
	return cfg
}

// ApplySim switches every hardware facing driver to its simulated counterpart.
func (c *Config) ApplySim() {
	c.Sim = true
	c.SamplerCfg.AnalogDriver = "sim"
	c.SamplerCfg.BatteryDriver = "sim"
	c.InputCfg.InputDriver = "keyboard"
	c.DisplayCfg.Renderer = "terminal"
	c.BuzzerCfg.Enabled = false
	c.BacklightCfg.Pin = -1
	c.CommandCfg.CommandDriver = "none"
}

func GetSamplerConfig() SamplerConfig {
	envPrefix := "SAMPLER_"
	return SamplerConfig{
		AnalogDriver:   GetStringEnv(envPrefix+"ANALOGDRIVER", DefaultAnalogDriver),
		BatteryDriver:  GetStringEnv(envPrefix+"BATTERYDRIVER", DefaultBatteryDriver),
		PowerSupply:    GetStringEnv(envPrefix+"POWERSUPPLY", DefaultPowerSupply),
		BatteryDivider: GetFloatEnv(envPrefix+"BATTERYDIVIDER", DefaultBatteryDivider),
		SampleInterval: GetDurationEnv(envPrefix+"INTERVAL", DefaultSampleInterval),
		IdleDivider:    GetIntEnv(envPrefix+"IDLEDIVIDER", DefaultIdleDivider),
		BatteryEvery:   GetIntEnv(envPrefix+"BATTERYEVERY", DefaultBatteryEvery),
		BatteryLow:     GetIntEnv(envPrefix+"BATTERYLOW", DefaultBatteryLow),
		I2CDevice:      GetStringEnv(envPrefix+"I2CDEVICE", DefaultADCI2CDevice),
		Address:        byte(GetIntEnv(envPrefix+"ADDRESS", DefaultADCAddress)),
	}
}

func GetInputConfig() InputConfig {
	envPrefix := "INPUT_"
	inputCfg := InputConfig{
		InputDriver:  GetStringEnv(envPrefix+"DRIVER", DefaultInputDriver),
		ButtonPins:   make([]int, 0, len(DefaultButtonPins)),
		EncoderPinA:  GetIntEnv(envPrefix+"ENCODER_A", 17),
		EncoderPinB:  GetIntEnv(envPrefix+"ENCODER_B", 27),
		LongPress:    GetDurationEnv(envPrefix+"LONGPRESS", DefaultLongPress),
		PollInterval: GetDurationEnv(envPrefix+"POLL", DefaultPollInterval),
	}

	for i := range DefaultButtonPins {
		inputCfg.ButtonPins = append(inputCfg.ButtonPins, GetIntEnv(fmt.Sprintf("%sBUTTON%d_PIN", envPrefix, i), DefaultButtonPins[i]))
	}
	return inputCfg
}

func GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Renderer: GetStringEnv("RENDERER", DefaultRenderer),
	}
}

func GetBuzzerConfig() BuzzerConfig {
	return BuzzerConfig{
		Enabled: GetBoolEnv("BUZZERENABLED", DefaultBuzzerEnabled),
		Pin:     GetIntEnv("BUZZERPIN", DefaultBuzzerPin),
		Freq:    GetIntEnv("BUZZERFREQ", DefaultBuzzerFreq),
	}
}

func GetBacklightConfig() BacklightConfig {
	return BacklightConfig{
		Pin: GetIntEnv("BACKLIGHTPIN", DefaultBacklightPin),
	}
}

func GetStoreConfig() StoreConfig {
	return StoreConfig{
		StoreDriver: GetStringEnv("STOREDRIVER", DefaultStoreDriver),
		Dir:         GetStringEnv("STOREDIR", DefaultStoreDir),
		ModelCount:  GetIntEnv("MODELCOUNT", DefaultModelCount),
	}
}

func GetCommandConfig() CommandConfig {
	commandCfg := CommandConfig{
		CommandDriver: GetStringEnv("SERVODRIVER", DefaultCommandDriver),
		Address:       DefaultAddress,
		I2CDevice:     GetStringEnv("I2CDEVICE", DefaultI2CDevice),
		ServoCfgs:     make([]ServoConfig, 0, MaxSupportedServos),
		SerialPort:    GetStringEnv("SERIALPORT", DefaultSerialPort),
		SerialBaud:    GetIntEnv("SERIALBAUD", DefaultSerialBaud),
		FrameInterval: GetDurationEnv("FRAMEINTERVAL", DefaultFrameInterval),
	}

	for i := 0; i < MaxSupportedServos; i++ {
		envPrefix := fmt.Sprintf("SERVO%d_", i)
		servoCfg := ServoConfig{
			Name:     GetStringEnv(envPrefix+"NAME", ""),
			Channel:  GetIntEnv(envPrefix+"CHANNEL", i+1),
			Output:   GetIntEnv(envPrefix+"OUTPUT", i),
			MaxPulse: float64(GetIntEnv(envPrefix+"MAXPULSE", DefaultMaxPulse)),
			MinPulse: float64(GetIntEnv(envPrefix+"MINPULSE", DefaultMinPulse)),
		}

		if servoCfg.Name != "" {
			log.Printf("found config for servo: %s\n", servoCfg.Name)
			commandCfg.ServoCfgs = append(commandCfg.ServoCfgs, servoCfg)
		}
	}

	if len(commandCfg.ServoCfgs) == 0 {
		commandCfg.ServoCfgs = []ServoConfig{
			{Name: "steer", Channel: 1, Output: 0, MaxPulse: DefaultMaxPulse, MinPulse: DefaultMinPulse},
			{Name: "esc", Channel: 2, Output: 1, MaxPulse: DefaultMaxPulse, MinPulse: DefaultMinPulse},
			{Name: "ch3", Channel: 3, Output: 2, MaxPulse: DefaultMaxPulse, MinPulse: DefaultMinPulse},
		}
	}
	return commandCfg
}

func GetRemoteConfig() RemoteConfig {
	envPrefix := "REMOTE_"
	remoteCfg := RemoteConfig{
		Enabled:       GetBoolEnv(envPrefix+"ENABLED", DefaultRemoteEnabled),
		Server:        GetStringEnv(envPrefix+"SERVER", DefaultServer),
		CarName:       GetStringEnv(envPrefix+"CARNAME", DefaultCarName),
		SeatNumber:    GetIntEnv(envPrefix+"SEAT", DefaultSeatNumber),
		TransmitterID: GetStringEnv(envPrefix+"ID", ""),
		Key:           GetStringEnv(envPrefix+"KEY", DefaultRemoteKey),
		Password:      GetStringEnv(envPrefix+"PASSWORD", DefaultPassword),
	}

	if _, err := uuid.Parse(remoteCfg.TransmitterID); err != nil {
		remoteCfg.TransmitterID = uuid.New().String()
		if remoteCfg.Enabled {
			log.Printf("warning: no valid transmitter id set, using generated id %s\n", remoteCfg.TransmitterID)
		}
	}
	return remoteCfg
}

func GetIntEnv(env string, defaultValue int) int {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseInt(strings.Trim(envValue, "\r"), 0, 32)
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return int(value)
		}
	}
}

func GetBoolEnv(env string, defaultValue bool) bool {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseBool(strings.Trim(envValue, "\r"))
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return value
		}
	}
}

func GetStringEnv(env string, defaultValue string) string {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		return strings.Trim(envValue, "\r")
	}
}

func GetFloatEnv(env string, defaultValue float64) float64 {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return defaultValue
		}
		return value
	}
}

func GetDurationEnv(env string, defaultValue time.Duration) time.Duration {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := time.ParseDuration(strings.Trim(envValue, "\r"))
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		}
		return value
	}
}
