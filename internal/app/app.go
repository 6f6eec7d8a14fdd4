package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/backlight"
	"github.com/Speshl/gorrc_tx/internal/buzzer"
	"github.com/Speshl/gorrc_tx/internal/calc"
	"github.com/Speshl/gorrc_tx/internal/command"
	"github.com/Speshl/gorrc_tx/internal/command/crsf"
	pca9685 "github.com/Speshl/gorrc_tx/internal/command/pca9685"
	pipwm "github.com/Speshl/gorrc_tx/internal/command/pi_pwm"
	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/menu"
	"github.com/Speshl/gorrc_tx/internal/remote"
	"github.com/Speshl/gorrc_tx/internal/sim"
	"github.com/Speshl/gorrc_tx/internal/store"
	"golang.org/x/sync/errgroup"
)

var ErrSignal = errors.New("received signal")

// App wires the sampler, input, display, calc loop and menu together.
type App struct {
	Cfg config.Config

	sampler   *analog.Sampler
	latch     *input.Latch
	poller    *input.GPIO
	lcd       *display.LCD
	buzzer    *buzzer.Buzzer
	backlight *backlight.Backlight
	calc      *calc.Calc
	menu      *menu.Menu
	sim       *sim.Sim

	backlightPin *backlight.RPIOPin
}

func NewApp(cfg config.Config) (*App, error) {
	a := &App{
		Cfg:   cfg,
		latch: input.NewLatch(cfg.InputCfg.LongPress),
	}

	var simSticks *analog.Sim
	if cfg.Sim {
		simSticks = analog.NewSim()
		a.sim = sim.NewSim(input.NewKeyboard(a.latch, input.DefaultKeys), simSticks)
	}

	channels, battery, err := analogSources(cfg.SamplerCfg, simSticks)
	if err != nil {
		return nil, err
	}
	a.sampler = analog.NewSampler(cfg.SamplerCfg, channels, battery)

	switch cfg.InputCfg.InputDriver {
	case "gpio":
		a.poller = input.NewGPIO(cfg.InputCfg, a.latch)
	case "keyboard":
		if a.sim == nil {
			return nil, fmt.Errorf("keyboard input needs the simulator")
		}
	default:
		return nil, fmt.Errorf("unsupported input driver: %s", cfg.InputCfg.InputDriver)
	}

	switch cfg.DisplayCfg.Renderer {
	case "terminal":
		if a.sim == nil {
			return nil, fmt.Errorf("terminal renderer needs the simulator")
		}
		a.lcd = display.NewLCD(a.sim)
	default:
		a.lcd = display.NewLCD(display.NewLogRenderer())
	}

	var buzzerPin buzzer.PinIFace = buzzer.NopPin{}
	if cfg.BuzzerCfg.Enabled {
		buzzerPin = buzzer.NewPWMPin(cfg.BuzzerCfg.Pin, cfg.BuzzerCfg.Freq)
	}
	a.buzzer = buzzer.NewBuzzer(cfg.BuzzerCfg, buzzerPin)

	var lightPin backlight.PinIFace = backlight.NopPin{}
	if cfg.BacklightCfg.Pin >= 0 {
		a.backlightPin, err = backlight.NewRPIOPin(cfg.BacklightCfg)
		if err != nil {
			return nil, err
		}
		lightPin = a.backlightPin
	}
	a.backlight = backlight.NewBacklight(lightPin)

	settingsStore, err := newStore(cfg.StoreCfg)
	if err != nil {
		return nil, err
	}

	outputs, err := newOutputs(cfg)
	if err != nil {
		return nil, err
	}
	a.calc = calc.NewCalc(cfg.CommandCfg.FrameInterval, a.sampler, outputs...)

	opts := menu.DefaultOptions()
	opts.ForceCalibration = cfg.Calibrate
	a.menu = menu.NewMenu(opts, menu.Devices{
		Store:     settingsStore,
		Analog:    a.sampler,
		Input:     a.latch,
		Display:   a.lcd,
		Buzzer:    a.buzzer,
		Backlight: a.backlight,
		Calc:      a.calc,
	})
	return a, nil
}

func analogSources(cfg config.SamplerConfig, simSticks *analog.Sim) (analog.ChannelSourceIFace, analog.BatterySourceIFace, error) {
	var channels analog.ChannelSourceIFace
	var ads *analog.ADS1115
	switch cfg.AnalogDriver {
	case "ads1115":
		ads = analog.NewADS1115(cfg)
		channels = ads
	case "sim":
		if simSticks == nil {
			return nil, nil, fmt.Errorf("sim analog driver needs the simulator")
		}
		channels = simSticks
	default:
		return nil, nil, fmt.Errorf("unsupported analog driver: %s", cfg.AnalogDriver)
	}

	switch cfg.BatteryDriver {
	case "adc":
		if ads == nil {
			return nil, nil, fmt.Errorf("adc battery driver needs the ads1115 analog driver")
		}
		return channels, ads, nil
	case "sysfs":
		battery, err := analog.NewSysfsBattery(cfg.PowerSupply)
		if err != nil {
			return nil, nil, err
		}
		return channels, battery, nil
	case "sim":
		if simSticks == nil {
			return nil, nil, fmt.Errorf("sim battery driver needs the simulator")
		}
		return channels, simSticks, nil
	default:
		return nil, nil, fmt.Errorf("unsupported battery driver: %s", cfg.BatteryDriver)
	}
}

func newStore(cfg config.StoreConfig) (menu.StoreIFace, error) {
	switch cfg.StoreDriver {
	case "file":
		fileStore, err := store.NewFile(cfg.Dir, cfg.ModelCount)
		if err != nil {
			return nil, err
		}
		return fileStore, nil
	case "memory":
		return store.NewMemory(cfg.ModelCount), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

func newOutputs(cfg config.Config) ([]command.CommandIFace, error) {
	outputs := make([]command.CommandIFace, 0, 2)
	switch cfg.CommandCfg.CommandDriver {
	case "pca9685":
		outputs = append(outputs, pca9685.NewCommand(cfg.CommandCfg))
	case "pipwm":
		outputs = append(outputs, pipwm.NewCommand(cfg.CommandCfg))
	case "crsf":
		outputs = append(outputs, crsf.NewCommand(cfg.CommandCfg))
	case "none":
	default:
		return nil, fmt.Errorf("unsupported command driver: %s", cfg.CommandCfg.CommandDriver)
	}

	if cfg.RemoteCfg.Enabled {
		outputs = append(outputs, remote.NewLink(cfg.RemoteCfg))
	}
	return outputs, nil
}

func (a *App) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)
	log.Println("starting...")

	defer func() {
		log.Println("stopping...")
		if a.backlightPin != nil {
			err := a.backlightPin.Close()
			if err != nil {
				log.Printf("error: %s\n", err.Error())
			}
		}
	}()

	err := a.sampler.Init()
	if err != nil {
		return fmt.Errorf("error starting sampler: %w", err)
	}

	if a.poller != nil {
		err = a.poller.Init()
		if err != nil {
			return fmt.Errorf("error starting input: %w", err)
		}
	}

	err = a.buzzer.Init()
	if err != nil {
		return fmt.Errorf("error starting buzzer: %w", err)
	}

	err = a.calc.Init()
	if err != nil {
		return fmt.Errorf("error starting outputs: %w", err)
	}

	if a.sim != nil {
		a.sim.Init(groupCtx)
		group.Go(func() error {
			return a.sim.Start(groupCtx)
		})
	}

	group.Go(func() error {
		return a.sampler.Start(groupCtx)
	})

	if a.poller != nil {
		group.Go(func() error {
			return a.poller.Start(groupCtx)
		})
	}

	group.Go(func() error {
		return a.buzzer.Start(groupCtx)
	})

	group.Go(func() error {
		return a.calc.Start(groupCtx)
	})

	group.Go(func() error {
		return a.menu.Run(groupCtx)
	})

	//kill listener
	group.Go(func() error {
		signalChannel := make(chan os.Signal, 1)
		signal.Notify(signalChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(signalChannel)
		select {
		case sig := <-signalChannel:
			log.Printf("received signal: %s\n", sig)
			cancel()
			return fmt.Errorf("%w: %s", ErrSignal, sig)
		case <-groupCtx.Done():
			log.Println("closing signal goroutine")
			return groupCtx.Err()
		}
	})

	err = group.Wait()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, ErrSignal) {
			log.Println("context was cancelled")
			return nil
		} else {
			return fmt.Errorf("transmitter stopping due to error - %w", err)
		}
	}

	log.Println("shutting down")
	return nil
}
