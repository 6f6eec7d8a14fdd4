package menu

import (
	"context"
	"log"
	"time"

	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

const (
	KeyBeepLength  = 30 * time.Millisecond
	CalibDoneBeep  = 600 * time.Millisecond
	AlertToneOn    = 400 * time.Millisecond
	AlertToneOff   = 1600 * time.Millisecond
	AlertVolume    = 255
	autorepeatStep = 10 * time.Millisecond
)

type StoreIFace interface {
	LoadGlobal() (settings.GlobalSettings, bool, error)
	SaveGlobal(settings.GlobalSettings) error
	LoadModel(slot int) (settings.ModelSettings, error)
	SaveModel(slot int, model settings.ModelSettings) error
	ModelName(slot int) string
	ModelCount() int
}

// AnalogIFace is the sampler as seen by the screens. Channel values are in
// the oversampled domain, the battery in 10mV units.
type AnalogIFace interface {
	Wait(ctx context.Context) error
	Channel(index int) uint16
	Battery() uint16
	BatteryLow() bool
	SetTakesADC(takes bool)
	SetWantsBattery(wants bool)
}

type InputIFace interface {
	Pressed(mask input.Button) bool
	Held(mask input.Button) bool
	ResetAutorepeat()
	SetAutorepeat(interval time.Duration)
}

type DisplayIFace interface {
	Clear()
	FullOn()
	Chars(text string)
	Char(pos int, c byte)
	Seven(digit uint8)
	SevenBlank()
	Segment(sym display.Symbol, on bool)
	SegmentBlink(sym display.Symbol, blink bool)
	Menu(items display.MenuItem)
	MenuSegment(item display.MenuItem, on bool)
	SetBlink(region display.Region, mode display.Blink)
	CharNum3(value int)
	CharNum2(value int)
	CharNum2Label(value int, labels string)
	Update()
}

type BuzzerIFace interface {
	Beep(length time.Duration)
	On(on, off time.Duration, volume uint8)
	Off()
}

type BacklightIFace interface {
	SetDefault(seconds uint16)
	On()
}

// CalcIFace receives every settings change that affects the output signal.
type CalcIFace interface {
	SetGlobal(global settings.GlobalSettings)
	SetModel(model settings.ModelSettings)
	Wake()
}

type Devices struct {
	Store     StoreIFace
	Analog    AnalogIFace
	Input     InputIFace
	Display   DisplayIFace
	Buzzer    BuzzerIFace
	Backlight BacklightIFace
	Calc      CalcIFace
}

type Options struct {
	IntroDelay       time.Duration
	KeyTestDelay     time.Duration
	ForceCalibration bool
}

func DefaultOptions() Options {
	return Options{
		IntroDelay:   500 * time.Millisecond,
		KeyTestDelay: 300 * time.Millisecond,
	}
}

// Menu owns the global and active model settings and runs one screen at a time.
type Menu struct {
	opts Options

	store     StoreIFace
	analog    AnalogIFace
	input     InputIFace
	lcd       DisplayIFace
	buzzer    BuzzerIFace
	backlight BacklightIFace
	calc      CalcIFace

	global settings.GlobalSettings
	model  settings.ModelSettings

	alertSuspended  bool
	batteryLowShown bool

	// direction selects which end-point of a channel is shown
	direction    int
	shownBattery int
}

func NewMenu(opts Options, dev Devices) *Menu {
	return &Menu{
		opts:      opts,
		store:     dev.Store,
		analog:    dev.Analog,
		input:     dev.Input,
		lcd:       dev.Display,
		buzzer:    dev.Buzzer,
		backlight: dev.Backlight,
		calc:      dev.Calc,
		global:    settings.DefaultGlobal(),
		model:     settings.DefaultModel(),
		direction: settings.DirLeft,
	}
}

// Run loads the settings and keeps the top level screen running until ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	log.Println("starting menu")
	global, fresh, err := m.store.LoadGlobal()
	if err != nil {
		log.Printf("error: failed loading global settings, using defaults: %s\n", err.Error())
		global = settings.DefaultGlobal()
		fresh = true
	}
	m.global = global
	m.calc.SetGlobal(m.global)

	if fresh || m.opts.ForceCalibration {
		m.calibrate(ctx)
	}

	m.applyAutorepeat()
	m.backlight.SetDefault(m.global.BacklightTime)
	m.backlight.On()
	m.loadModel()

	m.loop(ctx)
	log.Printf("stopping menu: %s\n", ctx.Err())
	return ctx.Err()
}

func (m *Menu) Global() settings.GlobalSettings {
	return m.global
}

func (m *Menu) Model() settings.ModelSettings {
	return m.model
}

func (m *Menu) applyAutorepeat() {
	m.input.SetAutorepeat(time.Duration(m.global.Autorepeat) * autorepeatStep)
}

func (m *Menu) loadModel() {
	model, err := m.store.LoadModel(m.global.Model)
	if err != nil {
		log.Printf("error: failed loading model %d, using defaults: %s\n", m.global.Model, err.Error())
		model = settings.DefaultModel()
	}
	m.model = model
	m.calc.SetModel(m.model)
}

func (m *Menu) saveModel() {
	m.saveModelAs(m.global.Model)
}

func (m *Menu) saveModelAs(slot int) {
	err := m.store.SaveModel(slot, m.model)
	if err != nil {
		log.Printf("error: failed saving model %d: %s\n", slot, err.Error())
	}
	m.calc.SetModel(m.model)
}

func (m *Menu) saveGlobal() {
	err := m.store.SaveGlobal(m.global)
	if err != nil {
		log.Printf("error: failed saving global settings: %s\n", err.Error())
	}
	m.calc.SetGlobal(m.global)
}

func (m *Menu) keyBeep() {
	if m.global.KeyBeep {
		m.buzzer.Beep(KeyBeepLength)
	}
}

// rotation reports the step of a rotate event, big when the knob is turned fast.
func (m *Menu) rotation(big int) int {
	step := 1
	if m.input.Held(input.BtnRotAll) {
		step = big
	}
	if m.input.Pressed(input.BtnRotL) {
		return -step
	}
	if m.input.Pressed(input.BtnRotR) {
		return step
	}
	return 0
}

// changeValue applies a rotate event to a bounded value.
func (m *Menu) changeValue(value int, bounds settings.Bounds) int {
	return bounds.Step(value, m.rotation(5))
}

// wrap moves value by delta inside [1, n].
func wrap(value, delta, n int) int {
	value = (value - 1 + delta) % n
	if value < 0 {
		value += n
	}
	return value + 1
}
