package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/display"
	"github.com/Speshl/gorrc_tx/internal/input"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// BlinkInterval is half a 2Hz blink period.
	BlinkInterval = 250 * time.Millisecond
	StickStep     = 16
	BatteryStep   = 5
)

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7CFC00"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	charsStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")).
			Border(lipgloss.NormalBorder()).Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Faint(true)
)

const help = "enter/E ok  bksp/B back  tab/N end  left/right rotate (shift = fast)\n" +
	"a/d steering  w/s throttle  j/k ch3  x center  +/- battery  1-8 trims  ctrl+c quit"

type frameMsg display.Frame

type blinkMsg struct{}

// Sim renders the display in the terminal and feeds keys and sticks back.
type Sim struct {
	keyboard *input.Keyboard
	sticks   *analog.Sim
	program  *tea.Program
}

func NewSim(keyboard *input.Keyboard, sticks *analog.Sim) *Sim {
	return &Sim{
		keyboard: keyboard,
		sticks:   sticks,
	}
}

// Render implements display.RendererIFace.
func (s *Sim) Render(frame display.Frame) {
	if s.program != nil {
		s.program.Send(frameMsg(frame))
	}
}

// Init creates the program so frames rendered before Start are not lost.
func (s *Sim) Init(ctx context.Context) {
	s.program = tea.NewProgram(model{sim: s}, tea.WithContext(ctx), tea.WithAltScreen())
}

// Start runs the terminal ui, quitting it ends the app.
func (s *Sim) Start(ctx context.Context) error {
	log.Println("starting simulator")
	if s.program == nil {
		s.Init(ctx)
	}
	_, err := s.program.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("simulator failed: %w", err)
	}
	log.Println("simulator quit")
	return context.Canceled
}

// HandleKey maps one key to a button event or a stick move.
func (s *Sim) HandleKey(key string) {
	switch key {
	case "a":
		s.sticks.Move(analog.Steering, -StickStep)
		return
	case "d":
		s.sticks.Move(analog.Steering, StickStep)
		return
	case "w":
		s.sticks.Move(analog.Throttle, -StickStep)
		return
	case "s":
		s.sticks.Move(analog.Throttle, StickStep)
		return
	case "j":
		s.sticks.Move(analog.Channel3, -StickStep)
		return
	case "k":
		s.sticks.Move(analog.Channel3, StickStep)
		return
	case "x":
		s.sticks.Center(analog.Steering)
		s.sticks.Center(analog.Throttle)
		return
	case "+":
		s.sticks.MoveBattery(BatteryStep)
		return
	case "-":
		s.sticks.MoveBattery(-BatteryStep)
		return
	}

	long := false
	if strings.HasPrefix(key, "shift+") {
		key = strings.TrimPrefix(key, "shift+")
		long = true
	} else if len(key) == 1 && unicode.IsUpper(rune(key[0])) {
		key = strings.ToLower(key)
		long = true
	}
	s.keyboard.Key(key, long)
}

type model struct {
	sim     *Sim
	frame   display.Frame
	phaseOn bool
}

func (m model) Init() tea.Cmd {
	return blink()
}

func blink() tea.Cmd {
	return tea.Tick(BlinkInterval, func(time.Time) tea.Msg {
		return blinkMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = display.Frame(msg)
	case blinkMsg:
		m.phaseOn = !m.phaseOn
		return m, blink()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.sim.HandleKey(msg.String())
	}
	return m, nil
}

func (m model) View() string {
	sticks, battery := m.sim.sticks.Snapshot()
	status := fmt.Sprintf("steer %4d  throttle %4d  ch3 %4d  battery %d.%02dV",
		sticks[analog.Steering], sticks[analog.Throttle], sticks[analog.Channel3], battery/100, battery%100)
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(View(m.frame.Visible(m.phaseOn))),
		status,
		helpStyle.Render(help),
	)
}

// View draws one visible frame.
func View(f display.Frame) string {
	menu := make([]string, 0, 8)
	for i := 7; i >= 0; i-- {
		item := display.MenuItem(1 << i)
		menu = append(menu, lit(item.String(), f.FullOn || f.Menu&item != 0))
	}

	symbols := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		sym := display.Symbol(1 << i)
		symbols = append(symbols, lit(sym.String(), f.FullOn || f.Symbols&sym != 0))
	}

	chars := string(f.Chars[:])
	digit := string(f.Digit)
	if f.FullOn {
		chars, digit = "888", "8"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(menu, " "),
		lipgloss.JoinHorizontal(lipgloss.Center, charsStyle.Render(digit), " ", charsStyle.Render(chars)),
		strings.Join(symbols, " "),
	)
}

func lit(name string, on bool) string {
	if on {
		return onStyle.Render(name)
	}
	return offStyle.Render(name)
}
