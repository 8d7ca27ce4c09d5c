//go:build !tinygo

package hal

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keycalc/internal/buildinfo"
)

const (
	tuiTickEvery = 10 * time.Millisecond
	tuiLogLines  = 6
)

var (
	tuiTitle = lipgloss.NewStyle().Bold(true)
	tuiLCD   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10200a")).
			Background(lipgloss.Color("#7fa327")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	tuiLEDOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f03020")).Bold(true)
	tuiLEDOff = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tuiLog    = lipgloss.NewStyle().Faint(true)
	tuiNote   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type tuiKeyMap struct {
	Digits key.Binding
	Ops    key.Binding
	Equal  key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func newTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Digits: key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digit")),
		Ops:    key.NewBinding(key.WithKeys("+", "-", "*", "/"), key.WithHelp("+-*/", "operator")),
		Equal:  key.NewBinding(key.WithKeys("=", "enter"), key.WithHelp("enter", "equals")),
		Clear:  key.NewBinding(key.WithKeys("c", "C", "esc", "backspace", "delete"), key.WithHelp("c/esc", "clear")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digits, k.Ops, k.Equal, k.Clear, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type tuiTickMsg time.Time

func tuiTick() tea.Cmd {
	return tea.Tick(tuiTickEvery, func(t time.Time) tea.Msg { return tuiTickMsg(t) })
}

type tuiModel struct {
	h    *hostHAL
	q    *tapQueue
	step func() error
	keys tuiKeyMap
	help help.Model
	note string
	err  error
}

// RunTerminal runs the firmware inside a terminal UI. Every key typed becomes one
// keypad press; the LCD, the LED and the latest log lines are redrawn as they
// change. It blocks until the user quits.
func RunTerminal(newApp func(HAL) func() error, sim SimConfig) error {
	h := newHostHAL(sim, io.Discard)
	m := newTUIModel(h, newApp(h))

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tuiModel); ok {
		return fm.err
	}
	return nil
}

func newTUIModel(h *hostHAL, step func() error) tuiModel {
	return tuiModel{
		h:    h,
		q:    newTapQueue(h.matrix, h.sim),
		step: step,
		keys: newTUIKeyMap(),
		help: help.New(),
	}
}

func (m tuiModel) Init() tea.Cmd { return tuiTick() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var r rune
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Equal):
			r = '='
		case key.Matches(msg, m.keys.Clear):
			r = 'C'
		case len(msg.Runes) == 1:
			r = msg.Runes[0]
		}
		if r == 0 {
			return m, nil
		}
		m.note = ""
		if err := m.q.push(r); err != nil {
			m.note = err.Error()
		}
		return m, nil

	case tuiTickMsg:
		if m.step != nil {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		if err := m.q.pump(); err != nil {
			m.note = err.Error()
		}
		return m, tuiTick()
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	led := tuiLEDOff.Render("●")
	if m.h.led.lit() {
		led = tuiLEDOn.Render("●")
	}
	b.WriteString(tuiTitle.Render(buildinfo.Banner()) + "  " + led + "\n")

	lines, _ := m.h.lcd.snapshot()
	b.WriteString(tuiLCD.Render(strings.Join(lines, "\n")) + "\n")

	if m.note != "" {
		b.WriteString(tuiNote.Render(m.note) + "\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()) + "\n\n")

	for _, line := range m.h.logger.tail(tuiLogLines) {
		b.WriteString(tuiLog.Render(line) + "\n")
	}
	if m.err != nil {
		b.WriteString(tuiNote.Render(m.err.Error()) + "\n")
	}
	return b.String()
}
