package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"electrorustogram/model"
)

const (
	headerRows    = 1
	leftGutter    = 5
	gridRowStep   = 4
	gridColStep   = 6
	minPlotHeight = 4
	minPlotWidth  = 10

	statusTTL       = 2 * time.Second
	sysInfoInterval = time.Second
)

// Model holds TUI state
type Model struct {
	trace   *model.Trace
	sampler LoadSource
	keys    keyMap
	help    help.Model
	width   int
	height  int

	sysInfo     func() SystemInfo
	info        SystemInfo
	infoUpdated time.Time

	// Status messages
	statusText  string
	statusError bool
	statusUntil time.Time

	err      error
	quitting bool
}

type Option func(*Model)

// WithSystemInfo sets the provider for the load average and uptime shown
// in the header. It is polled about once a second.
func WithSystemInfo(fn func() SystemInfo) Option {
	return func(m *Model) {
		m.sysInfo = fn
	}
}

func NewModel(sampler LoadSource, trace *model.Trace, opts ...Option) Model {
	h := help.New()
	h.Styles.ShortKey = keybindStyle
	h.Styles.ShortDesc = keybindDescStyle
	h.Styles.ShortSeparator = keybindDescStyle
	h.Styles.FullKey = keybindStyle
	h.Styles.FullDesc = keybindDescStyle
	h.Styles.FullSeparator = keybindDescStyle

	m := Model{
		trace:   trace,
		sampler: sampler,
		keys:    defaultKeyMap(),
		help:    h,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.trace.FPS().Period())
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Err is the error that ended the loop, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Trace() *model.Trace {
	return m.trace
}

func (m Model) plotWidth() int {
	return m.width - leftGutter
}
