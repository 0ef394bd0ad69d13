package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrorustogram/model"
)

type stubSampler struct {
	loads []model.LoadSample
	err   error
	calls int
}

func (s *stubSampler) Sample() (model.LoadSample, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	if len(s.loads) == 0 {
		return 0, nil
	}
	l := s.loads[0]
	if len(s.loads) > 1 {
		s.loads = s.loads[1:]
	}
	return l, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func newTestModel(t *testing.T, s LoadSource, width, height int, opts ...Option) Model {
	t.Helper()
	m := NewModel(s, model.NewTrace(model.DefaultTraceConfig()), opts...)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tickMsg(time.Now()))
		require.NotNil(t, cmd, "every frame schedules the next one")
	}
	return m
}

// applySysInfo runs cmd and feeds any system info it produces back into m.
// Tick messages are dropped.
func applySysInfo(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	cmds := []tea.Cmd{cmd}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		cmds = batch
	}
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if msg, ok := c().(sysInfoMsg); ok {
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func TestQuitKeys(t *testing.T) {
	for name, msg := range map[string]tea.KeyMsg{
		"q":      runes("q"),
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	} {
		t.Run(name, func(t *testing.T) {
			m := newTestModel(t, &stubSampler{}, 80, 24)
			m, cmd := update(t, m, msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
			assert.NoError(t, m.Err())
		})
	}
}

func TestFPSKeys(t *testing.T) {
	m := newTestModel(t, &stubSampler{}, 80, 24)
	assert.Equal(t, model.FPS(30), m.Trace().FPS())

	var cmd tea.Cmd
	for i := 0; i < 7; i++ {
		m, cmd = update(t, m, runes("-"))
	}
	assert.Equal(t, model.FPS(10), m.Trace().FPS())
	require.NotNil(t, cmd, "pressing at the limit reports it")
	assert.Equal(t, statusMsg{text: "Already at 10 fps", isError: true}, cmd())

	m, _ = update(t, m, runes("+"))
	m, _ = update(t, m, runes("="))
	assert.Equal(t, model.FPS(20), m.Trace().FPS())
	m, _ = update(t, m, runes("_"))
	assert.Equal(t, model.FPS(15), m.Trace().FPS())

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, runes("+"))
		assert.LessOrEqual(t, int(m.Trace().FPS()), int(model.FPSMax))
	}
	assert.Equal(t, model.FPSMax, m.Trace().FPS())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &stubSampler{}, 80, 24)
	m = tick(t, m, 1)
	short := lipgloss.Height(m.View())

	m, _ = update(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Equal(t, short, lipgloss.Height(m.View()), "full help shrinks the plot, not the screen")

	m, _ = update(t, m, runes("?"))
	assert.False(t, m.help.ShowAll)
}

func TestTickFollowsLoad(t *testing.T) {
	s := &stubSampler{loads: []model.LoadSample{10, 10, 90, 90}}
	m := newTestModel(t, s, 80, 24)

	var bands []model.ColorBand
	var amps []float64
	for i := 0; i < 4; i++ {
		m = tick(t, m, 1)
		bands = append(bands, m.Trace().Band())
		amps = append(amps, m.Trace().LastPoint().Amplitude)
	}

	assert.Equal(t, []model.ColorBand{model.Green, model.Green, model.Red, model.Red}, bands)
	assert.Greater(t, amps[2], amps[1])
	assert.Len(t, m.Trace().Samples(), 80-leftGutter)
	assert.Equal(t, 4, s.calls)
}

func TestTickWithoutWindowOnlySamples(t *testing.T) {
	s := &stubSampler{loads: []model.LoadSample{50}}
	m := NewModel(s, model.NewTrace(model.DefaultTraceConfig()))
	m = tick(t, m, 3)
	assert.Equal(t, 3, s.calls)
	assert.Zero(t, m.Trace().Ticks())
	assert.Empty(t, m.View())
}

func TestSamplingErrorEndsLoop(t *testing.T) {
	failure := fmt.Errorf("counter unreadable")
	m := newTestModel(t, &stubSampler{err: failure}, 80, 24)

	m, cmd := update(t, m, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Same(t, failure, m.Err())
}

func TestConfigMsgReclassifies(t *testing.T) {
	m := newTestModel(t, &stubSampler{loads: []model.LoadSample{60}}, 80, 24)
	m = tick(t, m, 1)
	require.Equal(t, model.Yellow, m.Trace().Band())

	m, cmd := update(t, m, ConfigMsg{Thresholds: model.Thresholds{Warn: 70, Crit: 90}, FPSStep: 10})
	assert.Equal(t, model.Green, m.Trace().Band())
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "Config reloaded")

	m, _ = update(t, m, runes("+"))
	assert.Equal(t, model.FPS(40), m.Trace().FPS())
}

func TestStatusExpires(t *testing.T) {
	m := newTestModel(t, &stubSampler{}, 80, 24)
	m, _ = update(t, m, statusMsg{text: "hello"})
	assert.Contains(t, m.View(), "hello")

	m, _ = update(t, m, tickMsg(time.Now().Add(statusTTL+time.Second)))
	assert.NotContains(t, m.View(), "hello")
}

func TestViewLayout(t *testing.T) {
	info := SystemInfo{Load1: 0.52, HasLoad: true, Uptime: time.Hour + time.Minute, HasUptime: true}
	s := &stubSampler{loads: []model.LoadSample{90}}
	m := newTestModel(t, s, 120, 24, WithSystemInfo(func() SystemInfo { return info }))
	m, cmd := update(t, m, tickMsg(time.Now()))
	m = applySysInfo(t, m, cmd)
	m = tick(t, m, 9)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 24)

	assert.Contains(t, lines[0], "CPU ECG")
	assert.Contains(t, lines[0], "load:  90.0%")
	assert.Contains(t, lines[0], "fps: 30")
	assert.Contains(t, lines[0], "avg: 0.52")
	assert.Contains(t, lines[0], "up: 1h01m")

	assert.True(t, strings.HasPrefix(lines[1], " 1.0|"))
	assert.True(t, strings.HasPrefix(lines[22], "-1.0|"))
	assert.Contains(t, view, "*")
	assert.Contains(t, lines[23], "quit")
}

func TestSystemInfoReadOutsideUpdate(t *testing.T) {
	reads := 0
	read := func() SystemInfo {
		reads++
		return SystemInfo{Load1: 1.5, HasLoad: true}
	}
	m := newTestModel(t, &stubSampler{}, 120, 24, WithSystemInfo(read))

	now := time.Now()
	m, cmd := update(t, m, tickMsg(now))
	assert.Zero(t, reads, "Update must not block on system calls")
	assert.False(t, m.info.HasLoad)

	m = applySysInfo(t, m, cmd)
	assert.Equal(t, 1, reads)
	assert.Contains(t, m.View(), "avg: 1.50")

	// refreshed at most once per interval
	m, cmd = update(t, m, tickMsg(now.Add(sysInfoInterval/2)))
	m = applySysInfo(t, m, cmd)
	assert.Equal(t, 1, reads)

	m, cmd = update(t, m, tickMsg(now.Add(sysInfoInterval)))
	applySysInfo(t, m, cmd)
	assert.Equal(t, 2, reads)
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t, &stubSampler{}, 12, 24)
	m = tick(t, m, 1)
	assert.Contains(t, m.View(), "terminal too small")
	assert.Equal(t, 24, lipgloss.Height(m.View()))
}

func TestFormatUptime(t *testing.T) {
	for d, want := range map[time.Duration]string{
		0:                           "00m00s",
		75 * time.Second:            "01m15s",
		3*time.Hour + 4*time.Minute: "3h04m",
		50 * time.Hour:              "2d02h",
		-time.Second:                "00m00s",
	} {
		assert.Equal(t, want, FormatUptime(d))
	}
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab  ", padToWidth("ab", 4))
	assert.Equal(t, "abc", padToWidth("abcdef", 3))
	assert.Equal(t, "", padToWidth("abc", 0))
}

func TestPrintSample(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	info := SystemInfo{Load1: 0.52, HasLoad: true}
	require.NoError(t, PrintSample(&buf, 42, model.Thresholds{Warn: 40, Crit: 80}, info))
	assert.Equal(t, "cpu  42.0% yellow  avg 0.52\n", buf.String())
}
