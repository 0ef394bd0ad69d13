package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case sysInfoMsg:
		m.info = SystemInfo(msg)
		return m, nil

	case ConfigMsg:
		m.trace.Reconfigure(msg.Thresholds, msg.FPSStep)
		return m, m.showStatus(fmt.Sprintf("Config reloaded (warn %.0f%%, crit %.0f%%)",
			msg.Thresholds.Warn, msg.Thresholds.Crit), false)

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		m.statusUntil = time.Now().Add(statusTTL)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Faster):
		prev := m.trace.FPS()
		if fps := m.trace.Faster(); fps == prev {
			return m, m.showStatus(fmt.Sprintf("Already at %d fps", fps), true)
		}

	case key.Matches(msg, m.keys.Slower):
		prev := m.trace.FPS()
		if fps := m.trace.Slower(); fps == prev {
			return m, m.showStatus(fmt.Sprintf("Already at %d fps", fps), true)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleTick runs one frame: sample, advance the trace and schedule the next
// tick at the current rate. A sampling error ends the loop.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	load, err := m.sampler.Sample()
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if w := m.plotWidth(); w > 0 && m.height > headerRows+1 {
		m.trace.Advance(load, w)
	}

	if m.statusText != "" && now.After(m.statusUntil) {
		m.statusText = ""
		m.statusError = false
	}

	next := tickCmd(m.trace.FPS().Period())
	if m.sysInfo != nil && now.Sub(m.infoUpdated) >= sysInfoInterval {
		m.infoUpdated = now
		return m, tea.Batch(next, fetchSysInfo(m.sysInfo))
	}
	return m, next
}

// fetchSysInfo reads the header fields off the update loop.
func fetchSysInfo(read func() SystemInfo) tea.Cmd {
	return func() tea.Msg {
		return sysInfoMsg(read())
	}
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
