package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/sirupsen/logrus"

	"electrorustogram/model"
	"electrorustogram/proc"
	"electrorustogram/ui"
)

// Engine owns the bubbletea program that runs the ECG view.
type Engine struct {
	program *tea.Program
	logger  logrus.FieldLogger
}

// NewEngine prepares the program. Extra options are appended to the
// defaults, so tests can swap input and output.
func NewEngine(sampler Sampler, cfg model.TraceConfig, logger logrus.FieldLogger, opts ...tea.ProgramOption) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tuiModel := ui.NewModel(sampler, model.NewTrace(cfg), ui.WithSystemInfo(ReadSystemInfo))
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	return &Engine{
		program: tea.NewProgram(tuiModel, opts...),
		logger:  logger,
	}
}

// Run blocks until the user quits, ctx is done or sampling fails. The
// terminal is restored before it returns.
func (e *Engine) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			e.logger.Debug("Context done, stopping render loop.")
			e.program.Quit()
		case <-done:
		}
	}()

	final, err := e.program.Run()
	if err != nil {
		return &TerminalError{Err: err}
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// Reconfigure pushes new thresholds into the running loop.
func (e *Engine) Reconfigure(th model.Thresholds, fpsStep int) {
	e.program.Send(ui.ConfigMsg{Thresholds: th, FPSStep: fpsStep})
}

// ReadSystemInfo collects the optional header fields, falling back to
// procfs when gopsutil cannot provide them.
func ReadSystemInfo() ui.SystemInfo {
	var info ui.SystemInfo
	if avg, err := load.Avg(); err == nil {
		info.Load1, info.HasLoad = avg.Load1, true
	} else if l1, _, _, err := proc.ReadLoadavg(); err == nil {
		info.Load1, info.HasLoad = l1, true
	}
	if secs, err := host.Uptime(); err == nil {
		info.Uptime, info.HasUptime = time.Duration(secs)*time.Second, true
	} else if up, err := proc.ReadUptime(); err == nil {
		info.Uptime, info.HasUptime = up, true
	}
	return info
}
