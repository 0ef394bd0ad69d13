package monitor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/targodan/go-errors"

	"electrorustogram/model"
)

type constSampler struct {
	load model.LoadSample
	err  error
}

func (s constSampler) Sample() (model.LoadSample, error) {
	return s.load, s.err
}

func runEngine(t *testing.T, ctx context.Context, s Sampler, opts ...tea.ProgramOption) error {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts = append([]tea.ProgramOption{
		tea.WithOutput(&bytes.Buffer{}),
		tea.WithoutSignalHandler(),
	}, opts...)
	e := NewEngine(s, model.DefaultTraceConfig(), logger, opts...)

	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("render loop did not stop")
		return nil
	}
}

func TestEngineQuitsOnKeypress(t *testing.T) {
	err := runEngine(t, context.Background(), constSampler{load: 35}, tea.WithInput(strings.NewReader("q")))
	assert.NoError(t, err)
}

func TestEngineStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := runEngine(t, ctx, constSampler{load: 80}, tea.WithInput(nil))
	assert.NoError(t, err)
}

func TestEngineReportsSamplingFailure(t *testing.T) {
	failing := constSampler{err: &SamplingError{Source: "test", Err: fmt.Errorf("gone")}}

	err := runEngine(t, context.Background(), failing, tea.WithInput(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSampling))
	assert.False(t, errors.Is(err, ErrTerminal))
}

func TestTerminalError(t *testing.T) {
	err := &TerminalError{Err: fmt.Errorf("no tty")}
	assert.True(t, errors.Is(err, ErrTerminal))
	assert.Contains(t, err.Error(), "no tty")
}

func TestReadSystemInfo(t *testing.T) {
	info := ReadSystemInfo()
	if info.HasLoad {
		assert.GreaterOrEqual(t, info.Load1, 0.0)
	}
	if info.HasUptime {
		assert.Greater(t, info.Uptime, time.Duration(0))
	}
}
