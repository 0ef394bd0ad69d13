package daemon

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"electrorustogram/model"
	"electrorustogram/ui"
)

// DefaultCooldown is the minimum time between two alerts for the same band.
const DefaultCooldown = 60 * time.Second

// LoadSource is anything that can report the current CPU load.
type LoadSource interface {
	Sample() (model.LoadSample, error)
}

// Daemon samples the CPU load without a terminal and logs band changes.
type Daemon struct {
	sampler  LoadSource
	logger   logrus.FieldLogger
	interval time.Duration
	cooldown time.Duration
	out      io.Writer
	sysInfo  func() ui.SystemInfo

	mu         sync.Mutex
	thresholds model.Thresholds

	band       model.ColorBand
	seen       bool
	lastAlerts map[model.ColorBand]time.Time
}

type Option func(*Daemon)

// WithOutput makes the daemon print one line per sample to w.
func WithOutput(w io.Writer, sysInfo func() ui.SystemInfo) Option {
	return func(d *Daemon) {
		d.out = w
		d.sysInfo = sysInfo
	}
}

func WithCooldown(c time.Duration) Option {
	return func(d *Daemon) {
		d.cooldown = c
	}
}

func New(sampler LoadSource, th model.Thresholds, interval time.Duration, logger logrus.FieldLogger, opts ...Option) *Daemon {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	d := &Daemon{
		sampler:    sampler,
		logger:     logger,
		interval:   interval,
		cooldown:   DefaultCooldown,
		thresholds: th,
		lastAlerts: make(map[model.ColorBand]time.Time),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetThresholds swaps the thresholds used from the next sample on.
func (d *Daemon) SetThresholds(th model.Thresholds) {
	d.mu.Lock()
	d.thresholds = th
	d.mu.Unlock()
	d.logger.WithFields(logrus.Fields{
		"warn": th.Warn,
		"crit": th.Crit,
	}).Info("Thresholds updated.")
}

func (d *Daemon) Thresholds() model.Thresholds {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.thresholds
}

// Run samples every interval until ctx is done. A sampling error stops it.
func (d *Daemon) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			if err := d.step(now); err != nil {
				return err
			}
		}
	}
}

func (d *Daemon) step(now time.Time) error {
	load, err := d.sampler.Sample()
	if err != nil {
		return err
	}
	th := d.Thresholds()
	band := th.Classify(load)

	if d.out != nil {
		var info ui.SystemInfo
		if d.sysInfo != nil {
			info = d.sysInfo()
		}
		if err := ui.PrintSample(d.out, load, th, info); err != nil {
			return err
		}
	}

	d.checkAlerts(now, load, band)
	return nil
}

func (d *Daemon) checkAlerts(now time.Time, load model.LoadSample, band model.ColorBand) {
	prev, seen := d.band, d.seen
	d.band, d.seen = band, true
	if seen && prev == band {
		return
	}

	entry := d.logger.WithFields(logrus.Fields{
		"load": load.Percent(),
		"band": band.String(),
	})
	if band == model.Green {
		if seen {
			entry.Info("CPU load back to normal.")
		}
		return
	}

	if t, ok := d.lastAlerts[band]; ok && now.Sub(t) < d.cooldown {
		return
	}
	d.lastAlerts[band] = now
	if band == model.Red {
		entry.Error("CPU load critical.")
	} else {
		entry.Warn("CPU load elevated.")
	}
}
