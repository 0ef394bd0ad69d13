package monitor

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"

	"electrorustogram/model"
	"electrorustogram/proc"
)

const (
	SourceAuto     = "auto"
	SourceGopsutil = "gopsutil"
	SourceProcStat = "procstat"
)

// Sources lists the accepted sampler names.
var Sources = []string{SourceAuto, SourceGopsutil, SourceProcStat}

// Sampler reads the current system-wide CPU utilization.
type Sampler interface {
	Sample() (model.LoadSample, error)
}

// GopsutilSampler uses gopsutil's non-blocking cpu.Percent, which reports
// utilization since the previous call.
type GopsutilSampler struct {
	percent func() ([]float64, error)
}

func NewGopsutilSampler() *GopsutilSampler {
	return &GopsutilSampler{percent: func() ([]float64, error) {
		return cpu.Percent(0, false)
	}}
}

func (s *GopsutilSampler) Sample() (model.LoadSample, error) {
	pct, err := s.percent()
	if err != nil {
		return 0, &SamplingError{Source: SourceGopsutil, Err: err}
	}
	if len(pct) == 0 {
		return 0, &SamplingError{Source: SourceGopsutil, Err: errors.New("no cpu percentage reported")}
	}
	return model.NewLoadSample(pct[0]), nil
}

// ProcStatSampler computes utilization from consecutive /proc/stat readings.
// The first call only records a baseline and reports zero load.
type ProcStatSampler struct {
	read func() (proc.CPUTimes, error)

	prev   proc.CPUTimes
	primed bool
	last   model.LoadSample
}

func NewProcStatSampler() *ProcStatSampler {
	return &ProcStatSampler{read: proc.ReadCPUTimes}
}

func (s *ProcStatSampler) Sample() (model.LoadSample, error) {
	cur, err := s.read()
	if err != nil {
		return 0, &SamplingError{Source: SourceProcStat, Err: err}
	}
	if !s.primed {
		s.prev = cur
		s.primed = true
		return 0, nil
	}
	busy, ok := cur.Busy(s.prev)
	if !ok {
		// ticked faster than the kernel counters
		return s.last, nil
	}
	s.prev = cur
	s.last = model.NewLoadSample(busy * 100)
	return s.last, nil
}

// HoldLastSampler makes transient read failures invisible to the render loop.
// A failure before the first good reading is returned as is; afterwards the
// last good value is repeated and the failure is only logged.
type HoldLastSampler struct {
	inner  Sampler
	logger logrus.FieldLogger

	last model.LoadSample
	good bool
	held int
}

func NewHoldLastSampler(inner Sampler, logger logrus.FieldLogger) *HoldLastSampler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HoldLastSampler{inner: inner, logger: logger}
}

func (s *HoldLastSampler) Sample() (model.LoadSample, error) {
	v, err := s.inner.Sample()
	if err != nil {
		if !s.good {
			return 0, err
		}
		s.held++
		s.logger.WithError(err).WithFields(logrus.Fields{
			"held":  s.held,
			"value": s.last.Percent(),
		}).Warn("Holding last cpu load sample.")
		return s.last, nil
	}
	s.last = v
	s.good = true
	s.held = 0
	return v, nil
}

// NewSampler builds the sampler for the named source, wrapped in the
// hold-last policy.
func NewSampler(source string, logger logrus.FieldLogger) (Sampler, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var inner Sampler
	switch strings.ToLower(source) {
	case SourceGopsutil:
		inner = NewGopsutilSampler()
	case SourceProcStat:
		inner = NewProcStatSampler()
	case SourceAuto, "":
		g := NewGopsutilSampler()
		if _, err := g.Sample(); err == nil || runtime.GOOS != "linux" {
			inner = g
			source = SourceGopsutil
		} else {
			logger.WithError(err).Info("gopsutil unavailable, falling back to /proc/stat.")
			inner = NewProcStatSampler()
			source = SourceProcStat
		}
	default:
		return nil, errors.Newf("unknown sampler source \"%s\", expected one of %s", source, strings.Join(Sources, ", "))
	}

	logger.WithField("source", source).Debug("CPU sampler selected.")
	return NewHoldLastSampler(inner, logger), nil
}
