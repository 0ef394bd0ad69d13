package model

import "fmt"

type ColorBand int

const (
	Green ColorBand = iota
	Yellow
	Red
)

func (b ColorBand) String() string {
	switch b {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	}
	return fmt.Sprintf("band(%d)", int(b))
}

const (
	DefaultWarnThreshold = 50.0
	DefaultCritThreshold = 75.0
)

// Thresholds are the percent cutoffs between bands. Loads below Warn are
// green, loads below Crit are yellow, everything else is red.
type Thresholds struct {
	Warn float64
	Crit float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Warn: DefaultWarnThreshold, Crit: DefaultCritThreshold}
}

func (t Thresholds) Classify(load LoadSample) ColorBand {
	p := load.Percent()
	if p < t.Warn {
		return Green
	}
	if p < t.Crit {
		return Yellow
	}
	return Red
}
