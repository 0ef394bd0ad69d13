package model

import "math"

// LoadSample is a CPU utilization reading in percent, always within [0, 100].
type LoadSample float64

const (
	MinLoad LoadSample = 0
	MaxLoad LoadSample = 100
)

func NewLoadSample(percent float64) LoadSample {
	switch {
	case math.IsNaN(percent):
		return MinLoad
	case percent < float64(MinLoad):
		return MinLoad
	case percent > float64(MaxLoad):
		return MaxLoad
	}
	return LoadSample(percent)
}

// Fraction returns the load scaled to [0, 1].
func (l LoadSample) Fraction() float64 {
	return float64(l) / float64(MaxLoad)
}

func (l LoadSample) Percent() float64 {
	return float64(l)
}
