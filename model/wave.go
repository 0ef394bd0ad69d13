package model

import "math"

const (
	SignalMin = -1.0
	SignalMax = 1.0
)

// PulseShape holds the tuning of the generated heartbeat.
type PulseShape struct {
	PhaseDeltaBase      float64
	PhaseDeltaLoadScale float64

	BaseAmplitude float64

	PulseLoadThreshold float64
	PulseIntervalTicks int // at PulseLoadThreshold
	PulseMinTicks      int // at full load
	PulsePeak          float64
	PulseDecay         float64
	PulseGain          float64

	LowLoadThreshold  float64
	LowLoadAmplitude  float64
	LowLoadPhaseScale float64
}

func DefaultPulseShape() PulseShape {
	return PulseShape{
		PhaseDeltaBase:      0.25,
		PhaseDeltaLoadScale: 0.7,
		BaseAmplitude:       0.7,
		PulseLoadThreshold:  0.7,
		PulseIntervalTicks:  18,
		PulseMinTicks:       9,
		PulsePeak:           1.0,
		PulseDecay:          0.65,
		PulseGain:           0.9,
		LowLoadThreshold:    0.2,
		LowLoadAmplitude:    0.4,
		LowLoadPhaseScale:   0.7,
	}
}

// phaseWrap is a whole number of periods so wrapping keeps the trace continuous.
var phaseWrap = 160 * 2 * math.Pi

// Point is one generated column of the trace.
type Point struct {
	Value      float64 // displacement in [SignalMin, SignalMax]
	Amplitude  float64 // envelope the value oscillates within
	PhaseDelta float64
}

type Generator struct {
	shape      PulseShape
	phase      float64
	pulse      float64
	sincePulse int
}

func NewGenerator(shape PulseShape) *Generator {
	return &Generator{shape: shape}
}

func (g *Generator) Phase() float64 { return g.phase }
func (g *Generator) Pulse() float64 { return g.pulse }

// PulseInterval is the minimum number of ticks between two beats at the given load.
func (g *Generator) PulseInterval(load LoadSample) int {
	s := g.shape
	f := load.Fraction()
	if f <= s.PulseLoadThreshold || s.PulseLoadThreshold >= 1 {
		return s.PulseIntervalTicks
	}
	k := (f - s.PulseLoadThreshold) / (1 - s.PulseLoadThreshold)
	span := float64(s.PulseIntervalTicks - s.PulseMinTicks)
	return s.PulseIntervalTicks - int(math.Round(k*span))
}

// Next advances the generator by one tick.
func (g *Generator) Next(load LoadSample) Point {
	s := g.shape
	f := load.Fraction()
	delta := s.PhaseDeltaBase + f*s.PhaseDeltaLoadScale

	g.sincePulse++
	if f > s.PulseLoadThreshold && g.sincePulse >= g.PulseInterval(load) {
		g.pulse = s.PulsePeak
		g.sincePulse = 0
	}
	g.pulse *= s.PulseDecay

	var p Point
	if f < s.LowLoadThreshold {
		p.Value = s.LowLoadAmplitude * math.Sin(g.phase*s.LowLoadPhaseScale)
		p.Amplitude = s.LowLoadAmplitude
	} else {
		p.Value = s.BaseAmplitude*math.Sin(g.phase) + g.pulse*s.PulseGain
		p.Amplitude = math.Min(SignalMax, s.BaseAmplitude+g.pulse*s.PulseGain)
	}
	p.Value = clampSignal(p.Value)
	p.PhaseDelta = delta

	g.phase += delta
	if g.phase >= phaseWrap {
		g.phase -= phaseWrap
	}
	return p
}

func clampSignal(v float64) float64 {
	return math.Max(SignalMin, math.Min(SignalMax, v))
}

// Row maps a displacement to a plot row, 0 being the top (SignalMax).
func Row(value float64, height int) int {
	if height <= 1 {
		return 0
	}
	normalized := (clampSignal(value) - SignalMin) / (SignalMax - SignalMin)
	y := int(math.Round((1 - normalized) * float64(height-1)))
	if y < 0 {
		return 0
	}
	if y > height-1 {
		return height - 1
	}
	return y
}
