package model

// Trace is the whole mutable state of the ECG view. One Advance call is one
// tick of the render loop, so it can be driven without a terminal.
type Trace struct {
	fps        FPS
	fpsStep    int
	thresholds Thresholds
	gen        *Generator
	buf        *WaveformBuffer

	seeded bool
	load   LoadSample
	band   ColorBand
	last   Point
	ticks  uint64
}

type TraceConfig struct {
	FPS        FPS
	FPSStep    int
	Thresholds Thresholds
	Shape      PulseShape
}

func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		FPS:        FPSDefault,
		FPSStep:    DefaultFPSStep,
		Thresholds: DefaultThresholds(),
		Shape:      DefaultPulseShape(),
	}
}

func NewTrace(cfg TraceConfig) *Trace {
	if cfg.FPSStep <= 0 {
		cfg.FPSStep = DefaultFPSStep
	}
	return &Trace{
		fps:        ClampFPS(int(cfg.FPS)),
		fpsStep:    cfg.FPSStep,
		thresholds: cfg.Thresholds,
		gen:        NewGenerator(cfg.Shape),
		buf:        NewWaveformBuffer(0),
	}
}

// Advance consumes one load sample and updates the window to width columns.
func (t *Trace) Advance(load LoadSample, width int) Point {
	p := t.gen.Next(load)
	if !t.seeded {
		t.buf.Seed(width, p.Value)
		t.seeded = true
	} else {
		fill, ok := t.buf.Last()
		if !ok {
			fill = p.Value
		}
		t.buf.Resize(width, fill)
		t.buf.Push(p.Value)
	}
	t.load = load
	t.band = t.thresholds.Classify(load)
	t.last = p
	t.ticks++
	return p
}

func (t *Trace) Faster() FPS {
	t.fps = t.fps.Faster(t.fpsStep)
	return t.fps
}

func (t *Trace) Slower() FPS {
	t.fps = t.fps.Slower(t.fpsStep)
	return t.fps
}

// Reconfigure applies new thresholds and step without touching the waveform.
func (t *Trace) Reconfigure(th Thresholds, step int) {
	t.thresholds = th
	if step > 0 {
		t.fpsStep = step
	}
	t.band = th.Classify(t.load)
}

func (t *Trace) FPS() FPS               { return t.fps }
func (t *Trace) Thresholds() Thresholds { return t.thresholds }
func (t *Trace) Load() LoadSample       { return t.load }
func (t *Trace) Band() ColorBand        { return t.band }
func (t *Trace) LastPoint() Point       { return t.last }
func (t *Trace) Phase() float64         { return t.gen.Phase() }
func (t *Trace) Pulse() float64         { return t.gen.Pulse() }
func (t *Trace) Ticks() uint64          { return t.ticks }
func (t *Trace) Samples() []float64     { return t.buf.Values() }
