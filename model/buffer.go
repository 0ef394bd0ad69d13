package model

// WaveformBuffer is a sliding window over the most recent displacements.
// It is backed by a ring so pushes at capacity never shift memory.
type WaveformBuffer struct {
	data  []float64
	start int
	size  int
}

func NewWaveformBuffer(capacity int) *WaveformBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &WaveformBuffer{data: make([]float64, capacity)}
}

func (b *WaveformBuffer) Len() int { return b.size }
func (b *WaveformBuffer) Cap() int { return len(b.data) }

// Push appends v, evicting the oldest value when the buffer is full.
func (b *WaveformBuffer) Push(v float64) {
	if len(b.data) == 0 {
		return
	}
	if b.size < len(b.data) {
		b.data[(b.start+b.size)%len(b.data)] = v
		b.size++
		return
	}
	b.data[b.start] = v
	b.start = (b.start + 1) % len(b.data)
}

// Last returns the newest value.
func (b *WaveformBuffer) Last() (float64, bool) {
	if b.size == 0 {
		return 0, false
	}
	return b.data[(b.start+b.size-1)%len(b.data)], true
}

// Values returns a copy of the window, oldest first.
func (b *WaveformBuffer) Values() []float64 {
	out := make([]float64, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.data[(b.start+i)%len(b.data)]
	}
	return out
}

// Seed replaces the content with capacity copies of v.
func (b *WaveformBuffer) Seed(capacity int, v float64) {
	if capacity < 0 {
		capacity = 0
	}
	b.data = make([]float64, capacity)
	for i := range b.data {
		b.data[i] = v
	}
	b.start = 0
	b.size = capacity
}

// Resize changes the capacity. Growing pads the newest end with fill,
// shrinking drops the oldest values.
func (b *WaveformBuffer) Resize(capacity int, fill float64) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity == len(b.data) {
		return
	}
	values := b.Values()
	if len(values) > capacity {
		values = values[len(values)-capacity:]
	}
	data := make([]float64, capacity)
	n := copy(data, values)
	for i := n; i < capacity; i++ {
		data[i] = fill
	}
	b.data = data
	b.start = 0
	b.size = capacity
}
