package beeper

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

// Tone is an endless mono float32 little-endian sine wave which is
// silent while the gate is closed. Reads are safe concurrently with
// Gate and SetFrequency.
type Tone struct {
	mu         sync.Mutex
	gate       atomic.Bool
	sampleRate float64
	frequency  float64
	volume     float64
	phase      float64
	gain       float64
}

// NewTone creates a tone at the given frequency for the given sample rate.
func NewTone(sampleRate int, frequency, volume float64) *Tone {
	return &Tone{
		sampleRate: float64(sampleRate),
		frequency:  frequency,
		volume:     volume,
	}
}

// Gate opens or closes the tone.
func (t *Tone) Gate(open bool) {
	t.gate.Store(open)
}

// Open returns true while the gate is open.
func (t *Tone) Open() bool {
	return t.gate.Load()
}

// SetFrequency changes the pitch.
func (t *Tone) SetFrequency(frequency float64) {
	t.mu.Lock()
	t.frequency = frequency
	t.mu.Unlock()
}

// Frequency returns the pitch in herz.
func (t *Tone) Frequency() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frequency
}

// Read fills p with whole samples and never fails.
func (t *Tone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	target := 0.0
	if t.gate.Load() {
		target = t.volume
	}

	// The gain glides towards its target over roughly 5ms so gating does not click.
	step := t.volume / (t.sampleRate * 0.005)
	delta := 2 * math.Pi * t.frequency / t.sampleRate

	n := len(p) / 4
	for i := 0; i < n; i++ {
		switch {
		case t.gain < target:
			t.gain = math.Min(target, t.gain+step)
		case t.gain > target:
			t.gain = math.Max(target, t.gain-step)
		}

		sample := float32(math.Sin(t.phase) * t.gain)
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))

		t.phase += delta
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}

	return n * 4, nil
}
