package beeper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(t *testing.T, tone *Tone, n int) []float32 {
	t.Helper()

	p := make([]byte, n*4+3)
	got, err := tone.Read(p)
	require.NoError(t, err)
	require.Equal(t, n*4, got, "only whole samples are written")

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out
}

func TestToneSilentWhenClosed(t *testing.T) {
	tone := NewTone(SampleRate, DefaultFrequency, DefaultVolume)
	for _, s := range samples(t, tone, 1000) {
		require.Equal(t, float32(0), s)
	}
}

func TestToneOpen(t *testing.T) {
	tone := NewTone(SampleRate, DefaultFrequency, DefaultVolume)
	tone.Gate(true)
	assert.True(t, tone.Open())

	// Skip the attack ramp.
	samples(t, tone, SampleRate/100)

	var peak float32
	crossings := 0
	prev := float32(0)
	for _, s := range samples(t, tone, SampleRate) {
		if s > peak {
			peak = s
		}
		if prev < 0 && s >= 0 {
			crossings++
		}
		prev = s
	}

	assert.InDelta(t, DefaultVolume, peak, 0.01)
	assert.InDelta(t, DefaultFrequency, crossings, 2)
}

func TestToneReleaseFadesOut(t *testing.T) {
	tone := NewTone(SampleRate, DefaultFrequency, DefaultVolume)
	tone.Gate(true)
	samples(t, tone, SampleRate/100)

	tone.Gate(false)
	assert.False(t, tone.Open())
	samples(t, tone, SampleRate/100)

	for _, s := range samples(t, tone, 100) {
		require.Equal(t, float32(0), s)
	}
}

func TestToneBounded(t *testing.T) {
	tone := NewTone(SampleRate, 1000, 1)
	tone.Gate(true)
	tone.SetFrequency(3000)

	for _, s := range samples(t, tone, 5000) {
		require.LessOrEqual(t, math.Abs(float64(s)), 1.0)
	}
}
