package main

import (
	"math"

	"github.com/cwbudde/algo-drive/dsp/buffer"
)

// tone is a phase-continuous sine oscillator.
type tone struct {
	phase     float64
	step      float64
	amplitude float64
}

func newTone(freq, sampleRate, amplitude float64) *tone {
	return &tone{step: 2 * math.Pi * freq / sampleRate, amplitude: amplitude}
}

// fill writes the next b.Len() samples into every channel of b.
func (t *tone) fill(b *buffer.Block) {
	n := b.Len()
	for i := range n {
		v := t.amplitude * math.Sin(t.phase)
		for ch := range b.Channels() {
			b.Channel(ch)[i] = v
		}

		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}
