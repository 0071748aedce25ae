package engine

import (
	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/param"
)

// GainStage applies a ramped linear gain set in dB. One ramp value per
// sample frame is applied to every channel.
type GainStage struct {
	gain param.Ramp
}

// NewGainStage returns a stage resting at gainDB.
func NewGainStage(gainDB float64) *GainStage {
	g := &GainStage{}
	g.gain.SetCurrentAndTarget(core.DBToLinear(gainDB))

	return g
}

// Reset sets the ramp time and snaps the gain to its target.
func (g *GainStage) Reset(sampleRate, rampSeconds float64) {
	g.gain.Reset(sampleRate, rampSeconds)
}

// SetGainDB ramps the linear gain towards 10^(db/20).
func (g *GainStage) SetGainDB(db float64) {
	g.gain.SetTarget(core.DBToLinear(db))
}

// Gain returns the current linear gain.
func (g *GainStage) Gain() float64 { return g.gain.Current() }

// Skip advances the ramp by n samples without processing audio.
func (g *GainStage) Skip(n int) { g.gain.Skip(n) }

// ProcessBlock scales b in place. A bypassed stage leaves the audio
// untouched and only advances the ramp.
func (g *GainStage) ProcessBlock(b *buffer.Block, bypass bool) {
	g.ProcessChannels(b, b.Channels(), bypass)
}

// ProcessChannels is ProcessBlock limited to channels [0, channels) of b;
// the other channels are left untouched.
func (g *GainStage) ProcessChannels(b *buffer.Block, channels int, bypass bool) {
	n := b.Len()
	if bypass {
		g.gain.Skip(n)
		return
	}

	channels = min(max(channels, 0), b.Channels())
	for i := range n {
		v := g.gain.Next()
		for ch := range channels {
			b.Channel(ch)[i] *= v
		}
	}
}
