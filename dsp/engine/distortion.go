package engine

import (
	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/param"
)

// DistortionStage applies the selected curve with ramped drive and dry/wet
// mix. Mode changes are immediate, so callers switch modes only between
// blocks.
type DistortionStage struct {
	mode  Mode
	drive param.Ramp
	mix   param.Ramp
}

// NewDistortionStage returns a stage in mode with drive and mix (percent)
// already at their targets. Mix is clamped to [0, 100].
func NewDistortionStage(mode Mode, drive, mixPercent float64) *DistortionStage {
	d := &DistortionStage{mode: mode}
	d.drive.SetCurrentAndTarget(drive)
	d.mix.SetCurrentAndTarget(mixFraction(mixPercent))

	return d
}

// Reset sets the ramp time and snaps drive and mix to their targets.
func (d *DistortionStage) Reset(sampleRate, rampSeconds float64) {
	d.drive.Reset(sampleRate, rampSeconds)
	d.mix.Reset(sampleRate, rampSeconds)
}

// SetMode selects the curve.
func (d *DistortionStage) SetMode(m Mode) { d.mode = m }

// Mode returns the selected curve.
func (d *DistortionStage) Mode() Mode { return d.mode }

// SetDrive ramps drive towards v.
func (d *DistortionStage) SetDrive(v float64) { d.drive.SetTarget(v) }

// SetMix ramps the wet proportion towards percent/100.
func (d *DistortionStage) SetMix(percent float64) {
	d.mix.SetTarget(mixFraction(percent))
}

// Drive returns the current drive.
func (d *DistortionStage) Drive() float64 { return d.drive.Current() }

// Mix returns the current wet proportion in [0, 1].
func (d *DistortionStage) Mix() float64 { return d.mix.Current() }

// Process advances the ramps by one sample and returns
// (1-mix)·x + mix·shape(x, drive). ModeNone returns x.
func (d *DistortionStage) Process(x float64) float64 {
	drive := d.drive.Next()
	mix := d.mix.Next()

	return d.blend(x, drive, mix)
}

// ProcessBlock processes every channel of b in place, advancing the ramps
// once per sample frame. A bypassed stage or ModeNone leaves the audio
// untouched and only advances the ramps.
func (d *DistortionStage) ProcessBlock(b *buffer.Block, bypass bool) {
	d.ProcessChannels(b, b.Channels(), bypass)
}

// ProcessChannels is ProcessBlock limited to channels [0, channels) of b;
// the other channels are left untouched.
func (d *DistortionStage) ProcessChannels(b *buffer.Block, channels int, bypass bool) {
	n := b.Len()
	if bypass || d.mode == ModeNone {
		d.Skip(n)
		return
	}

	channels = min(max(channels, 0), b.Channels())
	for i := range n {
		drive := d.drive.Next()
		mix := d.mix.Next()

		for ch := range channels {
			s := b.Channel(ch)
			s[i] = d.blend(s[i], drive, mix)
		}
	}
}

// Skip advances the ramps by n samples without processing audio.
func (d *DistortionStage) Skip(n int) {
	d.drive.Skip(n)
	d.mix.Skip(n)
}

func (d *DistortionStage) blend(x, drive, mix float64) float64 {
	if d.mode == ModeNone {
		return x
	}

	wet := d.mode.Shape(x, drive)
	if !core.IsFinite(wet) {
		wet = 0
	}

	return (1-mix)*x + mix*wet
}

func mixFraction(percent float64) float64 {
	return core.Clamp(percent, 0, 100) / 100
}
