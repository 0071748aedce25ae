package engine

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/biquad"
	"github.com/cwbudde/algo-drive/dsp/filter/design/pass"
)

const (
	// filterOrder gives each cut stage a 6 dB/octave slope.
	filterOrder = 1

	minCutoffHz      = 1.0
	maxCutoffHz      = 22000.0
	maxCutoffNyquist = 0.49
)

// FilterChain is a first-order Butterworth high-pass (low cut) followed by
// a first-order Butterworth low-pass (high cut), with independent state per
// channel.
// Coefficients are replaced, not interpolated, on every Update.
type FilterChain struct {
	sampleRate float64

	lowCut  []*biquad.Chain
	highCut []*biquad.Chain

	lowCoeffs  []biquad.Coefficients
	highCoeffs []biquad.Coefficients

	lowHz, highHz         float64
	lowBypass, highBypass bool
}

// NewFilterChain allocates per-channel filter state, fully open
// (1 Hz low cut, 22 kHz high cut, limited to the sample rate).
func NewFilterChain(channels int, sampleRate float64) (*FilterChain, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("filter chain channel count must be > 0: %d", channels)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("filter chain sample rate must be > 0: %f", sampleRate)
	}

	sections := pass.Sections(filterOrder)
	f := &FilterChain{
		sampleRate: sampleRate,
		lowCut:     make([]*biquad.Chain, channels),
		highCut:    make([]*biquad.Chain, channels),
		lowCoeffs:  make([]biquad.Coefficients, sections),
		highCoeffs: make([]biquad.Coefficients, sections),
	}

	identity := make([]biquad.Coefficients, sections)
	for i := range identity {
		identity[i] = biquad.Identity()
	}

	for ch := range channels {
		f.lowCut[ch] = biquad.NewChain(identity)
		f.highCut[ch] = biquad.NewChain(identity)
	}

	f.Update(minCutoffHz, maxCutoffHz)

	return f, nil
}

// Update recomputes both stages for the given cutoffs and swaps the new
// coefficients into every channel, keeping filter memory. Cutoffs are
// clamped to [1 Hz, 0.49·fs].
func (f *FilterChain) Update(lowHz, highHz float64) {
	f.lowHz = f.clampCutoff(lowHz)
	f.highHz = f.clampCutoff(highHz)

	low := pass.ButterworthHPInto(f.lowCoeffs, f.lowHz, filterOrder, f.sampleRate)
	high := pass.ButterworthLPInto(f.highCoeffs, f.highHz, filterOrder, f.sampleRate)

	for ch := range f.lowCut {
		f.lowCut[ch].UpdateCoefficients(low)
		f.highCut[ch].UpdateCoefficients(high)
	}
}

// SetBypass sets the per-stage bypass flags.
func (f *FilterChain) SetBypass(lowCut, highCut bool) {
	f.lowBypass = lowCut
	f.highBypass = highCut
}

// Cutoffs returns the clamped cutoffs of the last Update.
func (f *FilterChain) Cutoffs() (lowHz, highHz float64) { return f.lowHz, f.highHz }

// ProcessBlock filters the channels of b in place. Channels beyond the
// chain's channel count are left untouched. A bypassed stage neither
// changes the signal nor advances its memory.
func (f *FilterChain) ProcessBlock(b *buffer.Block) {
	channels := min(b.Channels(), len(f.lowCut))

	for ch := range channels {
		s := b.Channel(ch)
		if !f.lowBypass {
			f.lowCut[ch].ProcessBlock(s)
		}

		if !f.highBypass {
			f.highCut[ch].ProcessBlock(s)
		}
	}
}

// Response returns the combined magnitude in dB at freqHz of the stages
// that are not bypassed.
func (f *FilterChain) Response(freqHz float64) float64 {
	db := 0.0
	if !f.lowBypass {
		db += f.lowCut[0].MagnitudeDB(freqHz, f.sampleRate)
	}

	if !f.highBypass {
		db += f.highCut[0].MagnitudeDB(freqHz, f.sampleRate)
	}

	return db
}

// Reset clears the filter memory of every channel.
func (f *FilterChain) Reset() {
	for ch := range f.lowCut {
		f.lowCut[ch].Reset()
		f.highCut[ch].Reset()
	}
}

func (f *FilterChain) clampCutoff(hz float64) float64 {
	if !core.IsFinite(hz) {
		hz = minCutoffHz
	}

	return core.Clamp(hz, minCutoffHz, maxCutoffNyquist*f.sampleRate)
}
