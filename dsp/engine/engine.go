package engine

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/param"
	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

// ErrNilSource is returned by New without a parameter source.
var ErrNilSource = errors.New("engine: nil parameter source")

// Engine is the distortion signal path.
//
// Process is called from the real-time goroutine. InputLevel, OutputLevel,
// CompleteBlocksAvailable and PollSpectrumPath are called from one observer
// goroutine. Prepare and Reset must not overlap either of them.
type Engine struct {
	source param.Source
	cfg    config

	proc     core.ProcessorConfig
	prepared bool

	inputGain  *GainStage
	distortion *DistortionStage
	filters    *FilterChain
	outputGain *GainStage

	inputMeter  *Meter
	outputMeter *Meter

	accumulators []*Accumulator
	producers    []*spectrum.PathProducer
}

// New returns an engine that reads its controls from source. It must be
// prepared before processing.
func New(source param.Source, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.analysisBlock == 0 {
		cfg.analysisBlock = cfg.fftSize
	}

	return &Engine{source: source, cfg: cfg}, nil
}

// Prepare allocates every buffer for proc and initializes all stages from
// the current snapshot without ramping. Only mono and stereo layouts are
// accepted.
func (e *Engine) Prepare(proc core.ProcessorConfig) error {
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("engine prepare: %w", err)
	}

	snap := e.source.Snapshot()

	filters, err := NewFilterChain(proc.Channels, proc.SampleRate)
	if err != nil {
		return fmt.Errorf("engine prepare: %w", err)
	}

	accumulators := make([]*Accumulator, proc.Channels)
	producers := make([]*spectrum.PathProducer, proc.Channels)

	for ch := range proc.Channels {
		acc, err := NewAccumulator(e.cfg.analysisBlock, e.cfg.ringCapacity)
		if err != nil {
			return fmt.Errorf("engine prepare channel %d: %w", ch, err)
		}

		p, err := spectrum.NewPathProducer(acc, proc.SampleRate,
			spectrum.WithFFTSize(e.cfg.fftSize),
			spectrum.WithFloorDB(e.cfg.spectrumFloor),
			spectrum.WithFrameCapacity(e.cfg.ringCapacity),
		)
		if err != nil {
			return fmt.Errorf("engine prepare channel %d: %w", ch, err)
		}

		accumulators[ch] = acc
		producers[ch] = p
	}

	e.inputGain = NewGainStage(snap.InputGainDB)
	e.distortion = NewDistortionStage(modeFromIndex(snap.Mode), snap.Drive, snap.Mix)
	e.outputGain = NewGainStage(snap.OutputGainDB)

	e.inputGain.Reset(proc.SampleRate, e.cfg.rampSeconds)
	e.distortion.Reset(proc.SampleRate, e.cfg.driveRamp)
	e.outputGain.Reset(proc.SampleRate, e.cfg.rampSeconds)

	filters.Update(snap.LowCutHz, snap.HighCutHz)
	e.filters = filters

	e.inputMeter = NewMeter(proc.Channels, e.cfg.meterFloor)
	e.outputMeter = NewMeter(proc.Channels, e.cfg.meterFloor)

	e.accumulators = accumulators
	e.producers = producers
	e.proc = proc
	e.prepared = true

	return nil
}

// Config returns the configuration of the last successful Prepare.
func (e *Engine) Config() core.ProcessorConfig { return e.proc }

// Channels returns the prepared channel count.
func (e *Engine) Channels() int { return len(e.accumulators) }

// Process transforms b in place: input gain, input meter, distortion,
// low cut, high cut, output gain, output meter, then every channel is fed to
// its spectrum accumulator. With the master switch off the block is left
// alone entirely: audio, meters and accumulators keep their state and only
// the ramps advance.
//
// Process does nothing before Prepare. Channels beyond the prepared count
// are left untouched and samples beyond the prepared block size are not
// expected.
func (e *Engine) Process(b *buffer.Block) {
	if !e.prepared || b == nil || b.Len() == 0 {
		return
	}

	snap := e.source.Snapshot()
	channels := min(b.Channels(), len(e.accumulators))
	n := b.Len()

	e.inputGain.SetGainDB(snap.InputGainDB)
	e.distortion.SetMode(modeFromIndex(snap.Mode))
	e.distortion.SetDrive(snap.Drive)
	e.distortion.SetMix(snap.Mix)
	e.outputGain.SetGainDB(snap.OutputGainDB)

	if !snap.Enabled {
		e.inputGain.Skip(n)
		e.distortion.Skip(n)
		e.outputGain.Skip(n)

		return
	}

	e.inputGain.ProcessChannels(b, channels, snap.InputGainBypass)

	for ch := range channels {
		e.inputMeter.Update(ch, b.Channel(ch))
	}

	e.distortion.ProcessChannels(b, channels, snap.DistortionBypass)

	e.filters.Update(snap.LowCutHz, snap.HighCutHz)
	e.filters.SetBypass(snap.LowCutBypass, snap.HighCutBypass)
	e.filters.ProcessBlock(b)

	e.outputGain.ProcessChannels(b, channels, snap.OutputGainBypass)

	for ch := range channels {
		s := b.Channel(ch)
		e.outputMeter.Update(ch, s)
		e.accumulators[ch].Update(s)
	}
}

// InputLevel returns the RMS level in dB of ch after input gain in the last
// processed block.
func (e *Engine) InputLevel(ch int) float64 {
	if !e.prepared {
		return e.cfg.meterFloor
	}

	return e.inputMeter.Level(ch)
}

// OutputLevel returns the RMS level in dB of ch after the whole chain in the
// last block.
func (e *Engine) OutputLevel(ch int) float64 {
	if !e.prepared {
		return e.cfg.meterFloor
	}

	return e.outputMeter.Level(ch)
}

// CompleteBlocksAvailable returns how many analysis blocks of ch are queued.
func (e *Engine) CompleteBlocksAvailable(ch int) int {
	if ch < 0 || ch >= len(e.accumulators) {
		return 0
	}

	return e.accumulators[ch].CompleteBlocksAvailable()
}

// Dropped returns how many analysis blocks of ch were discarded because the
// observer fell behind.
func (e *Engine) Dropped(ch int) uint64 {
	if ch < 0 || ch >= len(e.accumulators) {
		return 0
	}

	return e.accumulators[ch].Dropped()
}

// PollSpectrumPath analyzes every queued block of ch and returns the newest
// path mapped into bounds. ok is false when nothing new arrived. The path is
// reused by the next poll of the same channel.
func (e *Engine) PollSpectrumPath(ch int, bounds spectrum.Bounds) (spectrum.Path, bool) {
	if ch < 0 || ch >= len(e.producers) {
		return nil, false
	}

	return e.producers[ch].Poll(bounds)
}

// Reset clears filter memory, meters and queued analysis data, and snaps
// all ramps to their targets.
func (e *Engine) Reset() {
	if !e.prepared {
		return
	}

	e.inputGain.Reset(e.proc.SampleRate, e.cfg.rampSeconds)
	e.distortion.Reset(e.proc.SampleRate, e.cfg.driveRamp)
	e.outputGain.Reset(e.proc.SampleRate, e.cfg.rampSeconds)
	e.filters.Reset()
	e.inputMeter.Reset()
	e.outputMeter.Reset()

	for ch := range e.accumulators {
		e.accumulators[ch].Reset()
		e.producers[ch].Analyzer().Reset()
		e.producers[ch].Generator().Reset()
	}
}
