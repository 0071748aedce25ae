package spectrum

import "fmt"

// BlockSource is the consumer side of a sample accumulator.
type BlockSource interface {
	CompleteBlocksAvailable() int
	Pull(dst *[]float64) bool
}

// PathProducer drains one channel's accumulated blocks through an Analyzer
// and a PathGenerator. All of its methods run on the observer goroutine.
type PathProducer struct {
	source    BlockSource
	analyzer  *Analyzer
	generator *PathGenerator

	block []float64
	frame Frame
	path  Path
}

// NewPathProducer wires source to a new analyzer and path generator.
func NewPathProducer(source BlockSource, sampleRate float64, opts ...AnalyzerOption) (*PathProducer, error) {
	if source == nil {
		return nil, fmt.Errorf("path producer requires a block source")
	}

	a, err := NewAnalyzer(opts...)
	if err != nil {
		return nil, err
	}

	g, err := NewPathGenerator(a.FFTSize(), sampleRate, a.FloorDB(), a.frames.Capacity())
	if err != nil {
		return nil, err
	}

	return &PathProducer{
		source:    source,
		analyzer:  a,
		generator: g,
		block:     make([]float64, 0, a.FFTSize()),
		frame:     make(Frame, a.Bins()),
		path:      make(Path, 0, cap(g.scratch)),
	}, nil
}

// Analyzer returns the producer's analyzer.
func (p *PathProducer) Analyzer() *Analyzer { return p.analyzer }

// Generator returns the producer's path generator.
func (p *PathProducer) Generator() *PathGenerator { return p.generator }

// Poll drains every complete block and every resulting frame, then returns
// the newest path. ok is false when no new path was produced since the last
// poll. The returned path is reused by the next call.
func (p *PathProducer) Poll(bounds Bounds) (Path, bool) {
	ok := p.drain(bounds)

	for p.source.CompleteBlocksAvailable() > 0 {
		if !p.source.Pull(&p.block) {
			break
		}

		if _, err := p.analyzer.ProduceFrame(p.block); err != nil {
			continue
		}

		if p.drain(bounds) {
			ok = true
		}
	}

	return p.path, ok
}

func (p *PathProducer) drain(bounds Bounds) bool {
	for p.analyzer.FramesAvailable() > 0 {
		if !p.analyzer.PullFrame(&p.frame) {
			break
		}

		p.generator.Generate(bounds, p.frame)
	}

	ok := false
	for p.generator.PathsAvailable() > 0 {
		if !p.generator.PullPath(&p.path) {
			break
		}

		ok = true
	}

	return ok
}
