package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

// DefaultRefreshInterval is the observer tick period (60 Hz).
const DefaultRefreshInterval = time.Second / 60

// Reader is the read side of an Engine.
type Reader interface {
	Channels() int
	InputLevel(ch int) float64
	OutputLevel(ch int) float64
	CompleteBlocksAvailable(ch int) int
	PollSpectrumPath(ch int, bounds spectrum.Bounds) (spectrum.Path, bool)
}

// View is what an observer hands to its Renderer on every tick. Slices are
// indexed by channel and reused between ticks.
type View struct {
	InputDB  []float64
	OutputDB []float64

	// Paths holds the newest spectrum path of each channel; Fresh reports
	// whether it arrived during this tick.
	Paths []spectrum.Path
	Fresh []bool
}

// Renderer draws a View. It runs on the observer goroutine.
type Renderer interface {
	Render(v *View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(v *View)

// Render calls f(v).
func (f RendererFunc) Render(v *View) { f(v) }

// Observer polls an engine's read side on a fixed interval and renders the
// result. It only reads from the engine.
type Observer struct {
	reader   Reader
	renderer Renderer
	bounds   spectrum.Bounds
	interval time.Duration

	view View
}

// NewObserver returns an observer drawing spectrum paths into bounds.
// A non-positive interval selects DefaultRefreshInterval.
func NewObserver(r Reader, renderer Renderer, bounds spectrum.Bounds, interval time.Duration) (*Observer, error) {
	if r == nil || renderer == nil {
		return nil, fmt.Errorf("observer requires a reader and a renderer")
	}

	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	channels := r.Channels()

	return &Observer{
		reader:   r,
		renderer: renderer,
		bounds:   bounds,
		interval: interval,
		view: View{
			InputDB:  make([]float64, channels),
			OutputDB: make([]float64, channels),
			Paths:    make([]spectrum.Path, channels),
			Fresh:    make([]bool, channels),
		},
	}, nil
}

// SetBounds changes the rectangle paths are mapped into. It must be called
// from the observer goroutine.
func (o *Observer) SetBounds(b spectrum.Bounds) { o.bounds = b }

// Tick drains everything available and renders once.
func (o *Observer) Tick() {
	v := &o.view
	for ch := range v.InputDB {
		v.InputDB[ch] = o.reader.InputLevel(ch)
		v.OutputDB[ch] = o.reader.OutputLevel(ch)

		path, ok := o.reader.PollSpectrumPath(ch, o.bounds)
		v.Fresh[ch] = ok
		if ok {
			v.Paths[ch] = path
		}
	}

	o.renderer.Render(v)
}

// Run ticks until ctx is done and returns ctx.Err().
func (o *Observer) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			o.Tick()
		}
	}
}
