package spectrum

import (
	"testing"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/internal/testutil"
)

type ringSource struct {
	ring *buffer.Ring[[]float64]
}

func (s ringSource) CompleteBlocksAvailable() int { return s.ring.Available() }
func (s ringSource) Pull(dst *[]float64) bool     { return s.ring.Pull(dst) }

func TestPathProducerPoll(t *testing.T) {
	const size = 256

	ring, err := buffer.NewSliceRing[float64](8, size)
	if err != nil {
		t.Fatalf("NewSliceRing() error = %v", err)
	}

	p, err := NewPathProducer(ringSource{ring}, 44100, WithFFTSize(size))
	if err != nil {
		t.Fatalf("NewPathProducer() error = %v", err)
	}

	bounds := Bounds{Width: 640, Height: 200}

	if _, ok := p.Poll(bounds); ok {
		t.Fatal("Poll() with no blocks should report no path")
	}

	ring.Push(make([]float64, size))
	ring.Push(testutil.BinSine(20, size, 44100, 1, size))

	path, ok := p.Poll(bounds)
	if !ok {
		t.Fatal("Poll() should return a path")
	}

	if len(path) == 0 || len(path) > size/4+1 {
		t.Fatalf("len(path) = %d, want 1..%d", len(path), size/4+1)
	}

	// The newest path is the sine; its peak sits at bin 20 (index 9 after
	// skipping DC and taking every second bin).
	top := 0
	for i := range path {
		if path[i].Y < path[top].Y {
			top = i
		}
	}
	if top != 9 {
		t.Fatalf("highest point at index %d, want 9", top)
	}

	if ring.Available() != 0 || p.Analyzer().FramesAvailable() != 0 || p.Generator().PathsAvailable() != 0 {
		t.Fatal("Poll() should drain every queue")
	}

	if _, ok := p.Poll(bounds); ok {
		t.Fatal("second Poll() should report no new path")
	}
}

func TestPathProducerDrainsMoreBlocksThanRingCapacity(t *testing.T) {
	ring, _ := buffer.NewSliceRing[float64](40, 64)
	for i := 0; i < 40; i++ {
		ring.Push(testutil.Noise(int64(i), 1, 64))
	}

	p, err := NewPathProducer(ringSource{ring}, 48000, WithFFTSize(64), WithFrameCapacity(2))
	if err != nil {
		t.Fatalf("NewPathProducer() error = %v", err)
	}

	if _, ok := p.Poll(Bounds{Width: 1, Height: 1}); !ok {
		t.Fatal("Poll() should return a path")
	}

	if ring.Available() != 0 {
		t.Fatalf("ring still holds %d blocks", ring.Available())
	}
}

func TestNewPathProducerRequiresSource(t *testing.T) {
	if _, err := NewPathProducer(nil, 44100); err == nil {
		t.Fatal("expected error for nil source")
	}
}
