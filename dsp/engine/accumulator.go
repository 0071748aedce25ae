package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-drive/dsp/buffer"
)

// Accumulator regroups one channel's samples into fixed-size blocks and
// queues each completed block. Update runs on the processing goroutine;
// CompleteBlocksAvailable and Pull run on the observer goroutine.
type Accumulator struct {
	block []float64
	fill  int

	ring    *buffer.Ring[[]float64]
	dropped atomic.Uint64
}

// NewAccumulator preallocates a block of blockSize samples and a queue of
// capacity completed blocks.
func NewAccumulator(blockSize, capacity int) (*Accumulator, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("accumulator block size must be > 0: %d", blockSize)
	}

	ring, err := buffer.NewSliceRing[float64](capacity, blockSize)
	if err != nil {
		return nil, fmt.Errorf("accumulator queue: %w", err)
	}

	return &Accumulator{block: make([]float64, blockSize), ring: ring}, nil
}

// Update appends samples. Every time the block fills it is queued and a new
// block starts; a full queue discards the completed block.
func (a *Accumulator) Update(samples []float64) {
	for len(samples) > 0 {
		n := copy(a.block[a.fill:], samples)
		a.fill += n
		samples = samples[n:]

		if a.fill < len(a.block) {
			return
		}

		if !a.ring.Push(a.block) {
			a.dropped.Add(1)
		}

		a.fill = 0
	}
}

// CompleteBlocksAvailable returns the number of queued blocks.
func (a *Accumulator) CompleteBlocksAvailable() int { return a.ring.Available() }

// Pull copies the oldest queued block into dst.
func (a *Accumulator) Pull(dst *[]float64) bool { return a.ring.Pull(dst) }

// BlockSize returns the number of samples per block.
func (a *Accumulator) BlockSize() int { return len(a.block) }

// Dropped returns how many completed blocks were discarded because the queue
// was full.
func (a *Accumulator) Dropped() uint64 { return a.dropped.Load() }

// Reset discards the partial block and every queued block. It must not run
// concurrently with Update or Pull.
func (a *Accumulator) Reset() {
	a.fill = 0
	a.ring.Reset()
	a.dropped.Store(0)
}
