package buffer

import "fmt"

// Block is a fixed channel count, variable length multi-channel sample
// buffer. All storage is allocated by NewBlock.
type Block struct {
	channels [][]float64
	length   int
}

// NewBlock returns a zeroed block of channels x capacity samples with
// length equal to capacity.
func NewBlock(channels, capacity int) (*Block, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("block channel count must be > 0: %d", channels)
	}

	if capacity < 0 {
		return nil, fmt.Errorf("block capacity must be >= 0: %d", capacity)
	}

	storage := make([]float64, channels*capacity)
	b := &Block{channels: make([][]float64, channels), length: capacity}

	for ch := range b.channels {
		b.channels[ch] = storage[ch*capacity : (ch+1)*capacity : (ch+1)*capacity]
	}

	return b, nil
}

// Channels returns the channel count.
func (b *Block) Channels() int { return len(b.channels) }

// Len returns the current number of samples per channel.
func (b *Block) Len() int { return b.length }

// Cap returns the maximum number of samples per channel.
func (b *Block) Cap() int {
	if len(b.channels) == 0 {
		return 0
	}
	return cap(b.channels[0])
}

// SetLen sets the per-channel length. It reports false and leaves the block
// unchanged when n is negative or exceeds the capacity.
func (b *Block) SetLen(n int) bool {
	if n < 0 || n > b.Cap() {
		return false
	}

	b.length = n

	return true
}

// Channel returns the samples of channel ch, limited to the current length.
func (b *Block) Channel(ch int) []float64 {
	return b.channels[ch][:b.length]
}

// Zero clears the current length of every channel.
func (b *Block) Zero() {
	for ch := range b.channels {
		clear(b.channels[ch][:b.length])
	}
}

// CopyFrom copies src (one slice per channel) into the block and sets the
// length to the shortest source channel, limited by the capacity. Missing
// source channels leave the corresponding block channels zeroed.
func (b *Block) CopyFrom(src [][]float64) int {
	n := b.Cap()
	for _, s := range src {
		n = min(n, len(s))
	}

	b.length = n
	for ch := range b.channels {
		if ch < len(src) {
			copy(b.channels[ch][:n], src[ch])
			continue
		}

		clear(b.channels[ch][:n])
	}

	return n
}

// ReadInterleaved de-interleaves frames from src into the block and sets the
// length to the number of whole frames read.
func (b *Block) ReadInterleaved(src []float32) int {
	nch := len(b.channels)
	n := min(len(src)/nch, b.Cap())

	b.length = n
	for i := range n {
		frame := src[i*nch : (i+1)*nch]
		for ch := range nch {
			b.channels[ch][i] = float64(frame[ch])
		}
	}

	return n
}

// WriteInterleaved interleaves the block into dst and returns the number of
// frames written.
func (b *Block) WriteInterleaved(dst []float32) int {
	nch := len(b.channels)
	n := min(len(dst)/nch, b.length)

	for i := range n {
		frame := dst[i*nch : (i+1)*nch]
		for ch := range nch {
			frame[ch] = float32(b.channels[ch][i])
		}
	}

	return n
}
