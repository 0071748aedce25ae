package buffer

import (
	"fmt"
	"sync/atomic"
)

// DefaultRingCapacity is the slot count used when callers have no reason to
// pick another.
const DefaultRingCapacity = 30

// cacheLinePad keeps the producer and consumer cursors on separate cache lines.
type cacheLinePad [64]byte

// Ring is a lock-free single-producer/single-consumer FIFO over preallocated
// slots. One goroutine may call Push while another calls Pull; concurrent
// calls on the same side are not supported.
//
// The cursors count items ever written and read. Only the producer stores the
// write cursor and only the consumer stores the read cursor, so each side sees
// a consistent view of the other through atomic loads.
type Ring[T any] struct {
	slots  []T
	assign func(dst *T, src T)

	_     cacheLinePad
	write atomic.Uint64
	_     cacheLinePad
	read  atomic.Uint64
	_     cacheLinePad
}

// NewRing returns a ring of capacity slots that copies items by value.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}

	return &Ring[T]{
		slots:  make([]T, capacity),
		assign: func(dst *T, src T) { *dst = src },
	}, nil
}

// NewSliceRing returns a ring whose slots are preallocated slices of the
// given length. Items are copied element-wise on both Push and Pull, so
// neither side ever aliases memory owned by the other. Pushing a slice no
// longer than length never allocates.
func NewSliceRing[E any](capacity, length int) (*Ring[[]E], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}

	if length < 0 {
		return nil, fmt.Errorf("ring slot length must be >= 0: %d", length)
	}

	slots := make([][]E, capacity)
	for i := range slots {
		slots[i] = make([]E, length)
	}

	return &Ring[[]E]{slots: slots, assign: copySlice[E]}, nil
}

// Push copies item into the next free slot. It returns false and drops the
// item when the ring is full.
func (r *Ring[T]) Push(item T) bool {
	w := r.write.Load()
	if w-r.read.Load() >= uint64(len(r.slots)) {
		return false
	}

	r.assign(&r.slots[w%uint64(len(r.slots))], item)
	r.write.Store(w + 1)

	return true
}

// Pull copies the oldest unread item into out. It returns false when the
// ring is empty.
func (r *Ring[T]) Pull(out *T) bool {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return false
	}

	r.assign(out, r.slots[rd%uint64(len(r.slots))])
	r.read.Store(rd + 1)

	return true
}

// Available returns the number of items waiting to be pulled.
func (r *Ring[T]) Available() int {
	rd := r.read.Load()
	return min(int(r.write.Load()-rd), len(r.slots))
}

// Free returns the number of items that can be pushed before the ring is full.
func (r *Ring[T]) Free() int {
	return len(r.slots) - r.Available()
}

// Capacity returns the fixed slot count.
func (r *Ring[T]) Capacity() int {
	return len(r.slots)
}

// Reset discards all queued items. It must not run concurrently with Push
// or Pull.
func (r *Ring[T]) Reset() {
	r.read.Store(0)
	r.write.Store(0)
}

func copySlice[E any](dst *[]E, src []E) {
	d := *dst
	if cap(d) < len(src) {
		d = make([]E, len(src))
	}

	d = d[:len(src)]
	copy(d, src)
	*dst = d
}
