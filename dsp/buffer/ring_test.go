package buffer

import (
	"sync"
	"testing"
)

func TestNewRingRejectsInvalidCapacity(t *testing.T) {
	if _, err := NewRing[int](0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := NewSliceRing[float64](-1, 8); err == nil {
		t.Fatal("expected error for negative capacity")
	}
	if _, err := NewSliceRing[float64](4, -1); err == nil {
		t.Fatal("expected error for negative slot length")
	}
}

func TestRingFIFO(t *testing.T) {
	r, err := NewRing[int](DefaultRingCapacity)
	if err != nil {
		t.Fatalf("NewRing() error = %v", err)
	}

	for i := range DefaultRingCapacity {
		if !r.Push(i) {
			t.Fatalf("Push(%d) failed before capacity", i)
		}
	}

	for i := range DefaultRingCapacity {
		var got int
		if !r.Pull(&got) {
			t.Fatalf("Pull %d failed", i)
		}
		if got != i {
			t.Fatalf("Pull %d = %d, want %d", i, got, i)
		}
	}

	var v int
	if r.Pull(&v) {
		t.Fatal("Pull on empty ring should fail")
	}
}

func TestRingFullDropsNewest(t *testing.T) {
	r, _ := NewRing[int](3)
	for i := range 3 {
		r.Push(i)
	}

	if r.Push(99) {
		t.Fatal("Push on full ring should fail")
	}
	if r.Available() != 3 || r.Free() != 0 {
		t.Fatalf("Available=%d Free=%d, want 3/0", r.Available(), r.Free())
	}

	for i := range 3 {
		var got int
		r.Pull(&got)
		if got != i {
			t.Fatalf("queued item %d corrupted: got %d", i, got)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	r, _ := NewRing[int](4)
	next := 0
	want := 0

	for round := range 50 {
		for range round%4 + 1 {
			if r.Push(next) {
				next++
			}
		}
		for range round % 3 {
			var got int
			if !r.Pull(&got) {
				break
			}
			if got != want {
				t.Fatalf("round %d: got %d, want %d", round, got, want)
			}
			want++
		}
		if r.Available() > r.Capacity() {
			t.Fatalf("Available %d exceeds capacity %d", r.Available(), r.Capacity())
		}
	}
}

func TestSliceRingCopiesPayload(t *testing.T) {
	r, _ := NewSliceRing[float64](2, 4)
	src := []float64{1, 2, 3, 4}
	r.Push(src)
	src[0] = 100

	out := make([]float64, 4)
	if !r.Pull(&out) {
		t.Fatal("Pull failed")
	}
	if out[0] != 1 {
		t.Fatalf("slot aliased producer memory: got %v", out)
	}

	r.Push([]float64{5, 6, 7, 8})
	var grown []float64
	r.Pull(&grown)
	if len(grown) != 4 || grown[0] != 5 {
		t.Fatalf("Pull into nil slice = %v", grown)
	}
}

func TestSliceRingPushDoesNotAllocate(t *testing.T) {
	r, _ := NewSliceRing[float64](2, 512)
	src := make([]float64, 512)
	dst := make([]float64, 512)

	allocs := testing.AllocsPerRun(100, func() {
		r.Push(src)
		r.Pull(&dst)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestRingReset(t *testing.T) {
	r, _ := NewRing[int](2)
	r.Push(1)
	r.Reset()
	if r.Available() != 0 {
		t.Fatalf("Available after Reset = %d", r.Available())
	}
}

func TestRingConcurrentProducerConsumer(t *testing.T) {
	const total = 20000

	r, _ := NewSliceRing[int](8, 2)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if r.Push([]int{i, -i}) {
				i++
			}
		}
	}()

	item := make([]int, 2)
	for want := 0; want < total; {
		if !r.Pull(&item) {
			continue
		}
		if item[0] != want || item[1] != -want {
			t.Fatalf("got %v, want [%d %d]", item, want, -want)
		}
		want++
	}

	wg.Wait()
}
