package param

import (
	"math"
	"testing"
)

func TestRampReachesTargetAfterLength(t *testing.T) {
	r := NewRamp(0)
	r.Reset(1000, 0.01) // 10 samples

	if r.Length() != 10 {
		t.Fatalf("Length() = %d, want 10", r.Length())
	}

	r.SetTarget(1)
	for i := 1; i <= 10; i++ {
		got := r.Next()
		want := float64(i) / 10
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("step %d: got %v, want %v", i, got, want)
		}
	}

	if r.IsSmoothing() {
		t.Fatal("ramp should have finished")
	}
	if got := r.Next(); got != 1 {
		t.Fatalf("after ramp: got %v, want exactly 1", got)
	}
}

func TestRampRestartsFromCurrentValue(t *testing.T) {
	r := NewRamp(0)
	r.Reset(100, 0.04) // 4 samples
	r.SetTarget(4)
	r.Next()
	r.Next() // current = 2

	r.SetTarget(0)
	want := []float64{1.5, 1, 0.5, 0}
	for i, w := range want {
		if got := r.Next(); math.Abs(got-w) > 1e-12 {
			t.Fatalf("step %d: got %v, want %v", i, got, w)
		}
	}
}

func TestRampSameTargetDoesNotRestart(t *testing.T) {
	r := NewRamp(0)
	r.Reset(100, 0.04)
	r.SetTarget(1)
	r.Next()
	r.SetTarget(1)
	r.Next()
	r.Next()
	if got := r.Next(); got != 1 {
		t.Fatalf("got %v, want ramp to finish after 4 samples", got)
	}
}

func TestRampSkip(t *testing.T) {
	a := NewRamp(0)
	b := NewRamp(0)
	a.Reset(1000, 0.05)
	b.Reset(1000, 0.05)
	a.SetTarget(2)
	b.SetTarget(2)

	for range 17 {
		a.Next()
	}
	b.Skip(17)

	if math.Abs(a.Current()-b.Current()) > 1e-12 {
		t.Fatalf("Skip(17) = %v, want %v", b.Current(), a.Current())
	}

	b.Skip(1000)
	if b.Current() != 2 || b.IsSmoothing() {
		t.Fatalf("Skip past end: current=%v smoothing=%v", b.Current(), b.IsSmoothing())
	}
}

func TestRampWithoutLengthJumps(t *testing.T) {
	r := NewRamp(3)
	r.SetTarget(-1)
	if r.IsSmoothing() {
		t.Fatal("zero-length ramp should not smooth")
	}
	if got := r.Next(); got != -1 {
		t.Fatalf("got %v, want -1", got)
	}
}

func TestRampResetSnapsToTarget(t *testing.T) {
	r := NewRamp(0)
	r.Reset(1000, 0.05)
	r.SetTarget(1)
	r.Next()
	r.Reset(48000, 0.05)
	if r.Current() != 1 || r.IsSmoothing() {
		t.Fatalf("Reset should snap: current=%v smoothing=%v", r.Current(), r.IsSmoothing())
	}
	if r.Length() != 2400 {
		t.Fatalf("Length() = %d, want 2400", r.Length())
	}
}

func TestRampDeterministic(t *testing.T) {
	run := func() []float64 {
		r := NewRamp(0.25)
		r.Reset(44100, 0.05)
		r.SetTarget(0.75)
		out := make([]float64, 3000)
		for i := range out {
			if i == 1000 {
				r.SetTarget(-0.5)
			}
			out[i] = r.Next()
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Fatalf("index %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRampNextDoesNotAllocate(t *testing.T) {
	r := NewRamp(0)
	r.Reset(48000, 0.05)
	allocs := testing.AllocsPerRun(100, func() {
		r.SetTarget(r.Target() + 1)
		for range 64 {
			r.Next()
		}
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}
