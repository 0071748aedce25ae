package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1 at quarter period", s[12])
	}
}

func TestBinSine(t *testing.T) {
	if f := BinFrequency(100, 8192, 44100); math.Abs(f-538.330078125) > 1e-9 {
		t.Fatalf("BinFrequency = %v", f)
	}

	s := BinSine(4, 16, 16, 1, 16)
	if math.Abs(s[1]-1) > 1e-12 {
		t.Fatalf("s[1] = %v, want 1", s[1])
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 1.0, 64)
	b := Noise(42, 1.0, 64)
	c := Noise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
		if math.Abs(a[i]) > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRMSAndPeak(t *testing.T) {
	if got := RMS(DC(-0.5, 8)); math.Abs(got-0.5) > 1e-15 {
		t.Fatalf("RMS(DC) = %v, want 0.5", got)
	}
	if got := RMS(Sine(100, 6400, 1, 6400)); math.Abs(got-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS(sine) = %v, want 1/sqrt2", got)
	}
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak = %v, want 0.7", got)
	}
	if RMS(nil) != 0 || Peak(nil) != 0 {
		t.Fatal("empty input should give 0")
	}
}
