package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := GainToDB(linear, -100)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("GainToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if got := GainToDB(0, -48); got != -48 {
		t.Fatalf("GainToDB(0) = %v, want floor -48", got)
	}
	if got := GainToDB(-1, -48); got != -48 {
		t.Fatalf("GainToDB(-1) = %v, want floor -48", got)
	}
	if got := GainToDB(math.NaN(), -48); got != -48 {
		t.Fatalf("GainToDB(NaN) = %v, want floor -48", got)
	}
	if got := GainToDB(1e-9, -48); got != -48 {
		t.Fatalf("GainToDB(1e-9) = %v, want floor -48", got)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 64, 8192} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{-8, 0, 3, 6000} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush to zero")
	}
	if FlushDenormals(0.25) != 0.25 {
		t.Fatal("expected normal value to pass through")
	}
}
