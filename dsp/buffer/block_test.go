package buffer

import "testing"

func TestNewBlock(t *testing.T) {
	b, err := NewBlock(2, 8)
	if err != nil {
		t.Fatalf("NewBlock() error = %v", err)
	}
	if b.Channels() != 2 || b.Len() != 8 || b.Cap() != 8 {
		t.Fatalf("channels=%d len=%d cap=%d", b.Channels(), b.Len(), b.Cap())
	}

	if _, err := NewBlock(0, 8); err == nil {
		t.Fatal("expected error for zero channels")
	}
	if _, err := NewBlock(2, -1); err == nil {
		t.Fatal("expected error for negative capacity")
	}
}

func TestBlockChannelsDoNotOverlap(t *testing.T) {
	b, _ := NewBlock(2, 4)
	left := b.Channel(0)
	left = append(left[:4], 42) // must not spill into the right channel
	_ = left

	for i, v := range b.Channel(1) {
		if v != 0 {
			t.Fatalf("right[%d] = %v, want 0", i, v)
		}
	}
}

func TestBlockSetLen(t *testing.T) {
	b, _ := NewBlock(1, 16)
	if !b.SetLen(5) || len(b.Channel(0)) != 5 {
		t.Fatal("SetLen(5) failed")
	}
	if b.SetLen(17) || b.SetLen(-1) {
		t.Fatal("SetLen outside capacity should fail")
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d after failed SetLen, want 5", b.Len())
	}
}

func TestBlockCopyFrom(t *testing.T) {
	b, _ := NewBlock(2, 4)
	n := b.CopyFrom([][]float64{{1, 2, 3, 4, 5}, {6, 7, 8}})
	if n != 3 || b.Len() != 3 {
		t.Fatalf("CopyFrom = %d, len %d, want 3", n, b.Len())
	}
	if b.Channel(1)[2] != 8 || b.Channel(0)[0] != 1 {
		t.Fatalf("unexpected contents %v %v", b.Channel(0), b.Channel(1))
	}

	b.Channel(1)[0] = 9
	b.CopyFrom([][]float64{{1, 1}})
	if b.Channel(1)[0] != 0 {
		t.Fatal("missing source channel should be zeroed")
	}
}

func TestBlockInterleaveRoundTrip(t *testing.T) {
	b, _ := NewBlock(2, 4)
	src := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.5}

	if n := b.ReadInterleaved(src); n != 3 {
		t.Fatalf("ReadInterleaved = %d, want 3", n)
	}
	if b.Channel(0)[2] != float64(float32(0.3)) || b.Channel(1)[1] != float64(float32(-0.2)) {
		t.Fatalf("unexpected de-interleave %v %v", b.Channel(0), b.Channel(1))
	}

	dst := make([]float32, 6)
	if n := b.WriteInterleaved(dst); n != 3 {
		t.Fatalf("WriteInterleaved = %d, want 3", n)
	}
	for i := range dst {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestBlockZero(t *testing.T) {
	b, _ := NewBlock(2, 3)
	b.CopyFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	b.Zero()
	for ch := range 2 {
		for _, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatal("Zero left data behind")
			}
		}
	}
}
