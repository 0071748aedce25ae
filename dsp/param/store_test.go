package param

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestNewStoreMatchesDefaultSnapshot(t *testing.T) {
	got := NewStore().Snapshot()
	if got != DefaultSnapshot() {
		t.Fatalf("Snapshot() = %#v, want %#v", got, DefaultSnapshot())
	}
}

func TestStoreSetClampsAndRounds(t *testing.T) {
	s := NewStore()

	tests := []struct {
		id    ID
		value float64
		want  float64
	}{
		{id: IDDrive, value: 25, want: 20},
		{id: IDDrive, value: 7.3, want: 7.5},
		{id: IDMix, value: -3, want: 0},
		{id: IDMix, value: 33.4, want: 33},
		{id: IDInputGain, value: -6.2, want: -6},
		{id: IDLowCut, value: 0, want: 1},
		{id: IDHighCut, value: 30000, want: 22000},
		{id: IDMode, value: 2.6, want: 3},
		{id: IDMode, value: 99, want: ModeCount - 1},
		{id: IDEnabled, value: 0.2, want: 0},
	}

	for _, tt := range tests {
		if err := s.Set(tt.id, tt.value); err != nil {
			t.Fatalf("Set(%s, %v) error = %v", tt.id, tt.value, err)
		}
		if got := s.Get(tt.id); got != tt.want {
			t.Fatalf("Get(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestStoreRejectsInvalidInput(t *testing.T) {
	s := NewStore()

	if err := s.Set(ID(99), 1); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("Set(unknown) error = %v, want ErrUnknownControl", err)
	}
	if err := s.SetByName("wobble", 1); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("SetByName(unknown) error = %v, want ErrUnknownControl", err)
	}
	if err := s.Set(IDDrive, math.NaN()); err == nil {
		t.Fatal("expected error for NaN")
	}
	if !math.IsNaN(s.Get(ID(-1))) {
		t.Fatal("Get(unknown) should be NaN")
	}
}

func TestStoreSnapshotReflectsWrites(t *testing.T) {
	s := NewStore()
	_ = s.Set(IDDrive, 7.5)
	_ = s.SetByName("high_cut", 8000)
	_ = s.SetBool(IDLowCutBypass, true)
	_ = s.SetBool(IDEnabled, false)
	_ = s.Set(IDMode, 6)

	snap := s.Snapshot()
	if snap.Drive != 7.5 || snap.HighCutHz != 8000 || snap.Mode != 6 {
		t.Fatalf("unexpected snapshot values: %#v", snap)
	}
	if !snap.LowCutBypass || snap.Enabled {
		t.Fatalf("unexpected switch values: %#v", snap)
	}
}

func TestStoreValuesRestoreRoundTrip(t *testing.T) {
	a := NewStore()
	_ = a.Set(IDInputGain, -6)
	_ = a.Set(IDMix, 40)
	_ = a.SetBool(IDHighCutBypass, true)

	b := NewStore()
	if err := b.Restore(a.Values()); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if a.Snapshot() != b.Snapshot() {
		t.Fatalf("restored snapshot %#v, want %#v", b.Snapshot(), a.Snapshot())
	}
}

func TestStoreRestoreReportsUnknownNames(t *testing.T) {
	s := NewStore()
	err := s.Restore(map[string]float64{"drive": 2, "legacy_knob": 1})
	if !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("Restore() error = %v, want ErrUnknownControl", err)
	}
	if s.Get(IDDrive) != 2 {
		t.Fatal("known entries should still be applied")
	}
}

func TestLookupAndNames(t *testing.T) {
	names := Names()
	if len(names) != int(idCount) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), idCount)
	}
	for i, name := range names {
		id, ok := Lookup(name)
		if !ok || id != ID(i) {
			t.Fatalf("Lookup(%q) = %v, %v", name, id, ok)
		}
		if id.String() != name {
			t.Fatalf("String() = %q, want %q", id.String(), name)
		}
	}
	if _, ok := Info(idCount); ok {
		t.Fatal("Info(idCount) should fail")
	}
}

func TestStoreConcurrentReadersSeeWholeValues(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 10000 {
			if i%2 == 0 {
				_ = s.Set(IDLowCut, 100)
			} else {
				_ = s.Set(IDLowCut, 5000)
			}
		}
	}()

	for range 10000 {
		v := s.Snapshot().LowCutHz
		if v != 20 && v != 100 && v != 5000 {
			t.Fatalf("torn read: %v", v)
		}
	}

	wg.Wait()
}

func TestDefaultsFollowControlLayout(t *testing.T) {
	snap := DefaultSnapshot()

	if snap.Drive != 0 || snap.Mix != 50 || snap.Mode != 0 {
		t.Fatalf("drive/mix/mode defaults = %v/%v/%v, want 0/50/0", snap.Drive, snap.Mix, snap.Mode)
	}
	if snap.LowCutHz != 1 || snap.HighCutHz != 22000 {
		t.Fatalf("cutoff defaults = %v/%v, want 1/22000", snap.LowCutHz, snap.HighCutHz)
	}
	if !snap.Enabled {
		t.Fatal("engine should be enabled by default")
	}

	drive, _ := Info(IDDrive)
	if drive.Max != 20 || drive.Step != 0.5 {
		t.Fatalf("drive range = %+v", drive)
	}
}

func TestFixedSource(t *testing.T) {
	snap := DefaultSnapshot()
	snap.Drive = 3
	var src Source = Fixed(snap)
	if src.Snapshot() != snap {
		t.Fatal("Fixed should return its snapshot")
	}
}
