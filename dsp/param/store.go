package param

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
)

// ErrUnknownControl is returned for names or IDs that do not identify a control.
var ErrUnknownControl = errors.New("unknown control")

// ID identifies a published control.
type ID int

const (
	IDDrive ID = iota
	IDMix
	IDInputGain
	IDOutputGain
	IDLowCut
	IDHighCut
	IDMode
	IDInputGainBypass
	IDDistortionBypass
	IDLowCutBypass
	IDHighCutBypass
	IDOutputGainBypass
	IDEnabled

	idCount
)

// ModeCount is the number of distortion modes the mode control selects from.
const ModeCount = 8

// Spec describes the range of a control. Step > 0 quantizes values to
// multiples of Step above Min.
type Spec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

var specs = [idCount]Spec{
	IDDrive:            {Name: "drive", Min: 0, Max: 20, Default: 0, Step: 0.5},
	IDMix:              {Name: "mix", Unit: "%", Min: 0, Max: 100, Default: 50, Step: 1},
	IDInputGain:        {Name: "input_gain", Unit: "dB", Min: -24, Max: 24, Default: 0, Step: 0.5},
	IDOutputGain:       {Name: "output_gain", Unit: "dB", Min: -24, Max: 24, Default: 0, Step: 0.5},
	IDLowCut:           {Name: "low_cut", Unit: "Hz", Min: 1, Max: 22000, Default: 1, Step: 1},
	IDHighCut:          {Name: "high_cut", Unit: "Hz", Min: 1, Max: 22000, Default: 22000, Step: 1},
	IDMode:             {Name: "mode", Min: 0, Max: ModeCount - 1, Default: 0, Step: 1},
	IDInputGainBypass:  {Name: "input_gain_bypass", Min: 0, Max: 1, Default: 0, Step: 1},
	IDDistortionBypass: {Name: "distortion_bypass", Min: 0, Max: 1, Default: 0, Step: 1},
	IDLowCutBypass:     {Name: "low_cut_bypass", Min: 0, Max: 1, Default: 0, Step: 1},
	IDHighCutBypass:    {Name: "high_cut_bypass", Min: 0, Max: 1, Default: 0, Step: 1},
	IDOutputGainBypass: {Name: "output_gain_bypass", Min: 0, Max: 1, Default: 0, Step: 1},
	IDEnabled:          {Name: "enabled", Min: 0, Max: 1, Default: 1, Step: 1},
}

var idsByName = func() map[string]ID {
	m := make(map[string]ID, idCount)
	for id := range idCount {
		m[specs[id].Name] = id
	}
	return m
}()

// Valid reports whether id names a control.
func (id ID) Valid() bool { return id >= 0 && id < idCount }

// String returns the control name.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return specs[id].Name
}

// Info returns the range description of id.
func Info(id ID) (Spec, bool) {
	if !id.Valid() {
		return Spec{}, false
	}
	return specs[id], true
}

// Lookup resolves a control name.
func Lookup(name string) (ID, bool) {
	id, ok := idsByName[name]
	return id, ok
}

// Names returns all control names in ID order.
func Names() []string {
	names := make([]string, idCount)
	for id := range idCount {
		names[id] = specs[id].Name
	}
	return names
}

// Source provides the parameter snapshot read at the start of each block.
type Source interface {
	Snapshot() Snapshot
}

// Store publishes control values for lock-free reads. Each control lives in
// its own atomic slot, so a snapshot may mix values from two concurrent
// writes to different controls but never tears a single value.
type Store struct {
	values [idCount]atomic.Uint64
}

// NewStore returns a store holding every control's default.
func NewStore() *Store {
	s := &Store{}
	for id := range idCount {
		s.values[id].Store(math.Float64bits(specs[id].Default))
	}
	return s
}

// Set publishes value for id, rounded to the nearest step and clamped to
// the control range.
func (s *Store) Set(id ID, value float64) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownControl, id)
	}

	if math.IsNaN(value) {
		return fmt.Errorf("control %s: value must not be NaN", id)
	}

	spec := specs[id]
	if spec.Step > 0 {
		value = spec.Min + math.Round((value-spec.Min)/spec.Step)*spec.Step
	}
	value = math.Min(math.Max(value, spec.Min), spec.Max)

	s.values[id].Store(math.Float64bits(value))

	return nil
}

// SetBool publishes a switch control.
func (s *Store) SetBool(id ID, on bool) error {
	if on {
		return s.Set(id, 1)
	}
	return s.Set(id, 0)
}

// SetByName publishes value for the named control.
func (s *Store) SetByName(name string, value float64) error {
	id, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return s.Set(id, value)
}

// Get returns the published value of id, or NaN for an unknown id.
func (s *Store) Get(id ID) float64 {
	if !id.Valid() {
		return math.NaN()
	}
	return math.Float64frombits(s.values[id].Load())
}

// Snapshot reads every control once.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Drive:            s.Get(IDDrive),
		Mix:              s.Get(IDMix),
		InputGainDB:      s.Get(IDInputGain),
		OutputGainDB:     s.Get(IDOutputGain),
		LowCutHz:         s.Get(IDLowCut),
		HighCutHz:        s.Get(IDHighCut),
		Mode:             int(s.Get(IDMode)),
		InputGainBypass:  s.Get(IDInputGainBypass) >= 0.5,
		DistortionBypass: s.Get(IDDistortionBypass) >= 0.5,
		LowCutBypass:     s.Get(IDLowCutBypass) >= 0.5,
		HighCutBypass:    s.Get(IDHighCutBypass) >= 0.5,
		OutputGainBypass: s.Get(IDOutputGainBypass) >= 0.5,
		Enabled:          s.Get(IDEnabled) >= 0.5,
	}
}

// Values returns the published state keyed by control name, for a
// persistence collaborator to serialize.
func (s *Store) Values() map[string]float64 {
	out := make(map[string]float64, idCount)
	for id := range idCount {
		out[specs[id].Name] = s.Get(id)
	}
	return out
}

// Restore publishes every known entry of values. Unknown names are reported
// together after all known entries have been applied.
func (s *Store) Restore(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := s.SetByName(name, values[name]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
