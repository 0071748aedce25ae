package param

// Snapshot is a value copy of every control, taken once per block. Mix is in
// percent; gains are in dB and cutoffs in Hz.
type Snapshot struct {
	Drive        float64
	Mix          float64
	InputGainDB  float64
	OutputGainDB float64
	LowCutHz     float64
	HighCutHz    float64
	Mode         int

	InputGainBypass  bool
	DistortionBypass bool
	LowCutBypass     bool
	HighCutBypass    bool
	OutputGainBypass bool
	Enabled          bool
}

// DefaultSnapshot returns the snapshot of a freshly created Store.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Drive:        specs[IDDrive].Default,
		Mix:          specs[IDMix].Default,
		InputGainDB:  specs[IDInputGain].Default,
		OutputGainDB: specs[IDOutputGain].Default,
		LowCutHz:     specs[IDLowCut].Default,
		HighCutHz:    specs[IDHighCut].Default,
		Mode:         int(specs[IDMode].Default),
		Enabled:      true,
	}
}

// Fixed is a Source that always returns the same snapshot.
type Fixed Snapshot

// Snapshot returns the fixed snapshot.
func (f Fixed) Snapshot() Snapshot { return Snapshot(f) }
