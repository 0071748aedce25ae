package param

import "math"

// Ramp is a linear ramp generator. A new target restarts the ramp from the
// current value and reaches the target after the configured number of
// samples. Ramp never allocates and is not safe for concurrent use.
type Ramp struct {
	current   float64
	target    float64
	step      float64
	remaining int
	length    int
}

// NewRamp returns a ramp that rests at value.
func NewRamp(value float64) *Ramp {
	return &Ramp{current: value, target: value}
}

// Reset sets the ramp duration to rampSeconds at sampleRate and snaps the
// current value to the target.
func (r *Ramp) Reset(sampleRate, rampSeconds float64) {
	length := 0
	if sampleRate > 0 && rampSeconds > 0 {
		length = int(math.Floor(sampleRate * rampSeconds))
	}

	r.length = length
	r.SetCurrentAndTarget(r.target)
}

// SetCurrentAndTarget jumps to value without ramping.
func (r *Ramp) SetCurrentAndTarget(value float64) {
	r.current = value
	r.target = value
	r.step = 0
	r.remaining = 0
}

// SetTarget starts a ramp from the current value towards target. Setting the
// target that is already pending leaves the ramp untouched.
func (r *Ramp) SetTarget(target float64) {
	if target == r.target {
		return
	}

	if r.length <= 0 {
		r.SetCurrentAndTarget(target)
		return
	}

	r.target = target
	r.remaining = r.length
	r.step = (r.target - r.current) / float64(r.length)
}

// Next advances by one sample and returns the new value.
func (r *Ramp) Next() float64 {
	if r.remaining == 0 {
		return r.target
	}

	r.remaining--
	if r.remaining == 0 {
		r.current = r.target
	} else {
		r.current += r.step
	}

	return r.current
}

// Skip advances by n samples at once.
func (r *Ramp) Skip(n int) {
	if n <= 0 || r.remaining == 0 {
		return
	}

	if n >= r.remaining {
		r.current = r.target
		r.remaining = 0

		return
	}

	r.current += r.step * float64(n)
	r.remaining -= n
}

// Current returns the most recent value.
func (r *Ramp) Current() float64 { return r.current }

// Target returns the value the ramp is heading towards.
func (r *Ramp) Target() float64 { return r.target }

// IsSmoothing reports whether the ramp has not reached its target yet.
func (r *Ramp) IsSmoothing() bool { return r.remaining > 0 }

// Length returns the ramp duration in samples.
func (r *Ramp) Length() int { return r.length }
