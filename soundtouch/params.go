// SPDX-License-Identifier: EPL-2.0

package soundtouch

import (
	"fmt"
	"math"
	"sync/atomic"
)

const (
	// MinFactor and MaxFactor bound every virtual rate, tempo and pitch
	// factor, and the effective rate and tempo they combine into.
	MinFactor = 0.05
	MaxFactor = 20.0
)

// Order is the sequence in which the coordinator runs its stages.
type Order int

const (
	// TransposeFirst resamples before stretching; used when the effective
	// rate is at most 1 so the stretcher works on the longer signal.
	TransposeFirst Order = iota
	// StretchFirst stretches before resampling; used when the effective rate
	// exceeds 1 so the stretcher works on the longer signal.
	StretchFirst
)

func (o Order) String() string {
	if o == StretchFirst {
		return "stretch-first"
	}
	return "transpose-first"
}

// Params is an immutable snapshot of the user-facing controls. Rate, Tempo
// and Pitch are independent multipliers; 1 means unchanged.
type Params struct {
	Rate  float64
	Tempo float64
	Pitch float64
}

// DefaultParams leaves the signal untouched.
func DefaultParams() Params {
	return Params{Rate: 1, Tempo: 1, Pitch: 1}
}

// Effective is the resolved pair of stage settings for a Params snapshot.
type Effective struct {
	Rate  float64
	Tempo float64
}

// Order reports which stage runs first for these settings.
func (e Effective) Order() Order {
	if e.Rate > 1 {
		return StretchFirst
	}
	return TransposeFirst
}

// Effective combines the virtual controls: pitch raises the resampling rate
// and lowers the stretch tempo by the same factor, so duration is governed
// by Tempo and Rate alone.
func (p Params) Effective() Effective {
	return Effective{
		Rate:  p.Rate * p.Pitch,
		Tempo: p.Tempo / p.Pitch,
	}
}

// PitchSemitones returns Pitch expressed in semitones.
func (p Params) PitchSemitones() float64 {
	return 12 * math.Log2(p.Pitch)
}

// Validate checks every factor is finite and within [MinFactor, MaxFactor].
// The effective rate and tempo must stay in the same range, which keeps
// stage buffers bounded when pitch pulls against rate or tempo.
func (p Params) Validate() error {
	if err := checkFactor("rate", p.Rate); err != nil {
		return err
	}
	if err := checkFactor("tempo", p.Tempo); err != nil {
		return err
	}
	if err := checkFactor("pitch", p.Pitch); err != nil {
		return err
	}
	eff := p.Effective()
	if err := checkFactor("effective rate", eff.Rate); err != nil {
		return err
	}
	return checkFactor("effective tempo", eff.Tempo)
}

func checkFactor(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinFactor || v > MaxFactor {
		return fmt.Errorf("%s %v not in [%v, %v]: %w", name, v, MinFactor, MaxFactor, ErrInvalidFactor)
	}
	return nil
}

// Controls publishes Params snapshots from any goroutine to a pipeline
// running on the audio thread. Setters swap in a new snapshot with a CAS
// loop; readers never block.
type Controls struct {
	current atomic.Pointer[Params]
}

// NewControls returns controls holding p, or DefaultParams if p is invalid.
func NewControls(p Params) *Controls {
	if p.Validate() != nil {
		p = DefaultParams()
	}
	c := &Controls{}
	c.current.Store(&p)
	return c
}

// Load returns the current snapshot.
func (c *Controls) Load() *Params { return c.current.Load() }

// Params returns a copy of the current snapshot.
func (c *Controls) Params() Params { return *c.current.Load() }

// Store replaces every control at once.
func (c *Controls) Store(p Params) (Params, error) {
	if err := p.Validate(); err != nil {
		return c.Params(), err
	}
	c.current.Store(&p)
	return p, nil
}

// Update applies fn to the current snapshot and publishes the result. fn
// may run more than once under contention.
func (c *Controls) Update(fn func(p *Params)) (Params, error) {
	for {
		old := c.current.Load()
		next := *old
		fn(&next)
		if err := next.Validate(); err != nil {
			return *old, err
		}
		if c.current.CompareAndSwap(old, &next) {
			return next, nil
		}
	}
}

// SetRate sets the virtual rate.
func (c *Controls) SetRate(rate float64) (Params, error) {
	return c.Update(func(p *Params) { p.Rate = rate })
}

// SetRateChange sets the rate as a percentage change from 1.
func (c *Controls) SetRateChange(percent float64) (Params, error) {
	return c.SetRate(1 + 0.01*percent)
}

// SetTempo sets the virtual tempo.
func (c *Controls) SetTempo(tempo float64) (Params, error) {
	return c.Update(func(p *Params) { p.Tempo = tempo })
}

// SetTempoChange sets the tempo as a percentage change from 1.
func (c *Controls) SetTempoChange(percent float64) (Params, error) {
	return c.SetTempo(1 + 0.01*percent)
}

// SetPitch sets the virtual pitch factor.
func (c *Controls) SetPitch(pitch float64) (Params, error) {
	return c.Update(func(p *Params) { p.Pitch = pitch })
}

// SetPitchOctaves sets pitch as 2^octaves.
func (c *Controls) SetPitchOctaves(octaves float64) (Params, error) {
	return c.SetPitch(math.Exp2(octaves))
}

// SetPitchSemitones sets pitch in semitones (octaves = semitones/12).
func (c *Controls) SetPitchSemitones(semitones float64) (Params, error) {
	return c.SetPitchOctaves(semitones / 12)
}
