package frametime

import (
	"errors"
	"math"
)

// StepCount is the number of steps on each side of the base frame time.
const StepCount = 16

// ladderSize is the number of entries in the ladder, base included.
const ladderSize = StepCount*2 + 1

// stepDivisor sets the granularity of the ladder: one step changes the speed
// by 1/stepDivisor of the base speed.
const stepDivisor = 8

// ErrFrameTimeRange is returned when a base frame time is too large to derive
// the ladder without overflowing.
var ErrFrameTimeRange = errors.New("frame time out of range")

// ErrZeroFrameTime is returned for a base frame time of zero, which has no
// faster or slower steps.
var ErrZeroFrameTime = errors.New("base frame time must not be zero")

const maxLadderTerm = math.MaxUint64 / (stepDivisor + StepCount)

// RebasePolicy decides what happens to the current index when the base frame
// time changes.
type RebasePolicy int

const (
	// KeepIndex leaves the index where it was, so the relative step offset
	// survives a base change.
	KeepIndex RebasePolicy = iota
	// ResetIndex moves the index back to the base frame time.
	ResetIndex
)

// Stepper walks a fixed ladder of frame times derived from a base frame time.
//
// Index StepCount holds the base exactly. Lower indices are longer periods
// (slower playback), higher indices shorter periods (faster playback). The
// speed factor of step k is (8+k)/8 above the base and 8/(8+k) below it, so
// every entry is an exact ratio and the ladder is strictly monotonic.
type Stepper struct {
	ladder [ladderSize]Rational
	index  int
	policy RebasePolicy
}

// Option configures a Stepper.
type Option func(*Stepper)

// WithRebasePolicy selects how SetBase treats the current index.
func WithRebasePolicy(p RebasePolicy) Option {
	return func(s *Stepper) {
		s.policy = p
	}
}

// NewStepper builds a stepper around base with the index at the base.
func NewStepper(base Rational, opts ...Option) (*Stepper, error) {
	s := &Stepper{index: StepCount}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.SetBase(base); err != nil {
		return nil, err
	}
	return s, nil
}

// SetBase rebuilds the ladder from base. The ladder is left untouched on error.
func (s *Stepper) SetBase(base Rational) error {
	if base.Denom == 0 {
		return ErrZeroDenominator
	}
	if base.Num == 0 {
		return ErrZeroFrameTime
	}
	reduced := base.Reduce()
	if reduced.Num > maxLadderTerm || reduced.Denom > maxLadderTerm {
		return ErrFrameTimeRange
	}

	s.ladder[StepCount] = base
	for k := 1; k <= StepCount; k++ {
		speed := uint64(stepDivisor + k)
		// faster: period * 8/(8+k)
		s.ladder[StepCount+k] = Rational{
			Num:   reduced.Num * stepDivisor,
			Denom: reduced.Denom * speed,
		}.Reduce()
		// slower: period * (8+k)/8
		s.ladder[StepCount-k] = Rational{
			Num:   reduced.Num * speed,
			Denom: reduced.Denom * stepDivisor,
		}.Reduce()
	}

	if s.policy == ResetIndex {
		s.index = StepCount
	}
	return nil
}

// IncPossible reports whether Inc would move the index.
func (s *Stepper) IncPossible() bool { return s.index < StepCount*2 }

// DecPossible reports whether Dec would move the index.
func (s *Stepper) DecPossible() bool { return s.index > 0 }

// ResetPossible reports whether the index is away from the base.
func (s *Stepper) ResetPossible() bool { return s.index != StepCount }

// Inc steps towards shorter frame times. No-op at the top of the ladder.
func (s *Stepper) Inc() {
	if s.IncPossible() {
		s.index++
	}
}

// Dec steps towards longer frame times. No-op at the bottom of the ladder.
func (s *Stepper) Dec() {
	if s.DecPossible() {
		s.index--
	}
}

// Reset moves the index back to the base frame time.
func (s *Stepper) Reset() { s.index = StepCount }

// Get returns the frame time at the current index.
func (s *Stepper) Get() Rational { return s.ladder[s.index] }

// Base returns the unscaled base frame time regardless of the index.
func (s *Stepper) Base() Rational { return s.ladder[StepCount] }

// Index returns the current ladder index in [0, 2*StepCount].
func (s *Stepper) Index() int { return s.index }

// SetIndex moves to index i, clamped to the ladder.
func (s *Stepper) SetIndex(i int) {
	switch {
	case i < 0:
		i = 0
	case i > StepCount*2:
		i = StepCount * 2
	}
	s.index = i
}

// At returns ladder entry i. It panics if i is outside [0, 2*StepCount].
func (s *Stepper) At(i int) Rational { return s.ladder[i] }
