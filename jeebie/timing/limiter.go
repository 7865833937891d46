package timing

import (
	"time"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()

	// SetFrameTime changes the target period of a frame.
	SetFrameTime(ft frametime.Rational)
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame()               {}
func (n *noOpLimiter) Reset()                          {}
func (n *noOpLimiter) SetFrameTime(frametime.Rational) {}

// Constants for Game Boy timing
const (
	CyclesPerFrame = 70224
	CPUFrequency   = 4194304
)

// DefaultFrameTime is the exact Game Boy frame period, 70224 cycles at 4MiHz.
var DefaultFrameTime = frametime.Rational{Num: CyclesPerFrame, Denom: CPUFrequency}

// TargetFPS calculates the exact Game Boy frame rate.
func TargetFPS() float64 {
	return DefaultFrameTime.FPS()
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return DefaultFrameTime.Duration()
}
