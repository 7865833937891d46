package timing

import (
	"time"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler and good enough for most cases.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
}

func NewTickerLimiter() *TickerLimiter {
	period := FrameDuration()
	return &TickerLimiter{
		ticker: time.NewTicker(period),
		period: period,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	if t.period <= 0 {
		return
	}
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	if t.period > 0 {
		t.ticker.Reset(t.period)
	}
}

// SetFrameTime changes the tick period. A zero frame time disables waiting.
func (t *TickerLimiter) SetFrameTime(ft frametime.Rational) {
	t.period = ft.Duration()
	t.Reset()
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
