package menu

import (
	"log/slog"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

// FrameRateActions reports which frame rate commands currently do something.
type FrameRateActions struct {
	Dec   bool
	Inc   bool
	Reset bool
}

// FrameRateAdjuster steps the emulation frame time up and down around the
// base frame time configured in the misc settings.
type FrameRateAdjuster struct {
	stepper  *frametime.Stepper
	observer FrameTimeObserver
	enabled  bool

	// OnChange, when set, is told about every frame time notification
	// together with the enabled state.
	OnChange func(ft frametime.Rational, enabled bool)
}

// NewFrameRateAdjuster builds an adjuster for the given base frame time and
// pushes the initial frame time to the observer.
func NewFrameRateAdjuster(base frametime.Rational, observer FrameTimeObserver, opts ...frametime.Option) (*FrameRateAdjuster, error) {
	stepper, err := frametime.NewStepper(base, opts...)
	if err != nil {
		return nil, err
	}
	a := &FrameRateAdjuster{
		stepper:  stepper,
		observer: observer,
		enabled:  true,
	}
	a.changed()
	return a, nil
}

// SetDisabled gates the adjuster. While disabled the observer runs at the
// base frame time and the step commands do nothing; the step index is kept.
func (a *FrameRateAdjuster) SetDisabled(disabled bool) {
	a.enabled = !disabled
	a.changed()
}

// Enabled reports whether stepping is enabled.
func (a *FrameRateAdjuster) Enabled() bool { return a.enabled }

// DecFrameRate makes the frame time one step longer.
func (a *FrameRateAdjuster) DecFrameRate() {
	if !a.enabled || !a.stepper.DecPossible() {
		return
	}
	a.stepper.Dec()
	a.changed()
}

// IncFrameRate makes the frame time one step shorter.
func (a *FrameRateAdjuster) IncFrameRate() {
	if !a.enabled || !a.stepper.IncPossible() {
		return
	}
	a.stepper.Inc()
	a.changed()
}

// ResetFrameRate returns to the base frame time.
func (a *FrameRateAdjuster) ResetFrameRate() {
	if !a.enabled || !a.stepper.ResetPossible() {
		return
	}
	a.stepper.Reset()
	a.changed()
}

// BaseFrameTimeChanged rebuilds the ladder from the misc settings snapshot.
// An invalid base is rejected and leaves everything as it was.
func (a *FrameRateAdjuster) BaseFrameTimeChanged(mc MiscConfig) error {
	if err := a.stepper.SetBase(mc.BaseFrameTime); err != nil {
		return err
	}
	a.changed()
	return nil
}

// Current returns the frame time the observer was last told about.
func (a *FrameRateAdjuster) Current() frametime.Rational {
	if a.enabled {
		return a.stepper.Get()
	}
	return a.stepper.Base()
}

// Index returns the ladder index, for persistence.
func (a *FrameRateAdjuster) Index() int { return a.stepper.Index() }

// RestoreIndex moves to a persisted ladder index.
func (a *FrameRateAdjuster) RestoreIndex(i int) {
	a.stepper.SetIndex(i)
	a.changed()
}

// Actions reports which commands would currently change the frame time.
func (a *FrameRateAdjuster) Actions() FrameRateActions {
	return FrameRateActions{
		Dec:   a.enabled && a.stepper.DecPossible(),
		Inc:   a.enabled && a.stepper.IncPossible(),
		Reset: a.enabled && a.stepper.ResetPossible(),
	}
}

func (a *FrameRateAdjuster) changed() {
	ft := a.Current()
	slog.Debug("Frame time changed", "frame_time", ft, "fps", ft.FPS(), "index", a.stepper.Index(), "enabled", a.enabled)
	if a.observer != nil {
		a.observer.SetFrameTime(ft)
	}
	if a.OnChange != nil {
		a.OnChange(ft, a.enabled)
	}
}
