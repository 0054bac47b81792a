// Package runner drives a playback controller without a terminal UI: it arms
// one single-shot timer at a time and reports every step it lands on.
package runner

import (
	"context"
	"time"

	"github.com/chibuka/algoviz/internal/playback"
	"go.uber.org/zap"
)

// StepFunc receives the active step and the controller state after every
// change the runner makes.
type StepFunc[S any] func(step S, st playback.State)

// Timer abstracts time.NewTimer so tests can fire advances by hand.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// NewTimerFunc creates a Timer that fires after d.
type NewTimerFunc func(d time.Duration) Timer

type stdTimer struct{ t *time.Timer }

func (s stdTimer) C() <-chan time.Time { return s.t.C }
func (s stdTimer) Stop() bool          { return s.t.Stop() }

// RealTimer is the production NewTimerFunc.
func RealTimer(d time.Duration) Timer { return stdTimer{time.NewTimer(d)} }

// Runner plays a controller to completion.
type Runner[S any] struct {
	ctrl     *playback.Controller[S]
	newTimer NewTimerFunc
	logger   *zap.Logger
}

// New returns a Runner for ctrl. A nil logger disables logging.
func New[S any](ctrl *playback.Controller[S], logger *zap.Logger) *Runner[S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner[S]{ctrl: ctrl, newTimer: RealTimer, logger: logger}
}

// WithTimer swaps the timer factory.
func (r *Runner[S]) WithTimer(fn NewTimerFunc) *Runner[S] {
	r.newTimer = fn
	return r
}

// Play reports the current step, then keeps advancing until auto-advance
// disarms (the run finished or was paused) or ctx is cancelled.
func (r *Runner[S]) Play(ctx context.Context, onStep StepFunc[S]) error {
	step, ok := r.ctrl.Current()
	if !ok {
		return playback.ErrNoSteps
	}
	onStep(step, r.ctrl.State())

	for {
		id, delay, armed := r.ctrl.Next()
		if !armed {
			r.logger.Debug("playback stopped", zap.Stringer("phase", r.ctrl.State().Phase))
			return nil
		}

		timer := r.newTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C():
		}

		if !r.ctrl.Tick(id) {
			continue
		}
		step, _ = r.ctrl.Current()
		st := r.ctrl.State()
		r.logger.Debug("advanced", zap.Int("index", st.Index), zap.Int("total", st.Total))
		onStep(step, st)
	}
}
