// Package playback walks an immutable step sequence forward and backward,
// either on a timer or under manual control.
//
// A Controller is owned by exactly one event loop and is not safe for
// concurrent use. Timers are the caller's business: after every call, ask
// Next for the delay and tick id of the single pending advance, schedule one
// single-shot timer, and hand the id back to Tick when it fires. Any state
// change invalidates outstanding ids, so a stale timer can never advance.
package playback

import (
	"errors"
	"time"
)

// Phase is the coarse playback state.
type Phase int

const (
	// Idle means no steps are loaded.
	Idle Phase = iota
	// Playing means auto-advance is armed.
	Playing
	// Paused means auto-advance is suspended; manual navigation is allowed.
	Paused
	// Finished means the last step is showing and auto-advance stopped itself.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// ErrNoSteps is returned when Start is given an empty sequence.
var ErrNoSteps = errors.New("no steps to play")

// ErrInvalidSpeed is returned for non-positive delays.
var ErrInvalidSpeed = errors.New("speed must be positive")

// TickID identifies one scheduled advance.
type TickID uint64

// State is a read-only view of a controller.
type State struct {
	Phase Phase
	Index int
	Total int
	Speed time.Duration
}

// IsPlaying reports whether auto-advance is active.
func (s State) IsPlaying() bool { return s.Phase == Playing }

// IsPaused reports whether auto-advance is suspended by the user.
func (s State) IsPaused() bool { return s.Phase == Paused }

// AtEnd reports whether the last step is showing.
func (s State) AtEnd() bool { return s.Total > 0 && s.Index == s.Total-1 }

// Controller owns the current index over a step sequence.
type Controller[S any] struct {
	steps []S
	index int
	phase Phase
	speed time.Duration
	tick  TickID
}

// New returns an idle controller that advances every speed.
func New[S any](speed time.Duration) *Controller[S] {
	if speed <= 0 {
		speed = DefaultSortSpeed
	}
	return &Controller[S]{speed: speed}
}

// Start loads a new sequence, replacing any previous run, and begins
// auto-advance from the first step. A single-step sequence is finished at once.
func (c *Controller[S]) Start(steps []S) error {
	if len(steps) == 0 {
		c.Reset()
		return ErrNoSteps
	}
	c.steps = steps
	c.index = 0
	c.phase = Playing
	c.settle()
	c.bump()
	return nil
}

// Reset discards the loaded steps and returns to Idle.
func (c *Controller[S]) Reset() {
	c.steps = nil
	c.index = 0
	c.phase = Idle
	c.bump()
}

// Pause suspends auto-advance. It reports whether anything changed.
func (c *Controller[S]) Pause() bool {
	if c.phase != Playing {
		return false
	}
	c.phase = Paused
	c.bump()
	return true
}

// Resume re-arms auto-advance after a pause. Resuming on the last step
// finishes the run instead.
func (c *Controller[S]) Resume() bool {
	if c.phase != Paused {
		return false
	}
	c.phase = Playing
	c.settle()
	c.bump()
	return true
}

// TogglePause flips between Playing and Paused.
func (c *Controller[S]) TogglePause() bool {
	switch c.phase {
	case Playing:
		return c.Pause()
	case Paused:
		return c.Resume()
	default:
		return false
	}
}

// StepForward moves one step ahead and pauses auto-advance.
// It is a no-op on the last step.
func (c *Controller[S]) StepForward() bool {
	return c.move(+1)
}

// StepBack moves one step back and pauses auto-advance.
// It is a no-op on the first step.
func (c *Controller[S]) StepBack() bool {
	return c.move(-1)
}

func (c *Controller[S]) move(delta int) bool {
	if c.phase == Idle {
		return false
	}
	next := c.index + delta
	if next < 0 || next >= len(c.steps) {
		return false
	}
	c.index = next
	c.phase = Paused
	c.bump()
	return true
}

// Restart rewinds to the first step and plays again.
func (c *Controller[S]) Restart() bool {
	if c.phase == Idle {
		return false
	}
	c.index = 0
	c.phase = Playing
	c.settle()
	c.bump()
	return true
}

// SkipToEnd jumps to the last step and finishes the run.
func (c *Controller[S]) SkipToEnd() bool {
	if c.phase == Idle || c.phase == Finished {
		return false
	}
	c.index = len(c.steps) - 1
	c.phase = Finished
	c.bump()
	return true
}

// SetSpeed changes the auto-advance delay. The pending advance, if any, is
// invalidated so the new delay takes effect immediately.
func (c *Controller[S]) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidSpeed
	}
	c.speed = d
	c.bump()
	return nil
}

// Next returns the pending advance, if auto-advance is armed.
func (c *Controller[S]) Next() (TickID, time.Duration, bool) {
	if c.phase != Playing {
		return 0, 0, false
	}
	return c.tick, c.speed, true
}

// Tick performs the advance identified by id. Stale ids are ignored.
// Reaching the last step finishes the run.
func (c *Controller[S]) Tick(id TickID) bool {
	if c.phase != Playing || id != c.tick {
		return false
	}
	c.index++
	c.settle()
	c.bump()
	return true
}

// Current returns the active step.
func (c *Controller[S]) Current() (S, bool) {
	var zero S
	if c.phase == Idle {
		return zero, false
	}
	return c.steps[c.index], true
}

// Steps returns the loaded sequence. Callers must not modify it.
func (c *Controller[S]) Steps() []S { return c.steps }

// State returns a snapshot of the controller.
func (c *Controller[S]) State() State {
	return State{Phase: c.phase, Index: c.index, Total: len(c.steps), Speed: c.speed}
}

// settle enforces that auto-advance never stays armed on the last step.
func (c *Controller[S]) settle() {
	if c.phase == Playing && c.index >= len(c.steps)-1 {
		c.index = len(c.steps) - 1
		c.phase = Finished
	}
}

func (c *Controller[S]) bump() { c.tick++ }
