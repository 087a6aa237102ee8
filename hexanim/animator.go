// Package hexanim interpolates the displayed value of the indicator
// over time. Nothing runs on its own: the host calls Animator.Tick
// once per frame, typically from a Loop.
package hexanim

import (
	"math"
	"time"
)

// DefaultDuration is the duration of an animation when none is configured.
const DefaultDuration = 1800 * time.Millisecond

// Config describes the animation of a value change.
// A zero Duration gives a single step at the target value,
// and an empty Easing uses HexagonEasing.
type Config struct {
	Duration time.Duration
	Easing   string
}

// DefaultConfig returns the default animation.
func DefaultConfig() Config {
	return Config{Duration: DefaultDuration, Easing: HexagonEasing}
}

// Curve returns the easing function of the config.
func (c Config) Curve() (Easing, error) {
	if c.Easing == "" {
		return EaseInOutCubic, nil
	}
	return LookupEasing(c.Easing)
}

// Step is one frame of an animation.
type Step struct {
	Progress float64 // linear progress, in [0, 1]
	Value    float64 // eased interpolation between the start and target values
}

// Handlers receive the notifications of one run.
// OnStep is called for each step, OnEnd once after the last step.
// A superseded run never calls OnEnd.
type Handlers struct {
	OnStep func(Step)
	OnEnd  func()
}

type run struct {
	from, to float64
	duration time.Duration
	curve    Easing
	start    time.Time
	last     float64 // progress of the last step, -1 before the first one
	handlers Handlers
}

// Animator runs at most one animation at a time.
// It is not safe for concurrent use: it belongs to the goroutine
// driving the widget.
type Animator struct {
	clock Clock
	run   *run
}

// NewAnimator returns an idle animator. A nil clock
// means the system clock.
func NewAnimator(clock Clock) *Animator {
	if clock == nil {
		clock = realClock{}
	}
	return &Animator{clock: clock}
}

// Start begins an animation from `from` to `to`, superseding the current
// one, if any: its remaining steps and its end notification are dropped.
// The first step happens on the next call to Tick.
func (a *Animator) Start(cfg Config, from, to float64, handlers Handlers) error {
	curve, err := cfg.Curve()
	if err != nil {
		return err
	}
	a.run = &run{
		from:     from,
		to:       to,
		duration: cfg.Duration,
		curve:    curve,
		start:    a.clock.Now(),
		last:     -1,
		handlers: handlers,
	}
	return nil
}

// Cancel silently drops the current animation.
// It returns false if no animation was running.
func (a *Animator) Cancel() bool {
	running := a.run != nil
	a.run = nil
	return running
}

// Running returns true if an animation has steps left.
func (a *Animator) Running() bool { return a.run != nil }

// Tick performs the step of the current animation matching the clock time.
// No step is emitted if the progress has not increased since the last one.
// It returns true if an animation is still running afterwards.
func (a *Animator) Tick() bool {
	r := a.run
	if r == nil {
		return false
	}

	progress := 1.
	if r.duration > 0 {
		elapsed := a.clock.Now().Sub(r.start)
		progress = math.Max(0, math.Min(1, float64(elapsed)/float64(r.duration)))
	}
	if progress <= r.last {
		return true
	}
	r.last = progress

	value := r.to
	if progress < 1 {
		value = r.from + (r.to-r.from)*r.curve(progress)
	}
	if r.handlers.OnStep != nil {
		r.handlers.OnStep(Step{Progress: progress, Value: value})
	}
	if a.run != r { // superseded by the step handler
		return a.run != nil
	}
	if progress < 1 {
		return true
	}

	a.run = nil
	if r.handlers.OnEnd != nil {
		r.handlers.OnEnd()
	}
	return a.run != nil
}
