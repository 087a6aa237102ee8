// Package hexwidget implements the hexagon progress indicator:
// it owns a drawing surface, resolves the configured fills,
// paints the current value and animates value changes.
//
// A Widget is not safe for concurrent use. All its methods, including
// Tick, must be called from the goroutine owning it; image loading is
// the only work done elsewhere, and its results go through a hexanim.Loop.
package hexwidget

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/benoitkugler/hexprogress/hexanim"
	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"github.com/benoitkugler/hexprogress/hexraster"
)

// Container hosts the surface of a widget.
type Container interface {
	// ContentBox returns the dimensions available to the widget.
	ContentBox() (width, height float64)
}

// FixedContainer is a Container of constant dimensions.
type FixedContainer struct {
	Width, Height float64
}

func (c FixedContainer) ContentBox() (float64, float64) { return c.Width, c.Height }

// SurfaceFactory creates the surface of a widget.
type SurfaceFactory func(width, height int) hexdraw.Surface

// RasterSurface is the default SurfaceFactory.
func RasterSurface(width, height int) hexdraw.Surface { return hexraster.New(width, height) }

type slotID uint8

const (
	slotBackground slotID = iota
	slotLineBack
	slotLineFront
	slotCount
)

func (s slotID) String() string {
	switch s {
	case slotBackground:
		return "background"
	case slotLineBack:
		return "lineBackFill"
	case slotLineFront:
		return "lineFrontFill"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// fillSlot holds the resolved fill of one slot.
// gen is incremented by each Init, so that image loads
// started by a previous Init are ignored.
type fillSlot struct {
	gen     uint64
	pattern hexfill.Pattern
	cancel  context.CancelFunc // pending load, if any
}

// Widget is an hexagon progress indicator.
type Widget struct {
	container Container
	factory   SurfaceFactory
	logger    *slog.Logger
	loader    hexfill.Loader
	clock     hexanim.Clock
	loop      *hexanim.Loop

	initialized bool
	opts        Options
	size        float64
	lineWidth   float64
	surface     hexdraw.Surface
	slots       [slotCount]fillSlot
	anim        *hexanim.Animator
	displayed   float64 // last painted value

	listeners      []listener
	nextListenerID int
}

// Setting customizes the environment of a widget.
type Setting func(*Widget)

// WithLogger sets the logger used to report image load failures.
func WithLogger(logger *slog.Logger) Setting { return func(w *Widget) { w.logger = logger } }

// WithLoader sets how image sources are fetched.
func WithLoader(loader hexfill.Loader) Setting { return func(w *Widget) { w.loader = loader } }

// WithClock sets the clock driving the animations.
func WithClock(clock hexanim.Clock) Setting { return func(w *Widget) { w.clock = clock } }

// WithLoop sets the loop receiving the image load results.
// By default, each widget has its own loop, drained by Tick.
func WithLoop(loop *hexanim.Loop) Setting { return func(w *Widget) { w.loop = loop } }

// New returns a widget, which must be configured by Init before use.
// A nil factory means RasterSurface.
func New(container Container, factory SurfaceFactory, settings ...Setting) *Widget {
	w := &Widget{container: container, factory: factory}
	for _, s := range settings {
		s(w)
	}
	if w.factory == nil {
		w.factory = RasterSurface
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.loader == nil {
		w.loader = hexfill.FSLoader{}
	}
	if w.clock == nil {
		w.clock = hexanim.SystemClock()
	}
	if w.loop == nil {
		w.loop = hexanim.NewLoop()
	}
	w.anim = hexanim.NewAnimator(w.clock)
	return w
}

type resolved struct {
	pattern hexfill.Pattern
	pending bool
	spec    hexfill.Spec
	fit     hexfill.Fit
}

// Init applies opts over the current options (or the defaults, for the
// first call), resolves the fills and paints the first frame, animated
// if enabled. Any running animation is cancelled without notification.
// On error, the widget is left unchanged.
func (w *Widget) Init(opts ...Option) error {
	next := DefaultOptions()
	if w.initialized {
		next = w.opts.clone()
	}
	for _, opt := range opts {
		opt(&next)
	}

	size := next.Size
	if size <= 0 {
		if w.container == nil {
			return configError("Init", errors.New("size required without container"))
		}
		cw, ch := w.container.ContentBox()
		size = math.Min(cw, ch)
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return configError("Init", fmt.Errorf("invalid size %g", size))
	}
	lineWidth := next.LineWidth
	if lineWidth <= 0 {
		lineWidth = hexgeom.AutoLineWidth(size)
	}
	if lineWidth >= size {
		return configError("Init", fmt.Errorf("line width %g too large for size %g", lineWidth, size))
	}
	if next.Animation != nil {
		if _, err := next.Animation.Curve(); err != nil {
			return configError("Init", err)
		}
	}

	var fills [slotCount]resolved
	if next.Background != nil && !next.Background.IsEmpty() {
		r, err := resolve(*next.Background, size, hexfill.Cover)
		if err != nil {
			return configError("Init", fmt.Errorf("background: %w", err))
		}
		fills[slotBackground] = r
	}
	if !next.LineBackFill.IsEmpty() {
		r, err := resolve(next.LineBackFill, size, hexfill.Stretch)
		if err != nil {
			return configError("Init", fmt.Errorf("lineBackFill: %w", err))
		}
		fills[slotLineBack] = r
	}
	r, err := resolve(next.LineFrontFill, size, hexfill.Stretch)
	if err != nil {
		return configError("Init", fmt.Errorf("lineFrontFill: %w", err))
	}
	fills[slotLineFront] = r

	// everything is valid: commit
	if w.anim.Cancel() {
		w.logger.Debug("animation cancelled by init")
	}
	w.opts = next
	w.size, w.lineWidth = size, lineWidth
	w.setupSurface()
	for id := range fills {
		w.commitSlot(slotID(id), fills[id])
	}
	w.initialized = true

	if w.opts.Animation != nil {
		w.paint(w.opts.AnimationStartValue)
		w.animate(w.opts.AnimationStartValue, w.opts.Value)
	} else {
		w.paint(w.opts.Value)
	}
	return nil
}

func resolve(spec hexfill.Spec, size float64, fit hexfill.Fit) (resolved, error) {
	p, pending, err := hexfill.Resolve(spec, size, fit)
	if err != nil {
		return resolved{}, err
	}
	return resolved{pattern: p, pending: pending, spec: spec, fit: fit}, nil
}

func (w *Widget) pixelSize() int { return int(math.Ceil(w.size)) }

func (w *Widget) setupSurface() {
	px := w.pixelSize()
	if w.surface == nil {
		w.surface = w.factory(px, px)
		return
	}
	if sw, sh := w.surface.Size(); sw != px || sh != px {
		w.surface.Resize(px, px)
	}
}

func (w *Widget) commitSlot(id slotID, r resolved) {
	slot := &w.slots[id]
	slot.gen++
	if slot.cancel != nil {
		slot.cancel()
		slot.cancel = nil
	}
	// while loading an image without interim fill,
	// the previous fill is kept
	if r.pattern != nil || !r.pending {
		slot.pattern = r.pattern
	}
	if r.pending {
		w.load(id, r.spec.Image, r.fit)
	}
}

// load fetches the image in the background. The result is applied
// on the loop, only if no Init happened in the meantime.
func (w *Widget) load(id slotID, src string, fit hexfill.Fit) {
	slot := &w.slots[id]
	gen := slot.gen
	ctx, cancel := context.WithCancel(context.Background())
	slot.cancel = cancel
	loader, loop, px := w.loader, w.loop, w.pixelSize()
	go func() {
		img, err := loader.Load(ctx, src)
		loop.Post(func() { w.loaded(id, gen, src, px, fit, img, err) })
	}()
}

func (w *Widget) loaded(id slotID, gen uint64, src string, px int, fit hexfill.Fit, img image.Image, err error) {
	slot := &w.slots[id]
	if slot.gen != gen {
		w.logger.Debug("discarding stale image", "slot", id, "src", src)
		return
	}
	slot.cancel = nil
	if err != nil {
		w.logger.Warn("loading image failed", "slot", id, "src", src,
			"error", &Error{Op: "load", Kind: KindResourceLoad, Err: err})
		return
	}
	slot.pattern = hexfill.Rasterize(img, px, fit)
	w.paint(w.displayed)
}

// Frame returns the drawing parameters of value, with the current fills.
// It allows painting the widget on another surface.
func (w *Widget) Frame(value float64) hexdraw.Frame {
	return hexdraw.Frame{
		Size:       w.size,
		LineWidth:  w.lineWidth,
		StartAngle: w.opts.StartAngle,
		Value:      value,
		LineCap:    w.opts.LineCap,
		Clip:       w.opts.Clip,
		Background: w.slots[slotBackground].pattern,
		LineBack:   w.slots[slotLineBack].pattern,
		LineFront:  w.slots[slotLineFront].pattern,
	}
}

func (w *Widget) paint(value float64) {
	w.displayed = value
	hexdraw.Paint(w.surface, w.Frame(value))
}

func (w *Widget) animate(from, to float64) {
	w.emit(Event{Kind: EventStart, Value: from})
	err := w.anim.Start(*w.opts.Animation, from, to, hexanim.Handlers{
		OnStep: func(s hexanim.Step) {
			w.paint(s.Value)
			w.emit(Event{Kind: EventProgress, Progress: s.Progress, Value: s.Value})
		},
		OnEnd: func() { w.emit(Event{Kind: EventEnd, Progress: 1, Value: to}) },
	})
	if err != nil { // validated by Init
		w.logger.Error("starting animation", "error", err)
	}
}

// Value returns the configured value, which may differ
// from the displayed one while animating.
func (w *Widget) Value() (float64, error) {
	if !w.initialized {
		return 0, &Error{Op: "Value", Kind: KindUsage, Err: ErrNotInitialized}
	}
	return w.opts.Value, nil
}

// SetValue changes the value. If animations are enabled, it starts
// an animation from the displayed value, superseding the running one.
// Otherwise the value is painted immediately.
func (w *Widget) SetValue(value float64) error {
	if !w.initialized {
		return &Error{Op: "SetValue", Kind: KindUsage, Err: ErrNotInitialized}
	}
	w.opts.Value = value
	if w.opts.Animation != nil {
		w.animate(w.displayed, value)
	} else {
		w.paint(value)
	}
	return nil
}

// Canvas returns the surface the widget paints on.
func (w *Widget) Canvas() (hexdraw.Surface, error) {
	if !w.initialized {
		return nil, &Error{Op: "Canvas", Kind: KindUsage, Err: ErrNotInitialized}
	}
	return w.surface, nil
}

// Tick runs the tasks posted to the loop of the widget, then performs
// the animation step for the current time. It returns true while an
// animation is running.
func (w *Widget) Tick() bool {
	w.loop.Drain()
	return w.anim.Tick()
}

// Displayed returns the value of the last painted frame.
func (w *Widget) Displayed() float64 { return w.displayed }

// Options returns a copy of the current options.
func (w *Widget) Options() Options { return w.opts.clone() }

// Size returns the resolved size and line width.
func (w *Widget) Size() (size, lineWidth float64) { return w.size, w.lineWidth }

// Loop returns the loop receiving the image load results.
func (w *Widget) Loop() *hexanim.Loop { return w.loop }

// Loading returns the number of images still being loaded.
func (w *Widget) Loading() int {
	n := 0
	for _, slot := range w.slots {
		if slot.cancel != nil {
			n++
		}
	}
	return n
}

// Settle waits for the pending image loads, applying their results.
func (w *Widget) Settle(ctx context.Context) error {
	for w.Loading() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.loop.Wake():
			w.loop.Drain()
		}
	}
	return nil
}

// Close cancels the pending image loads and the running animation.
func (w *Widget) Close() {
	w.anim.Cancel()
	for i := range w.slots {
		slot := &w.slots[i]
		slot.gen++
		if slot.cancel != nil {
			slot.cancel()
			slot.cancel = nil
		}
	}
}
