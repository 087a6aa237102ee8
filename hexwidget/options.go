package hexwidget

import (
	"math"

	"github.com/benoitkugler/hexprogress/hexanim"
	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
)

// Options is the configuration of a widget.
type Options struct {
	// Size is the side of the square surface, in pixels.
	// Zero means the smallest dimension of the container.
	Size float64
	// Value is the progress, expected in [0, 1].
	Value float64
	// StartAngle is the position of the start of the front border, in radians.
	StartAngle float64
	// LineWidth is the width of the borders. Zero means Size / 14.
	LineWidth float64
	// LineCap is the cap of the front border.
	LineCap hexdraw.CapMode
	// Clip restricts the background to the inside of the hexagon.
	Clip bool

	Background    *hexfill.Spec // nil for no background
	LineBackFill  hexfill.Spec
	LineFrontFill hexfill.Spec

	// Animation is nil to disable animations.
	Animation *hexanim.Config
	// AnimationStartValue is the value the animation started by Init begins with.
	AnimationStartValue float64
}

// DefaultOptions returns a new copy of the defaults.
func DefaultOptions() Options {
	anim := hexanim.DefaultConfig()
	return Options{
		StartAngle:    math.Pi / 2,
		LineCap:       hexdraw.RoundCap,
		LineBackFill:  hexfill.SolidSpec("rgba(0, 0, 0, .1)"),
		LineFrontFill: hexfill.GradientSpec("#fb141d", "#fb0c58"),
		Animation:     &anim,
	}
}

// clone returns a deep copy, so that options never share fills.
func (o Options) clone() Options {
	out := o
	if o.Background != nil {
		bg := o.Background.Clone()
		out.Background = &bg
	}
	out.LineBackFill = o.LineBackFill.Clone()
	out.LineFrontFill = o.LineFrontFill.Clone()
	if o.Animation != nil {
		anim := *o.Animation
		out.Animation = &anim
	}
	return out
}

// Option modifies the options given to Init.
type Option func(*Options)

// WithSize sets the size in pixels. Zero derives it from the container.
func WithSize(size float64) Option { return func(o *Options) { o.Size = size } }

func WithValue(value float64) Option { return func(o *Options) { o.Value = value } }

// WithStartAngle sets the start angle, in radians.
func WithStartAngle(angle float64) Option { return func(o *Options) { o.StartAngle = angle } }

// WithLineWidth sets the border width. Zero derives it from the size.
func WithLineWidth(width float64) Option { return func(o *Options) { o.LineWidth = width } }

func WithLineCap(c hexdraw.CapMode) Option { return func(o *Options) { o.LineCap = c } }

func WithClip(clip bool) Option { return func(o *Options) { o.Clip = clip } }

func WithBackground(spec hexfill.Spec) Option {
	return func(o *Options) {
		spec = spec.Clone()
		o.Background = &spec
	}
}

func WithoutBackground() Option { return func(o *Options) { o.Background = nil } }

func WithLineBackFill(spec hexfill.Spec) Option {
	return func(o *Options) { o.LineBackFill = spec.Clone() }
}

func WithLineFrontFill(spec hexfill.Spec) Option {
	return func(o *Options) { o.LineFrontFill = spec.Clone() }
}

func WithAnimation(cfg hexanim.Config) Option {
	return func(o *Options) { o.Animation = &cfg }
}

func WithoutAnimation() Option { return func(o *Options) { o.Animation = nil } }

func WithAnimationStartValue(v float64) Option {
	return func(o *Options) { o.AnimationStartValue = v }
}

// WithOptions replaces all the options.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts.clone() }
}
