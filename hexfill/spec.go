// Resolves declarative fill descriptors (solid color, linear gradient, image)
// into patterns which can be painted by a drawing surface.
// Image fills may need an asynchronous load: see Loader.
package hexfill

import (
	"errors"
	"image"
)

// ErrNoFill is returned when a fill descriptor has neither
// a color, a gradient nor an image.
var ErrNoFill = errors.New("fill has no color, gradient or image")

// Stop is one color of a gradient. When HasOffset is false,
// the stops are evenly spaced.
type Stop struct {
	Color     string
	Offset    float64
	HasOffset bool
}

// At returns a stop with an explicit position.
func At(color string, offset float64) Stop {
	return Stop{Color: color, Offset: offset, HasOffset: true}
}

// Spec describes a fill. The fields are considered in order:
// Color, then Gradient, then the image (Picture or Image).
// When an image is given with a color or a gradient, they are shown
// until the image is loaded.
type Spec struct {
	Color string

	Gradient []Stop
	// GradientAngle is the direction (radians, counter-clockwise) of the gradient
	// line, used when GradientDirection is nil.
	GradientAngle float64
	// GradientDirection is the explicit gradient line x0, y0, x1, y1.
	GradientDirection *[4]float64

	// Image is a source reference, resolved by a Loader.
	Image string
	// Picture is an image already in memory; it takes precedence over Image.
	Picture image.Image
}

// SolidSpec returns a fill with a plain color.
func SolidSpec(color string) Spec { return Spec{Color: color} }

// GradientSpec returns a fill with evenly spaced colors.
func GradientSpec(colors ...string) Spec {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{Color: c}
	}
	return Spec{Gradient: stops}
}

// ImageSpec returns a fill loading the given source.
func ImageSpec(src string) Spec { return Spec{Image: src} }

// IsEmpty returns true if the spec describes no fill at all.
func (s Spec) IsEmpty() bool {
	return s.Color == "" && len(s.Gradient) == 0 && s.Image == "" && s.Picture == nil
}

// NeedsLoad returns true if the image must be fetched by a Loader.
func (s Spec) NeedsLoad() bool { return s.Picture == nil && s.Image != "" }

// Clone returns a deep copy of the spec. The Picture
// is shared, since images are never mutated.
func (s Spec) Clone() Spec {
	out := s
	if s.Gradient != nil {
		out.Gradient = append([]Stop(nil), s.Gradient...)
	}
	if s.GradientDirection != nil {
		d := *s.GradientDirection
		out.GradientDirection = &d
	}
	return out
}
