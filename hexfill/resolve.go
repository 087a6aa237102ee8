package hexfill

import (
	"fmt"
	"math"
	"sort"
)

// Resolve converts the part of spec which is available synchronously.
// pending is true when the image of spec has to be fetched by a Loader;
// the returned pattern is then only an interim fill, and is nil
// if spec has no color nor gradient.
// An empty spec is an error wrapping ErrNoFill.
func Resolve(spec Spec, size float64, fit Fit) (p Pattern, pending bool, err error) {
	if spec.IsEmpty() {
		return nil, false, ErrNoFill
	}

	if spec.Color != "" {
		c, err := ParseColor(spec.Color)
		if err != nil {
			return nil, false, err
		}
		p = PlainColor{c}
	}

	switch len(spec.Gradient) {
	case 0:
	case 1:
		c, err := ParseColor(spec.Gradient[0].Color)
		if err != nil {
			return nil, false, err
		}
		p = PlainColor{c}
	default:
		grad, err := resolveGradient(spec, size)
		if err != nil {
			return nil, false, err
		}
		p = grad
	}

	if spec.Picture != nil {
		return Rasterize(spec.Picture, int(math.Ceil(size)), fit), false, nil
	}
	return p, spec.Image != "", nil
}

// GradientLine returns the gradient direction x0, y0, x1, y1 for the given
// angle: the line crosses the square of the given size through its center.
func GradientLine(angle, size float64) [4]float64 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return [4]float64{
		size / 2 * (1 - cos),
		size / 2 * (1 + sin),
		size / 2 * (1 + cos),
		size / 2 * (1 - sin),
	}
}

func resolveGradient(spec Spec, size float64) (Gradient, error) {
	var out Gradient
	if spec.GradientDirection != nil {
		out.Direction = *spec.GradientDirection
	} else {
		out.Direction = GradientLine(spec.GradientAngle, size)
	}
	n := len(spec.Gradient)
	out.Stops = make([]GradStop, n)
	for i, stop := range spec.Gradient {
		c, err := ParseColor(stop.Color)
		if err != nil {
			return Gradient{}, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		offset := float64(i) / float64(n-1)
		if stop.HasOffset {
			offset = stop.Offset
		}
		if offset < 0 || offset > 1 || math.IsNaN(offset) {
			return Gradient{}, fmt.Errorf("gradient stop %d: offset %g out of [0, 1]", i, offset)
		}
		out.Stops[i] = GradStop{Color: c, Offset: offset}
	}
	// stops added out of order are sorted, keeping insertion order for ties
	sort.SliceStable(out.Stops, func(i, j int) bool { return out.Stops[i].Offset < out.Stops[j].Offset })
	return out, nil
}
