package hexfill

import (
	"image"
	"image/color"
)

// Pattern is a resolved fill: one of PlainColor, Gradient or *ImagePattern.
type Pattern interface {
	isPattern()
}

// PlainColor is a solid color.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor returns a PlainColor
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.NRGBA{R: r, G: g, B: b, A: a}}
}

// GradStop is a resolved gradient stop
type GradStop struct {
	Color  color.NRGBA
	Offset float64
}

// Gradient is a linear gradient in the widget coordinates.
type Gradient struct {
	// x0, y0, x1, y1
	Direction [4]float64
	// Sorted by offset
	Stops []GradStop
}

// ImagePattern is an image rasterized to the widget size.
type ImagePattern struct {
	Image *image.RGBA
	// Repeat tiles the image instead of leaving
	// the outside transparent.
	Repeat bool

	mean color.NRGBA
}

func (PlainColor) isPattern()    {}
func (Gradient) isPattern()      {}
func (*ImagePattern) isPattern() {}

// At returns the pattern pixel at (x, y)
func (p *ImagePattern) At(x, y int) color.Color {
	b := p.Image.Bounds()
	if p.Repeat {
		x = b.Min.X + mod(x-b.Min.X, b.Dx())
		y = b.Min.Y + mod(y-b.Min.Y, b.Dy())
	}
	return p.Image.At(x, y) // transparent outside
}

func mod(a, n int) int {
	if n == 0 {
		return 0
	}
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// Dominant returns a single color approximating the pattern, for
// backends unable to paint gradients or images: the color itself,
// the first gradient stop, or the mean color of an image.
func Dominant(p Pattern) color.NRGBA {
	switch p := p.(type) {
	case PlainColor:
		return p.NRGBA
	case Gradient:
		if len(p.Stops) != 0 {
			return p.Stops[0].Color
		}
	case *ImagePattern:
		return p.mean
	}
	return color.NRGBA{}
}

// meanColor averages the non premultiplied pixels of img
func meanColor(img *image.RGBA) color.NRGBA {
	var r, g, b, a, n uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			r += uint64(px[0])
			g += uint64(px[1])
			b += uint64(px[2])
			a += uint64(px[3])
			n++
		}
	}
	if a == 0 {
		return color.NRGBA{}
	}
	// color channels are premultiplied: divide by the total alpha
	return color.NRGBA{
		R: uint8(r * 255 / a),
		G: uint8(g * 255 / a),
		B: uint8(b * 255 / a),
		A: uint8(a / n),
	}
}
