// Computes the hexagon outline of the progress indicator
// and the partial border representing a progress value.
// Coordinates are in pixels, with the y axis pointing down.
package hexgeom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

const (
	// number of sides, and so of sectors
	Sides = 6
	// angular span of one sector, in degrees
	SectorDegrees = 360.0 / Sides

	// sqrt(3) / 2
	halfSqrt3 = 0.8660254037844386

	epsilon = 1e-9
)

// Point is a position in pixel space.
type Point struct{ X, Y float64 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Fixed converts to the 26.6 fixed point representation used by rasterizers.
func (p Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fToFixed(p.X), Y: fToFixed(p.Y)}
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

func fromFixed(p fixed.Point26_6) Point {
	return Point{float64(p.X) / 64, float64(p.Y) / 64}
}

// Geometry is the static outline of the hexagon.
type Geometry struct {
	// Back holds the six vertices, followed by
	// a repeat of the first one to close the shape.
	Back [Sides + 1]Point
	// Edges[i] is Back[i+1] - Back[i]
	Edges [Sides]Point
	// OuterRadius is the circumradius of the hexagon, that is
	// half the widget size inset by half the line width.
	OuterRadius float64

	lineWidth float64
}

// AutoLineWidth is the line width used when none is configured.
func AutoLineWidth(size float64) float64 { return size / 14 }

// ComputeBack returns the back geometry of a widget of the given size.
func ComputeBack(size, lineWidth float64) Geometry {
	return Back(size/2, lineWidth)
}

// Back returns the hexagon for the given outer radius (before line inset).
// Vertex 0 is the top left corner, and the following vertices
// are visited clockwise by steps of 60 degrees.
func Back(outerRadius, lineWidth float64) Geometry {
	r := outerRadius - lineWidth/2
	a := r * halfSqrt3
	b := r / 2
	xOffset := lineWidth / 2
	yOffset := r - a + lineWidth/2

	var g Geometry
	g.OuterRadius = r
	g.lineWidth = lineWidth
	g.Back[0] = Point{b + xOffset, yOffset}
	g.Back[1] = g.Back[0].Add(Point{r, 0})
	g.Back[2] = g.Back[1].Add(Point{b, a})
	g.Back[3] = g.Back[2].Add(Point{-b, a})
	g.Back[4] = g.Back[3].Add(Point{-r, 0})
	g.Back[5] = g.Back[4].Add(Point{-b, -a})
	g.Back[6] = g.Back[0]
	for i := range g.Edges {
		g.Edges[i] = g.Back[i+1].Sub(g.Back[i])
	}
	return g
}

// Inset returns the hexagon used as clip mask: the outline
// shrunk by half the line width, so that the mask covers the inside
// of the back border.
// When the border covers the whole inside, the inset hexagon
// is reduced to the center point.
func (g Geometry) Inset() Geometry {
	if g.OuterRadius <= g.lineWidth/2 {
		center := g.Back[0].Add(g.Back[3]).Mul(0.5)
		inner := Geometry{lineWidth: g.lineWidth}
		for i := range inner.Back {
			inner.Back[i] = center
		}
		return inner
	}
	offset := g.lineWidth / 2
	inner := Back(g.OuterRadius, g.lineWidth)
	for i := range inner.Back {
		inner.Back[i] = inner.Back[i].Add(Point{offset, offset})
	}
	return inner
}

// Path returns the closed back outline.
func (g Geometry) Path() Path {
	return Polygon(g.Back[:Sides])
}

// Width returns the line width the geometry was computed for.
func (g Geometry) Width() float64 { return g.lineWidth }

// normalizeDegrees maps a into [0, 360)
func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 { // -tiny + 360 rounds to 360
		a = 0
	}
	return a
}

// Sector returns the 1-based sector containing the normalized
// angle a (in degrees), and the position of a inside this sector, in [0, 1).
func Sector(a float64) (sector int, coef float64) {
	s := int(math.Floor(a / SectorDegrees))
	if s >= Sides {
		s = Sides - 1
	}
	coef = (a - float64(s)*SectorDegrees) / SectorDegrees
	return s + 1, coef
}

// StartDegrees converts the start angle (radians) to the angle
// used for sector indexing: in degrees, shifted back by 60 so that sector 1
// begins on vertex 0, and normalized into [0, 360).
func StartDegrees(startAngle float64) float64 {
	return normalizeDegrees(startAngle*180/math.Pi - SectorDegrees)
}

// pointAt returns the point of the border at the given angle (in degrees).
func (g Geometry) pointAt(a float64) Point {
	sector, coef := Sector(normalizeDegrees(a))
	return g.Back[sector-1].Add(g.Edges[sector-1].Mul(coef))
}

// FrontPath returns the points of the border covering the fraction `value`
// of the perimeter, starting at `startAngle` (radians). The sweep goes
// from vertex 0 towards vertex 1, that is clockwise on screen.
// Value is clamped to [0, 1]; the result is empty for a zero value.
// For a value of 1 the path goes back to its first point.
func (g Geometry) FrontPath(startAngle, value float64) []Point {
	if !(value > 0) { // also catches NaN
		return nil
	}
	if value > 1 {
		value = 1
	}

	pos := StartDegrees(startAngle)
	remaining := 360 * value
	out := []Point{g.pointAt(pos)}
	for remaining > epsilon {
		sector, _ := Sector(pos)
		next := float64(sector) * SectorDegrees // end of the current sector
		step := next - pos
		if remaining <= step+epsilon {
			out = append(out, g.pointAt(pos+remaining))
			break
		}
		remaining -= step
		// full vertex
		out = append(out, g.Back[sector])
		pos = normalizeDegrees(next)
	}
	return out
}

// Front returns the open path of FrontPath.
func (g Geometry) Front(startAngle, value float64) Path {
	return Polyline(g.FrontPath(startAngle, value))
}
