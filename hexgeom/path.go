package hexgeom

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types accumulating path commands,
// such as the rasterx Filler and Dasher.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// Stop closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand { return pathMoveTo }
func (LineTo) command() pathCommand { return pathLineTo }
func (Close) command() pathCommand  { return pathClose }

// Path describes a sequence of basic operations.
// Hexagons only ever need straight segments.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo adds the Path p to q.
func (p Path) AddTo(q Adder) {
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				q.Stop(false) // implicit end if currently in path.
			}
			q.Start(fixed.Point26_6(op))
			started = true
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case Close:
			q.Stop(true)
			started = false
		}
	}
	if started {
		q.Stop(false)
	}
}

// Points returns the coordinates visited by the path, in pixels.
// Close operations are not reported.
func (p Path) Points() []Point {
	out := make([]Point, 0, len(p))
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out = append(out, fromFixed(fixed.Point26_6(op)))
		case LineTo:
			out = append(out, fromFixed(fixed.Point26_6(op)))
		}
	}
	return out
}

// Polyline returns the open path joining the given points.
func Polyline(pts []Point) Path {
	var p Path
	for i, pt := range pts {
		if i == 0 {
			p.Start(pt.Fixed())
		} else {
			p.Line(pt.Fixed())
		}
	}
	return p
}

// Polygon returns the closed path joining the given points.
func Polygon(pts []Point) Path {
	p := Polyline(pts)
	if len(p) != 0 {
		p.Stop(true)
	}
	return p
}

// Rect returns the closed path of the axis aligned rectangle.
func Rect(x, y, w, h float64) Path {
	return Polygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
}
