package hexdraw

import (
	"math"

	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"golang.org/x/image/math/fixed"
)

// the color of the clip shape doesn't matter, but it must be opaque
var maskColor = hexfill.NewPlainColor(0xff, 0xff, 0xff, 0xff)

// Frame gathers everything needed to paint one state of the widget.
type Frame struct {
	Size       float64
	LineWidth  float64
	StartAngle float64 // radians
	Value      float64
	LineCap    CapMode
	Clip       bool

	Background hexfill.Pattern // nil for no background
	LineBack   hexfill.Pattern // nil to skip the back border
	LineFront  hexfill.Pattern // nil to skip the front border
}

// Geometry returns the back outline for the frame size.
func (f Frame) Geometry() hexgeom.Geometry {
	return hexgeom.ComputeBack(f.Size, f.LineWidth)
}

// StrokeWidth returns the line width in 26.6 fixed point.
func (f Frame) StrokeWidth() fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f.LineWidth * 64))
}

// Paint clears the surface and draws the frame, in order:
// background, back border and front border.
// Each step is enclosed in Save/Restore.
func Paint(s Surface, f Frame) {
	s.Clear()

	g := f.Geometry()
	front := g.Front(f.StartAngle, f.Value)

	if f.Background != nil {
		paintBackground(s, f, g)
	}

	if f.LineBack != nil {
		s.Save()
		// cap and join are left to the surface defaults
		s.Stroke(g.Path(), f.LineBack, StrokeOptions{Width: f.StrokeWidth()})
		s.Restore()
	}

	if f.Value == 0 || len(front) == 0 || f.LineFront == nil {
		return
	}
	s.Save()
	s.Stroke(front, f.LineFront, StrokeOptions{Width: f.StrokeWidth(), Cap: f.LineCap})
	s.Restore()
}

func paintBackground(s Surface, f Frame, g hexgeom.Geometry) {
	s.Save()
	defer s.Restore()

	all := hexgeom.Rect(0, 0, f.Size, f.Size)
	if !f.Clip {
		s.Fill(all, f.Background)
		return
	}

	mask := g.Inset().Path()
	if s.SupportsComposite(DestinationIn) {
		// draw the content first, then only keep the overlap with the mask
		s.Fill(all, f.Background)
		s.SetComposite(DestinationIn)
		s.Fill(mask, maskColor)
	} else {
		s.Clip(mask)
		s.Fill(all, f.Background)
	}
}
