// Paints the hexagon progress indicator on a drawing surface.
// This requires a backend implementing the actual draw operations,
// such as a rasterizer to output .png images (see hexraster)
// or a pdf writer (see hexpdf).
package hexdraw

import (
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"golang.org/x/image/math/fixed"
)

// Surface knows how to do the actual draw operations,
// in pixel coordinates, like a 2D canvas context.
type Surface interface {
	// Size returns the dimensions of the surface, in pixels.
	Size() (width, height int)

	// Resize changes the dimensions of the surface, erasing its content.
	Resize(width, height int)

	// Clear erases the whole surface.
	Clear()

	// Save pushes the current drawing state (clip region and composite mode).
	Save()

	// Restore pops the state pushed by the matching Save.
	Restore()

	// SupportsComposite returns true if the mode may be set with SetComposite.
	SupportsComposite(mode CompositeMode) bool

	// SetComposite changes how the next operations combine with the content.
	SetComposite(mode CompositeMode)

	// Clip restricts the next operations to the inside of `path`,
	// intersected with the current clip region.
	Clip(path hexgeom.Path)

	// Fill paints the inside of `path` with the pattern
	// (non zero winding rule).
	Fill(path hexgeom.Path, pattern hexfill.Pattern)

	// Stroke paints the outline of `path` with the pattern.
	Stroke(path hexgeom.Path, pattern hexfill.Pattern, options StrokeOptions)
}

// CompositeMode defines how painted pixels combine with the existing content.
type CompositeMode uint8

const (
	// SourceOver paints over the content (the default).
	SourceOver CompositeMode = iota
	// DestinationIn keeps the content only where the new shape
	// is painted, scaled by its opacity.
	DestinationIn
)

func (m CompositeMode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case DestinationIn:
		return "destination-in"
	default:
		return "<unknown CompositeMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // surface default, that is ButtCap
	ButtCap
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// ParseCapMode reads the CSS names "butt", "round" and "square".
func ParseCapMode(s string) (CapMode, bool) {
	switch s {
	case "butt":
		return ButtCap, true
	case "round":
		return RoundCap, true
	case "square":
		return SquareCap, true
	}
	return NilCap, false
}

// CSSName returns the canvas name of the cap.
func (c CapMode) CSSName() string {
	switch c {
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return "butt"
	}
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	NilJoin JoinMode = iota // surface default, that is Miter
	Miter
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case NilJoin:
		return "NilJoin"
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// DefaultMiterLimit is the canvas default
const DefaultMiterLimit = 10

type StrokeOptions struct {
	Width fixed.Int26_6 // width of the line
	Cap   CapMode
	Join  JoinMode
}
