package hexdraw

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

// recorder logs the calls, to check the drawing order
type recorder struct {
	composite   bool
	calls       []string
	strokes     []StrokeOptions
	strokePaths []hexgeom.Path
}

func (r *recorder) log(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Size() (int, int) { return 100, 100 }
func (r *recorder) Resize(w, h int)  { r.log("resize") }
func (r *recorder) Clear()           { r.log("clear") }
func (r *recorder) Save()            { r.log("save") }
func (r *recorder) Restore()         { r.log("restore") }

func (r *recorder) SupportsComposite(mode CompositeMode) bool {
	return mode == SourceOver || r.composite
}

func (r *recorder) SetComposite(mode CompositeMode) { r.log("composite %s", mode) }
func (r *recorder) Clip(path hexgeom.Path)          { r.log("clip %d", len(path)) }

func (r *recorder) Fill(path hexgeom.Path, pattern hexfill.Pattern) {
	r.log("fill %d", len(path))
}

func (r *recorder) Stroke(path hexgeom.Path, pattern hexfill.Pattern, options StrokeOptions) {
	r.log("stroke")
	r.strokes = append(r.strokes, options)
	r.strokePaths = append(r.strokePaths, path)
}

var (
	red  = hexfill.NewPlainColor(255, 0, 0, 255)
	gray = hexfill.NewPlainColor(0, 0, 0, 26)
)

func frame(value float64) Frame {
	return Frame{
		Size:       100,
		LineWidth:  hexgeom.AutoLineWidth(100),
		StartAngle: math.Pi / 2,
		Value:      value,
		LineCap:    RoundCap,
		LineBack:   gray,
		LineFront:  red,
	}
}

func TestPaintOrder(t *testing.T) {
	r := &recorder{}
	f := frame(0.5)
	f.Background = red
	Paint(r, f)
	assert.Equal(t, "clear save fill 5 restore save stroke restore save stroke restore", strings.Join(r.calls, " "))

	// back border: surface default cap
	assert.Equal(t, fixed.Int26_6(457), f.StrokeWidth()) // 100/14 px
	assert.Equal(t, StrokeOptions{Width: f.StrokeWidth()}, r.strokes[0])
	assert.Equal(t, StrokeOptions{Width: f.StrokeWidth(), Cap: RoundCap}, r.strokes[1])
	assert.Equal(t, f.Geometry().Path(), r.strokePaths[0])
}

func TestPaintZeroValue(t *testing.T) {
	r := &recorder{}
	Paint(r, frame(0))
	assert.Equal(t, "clear save stroke restore", strings.Join(r.calls, " "))

	r = &recorder{}
	f := frame(0.5)
	f.LineBack, f.LineFront = nil, nil
	Paint(r, f)
	assert.Equal(t, []string{"clear"}, r.calls)
}

func TestPaintClipComposite(t *testing.T) {
	r := &recorder{composite: true}
	f := frame(0)
	f.Background, f.Clip = red, true
	Paint(r, f)
	// rectangle, then the closed inset hexagon
	assert.Equal(t, "clear save fill 5 composite destination-in fill 7 restore save stroke restore", strings.Join(r.calls, " "))
}

func TestPaintClipPath(t *testing.T) {
	r := &recorder{}
	f := frame(0)
	f.Background, f.Clip = red, true
	Paint(r, f)
	assert.Equal(t, "clear save clip 7 fill 5 restore save stroke restore", strings.Join(r.calls, " "))
}

func TestCapMode(t *testing.T) {
	for _, name := range []string{"butt", "round", "square"} {
		c, ok := ParseCapMode(name)
		assert.True(t, ok)
		assert.Equal(t, name, c.CSSName())
	}
	_, ok := ParseCapMode("arc")
	assert.False(t, ok)
	assert.Equal(t, "butt", NilCap.CSSName())
}
