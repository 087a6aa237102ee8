// Implements a PDF backend to render the indicator,
// by wrapping github.com/jung-kurt/gofpdf.
// Each frame is written on a new page, with one point per pixel.
package hexpdf

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

var (
	_ hexdraw.Surface = (*Surface)(nil) // assert interface conformance
	_ hexgeom.Adder   = pather{}
)

// Surface writes the drawing operations to a PDF document.
// PDF has no destination-in compositing, so clipping
// is always done with a clip path.
type Surface struct {
	pdf           *gofpdf.Fpdf
	width, height int

	clips []int // number of clip paths opened, for each saved state
	nest  int   // clip paths opened in the current state

	images map[*hexfill.ImagePattern]string // registered images
}

// implements the path commands
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) { p.pdf.MoveTo(fixedTof(a)) }

func (p pather) Line(b fixed.Point26_6) { p.pdf.LineTo(fixedTof(b)) }

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// New returns a surface whose pages have the given dimensions.
// No page is created until the first call to Clear.
func New(width, height int) *Surface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Surface{pdf: pdf, width: width, height: height, images: make(map[*hexfill.ImagePattern]string)}
}

// PDF returns the underlying document.
func (s *Surface) PDF() *gofpdf.Fpdf { return s.pdf }

func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize changes the size of the next pages.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
	s.Clear()
}

// Clear starts a new page.
func (s *Surface) Clear() {
	for len(s.clips) != 0 {
		s.Restore()
	}
	s.endClips()
	s.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: float64(s.width), Ht: float64(s.height)})
}

func (s *Surface) endClips() {
	for ; s.nest > 0; s.nest-- {
		s.pdf.ClipEnd()
	}
}

func (s *Surface) Save() {
	s.clips = append(s.clips, s.nest)
	s.nest = 0
}

func (s *Surface) Restore() {
	if len(s.clips) == 0 {
		return
	}
	s.endClips()
	s.nest = s.clips[len(s.clips)-1]
	s.clips = s.clips[:len(s.clips)-1]
}

func (s *Surface) SupportsComposite(mode hexdraw.CompositeMode) bool {
	return mode == hexdraw.SourceOver
}

// SetComposite ignores the unsupported modes.
func (s *Surface) SetComposite(mode hexdraw.CompositeMode) {}

func toPdfPoints(path hexgeom.Path) []gofpdf.PointType {
	pts := path.Points()
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}

func (s *Surface) Clip(path hexgeom.Path) {
	s.pdf.ClipPolygon(toPdfPoints(path), false)
	s.nest++
}

func (s *Surface) setAlpha(c color.NRGBA) {
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (s *Surface) Fill(path hexgeom.Path, pattern hexfill.Pattern) {
	switch pattern := pattern.(type) {
	case hexfill.PlainColor:
		s.pdf.SetFillColor(int(pattern.R), int(pattern.G), int(pattern.B))
		s.setAlpha(pattern.NRGBA)
		path.AddTo(pather{s.pdf})
		s.pdf.DrawPath("F")
	case hexfill.Gradient:
		s.pdf.ClipPolygon(toPdfPoints(path), false)
		s.linearGradient(pattern)
		s.pdf.ClipEnd()
	case *hexfill.ImagePattern:
		s.pdf.ClipPolygon(toPdfPoints(path), false)
		s.drawImage(pattern)
		s.pdf.ClipEnd()
	}
}

// linearGradient paints the whole page. Only the first
// and last stops are used.
func (s *Surface) linearGradient(grad hexfill.Gradient) {
	if len(grad.Stops) == 0 {
		return
	}
	c1, c2 := grad.Stops[0].Color, grad.Stops[len(grad.Stops)-1].Color
	w, h := float64(s.width), float64(s.height)
	d := grad.Direction
	s.setAlpha(color.NRGBA{A: 0xff})
	// gradient coordinates are relative to the rectangle, from its lower left corner
	s.pdf.LinearGradient(0, 0, w, h,
		int(c1.R), int(c1.G), int(c1.B), int(c2.R), int(c2.G), int(c2.B),
		d[0]/w, 1-d[1]/h, d[2]/w, 1-d[3]/h)
}

func (s *Surface) drawImage(pattern *hexfill.ImagePattern) {
	name, ok := s.images[pattern]
	if !ok {
		var buf bytes.Buffer
		if err := png.Encode(&buf, pattern.Image); err != nil {
			s.pdf.SetError(err)
			return
		}
		name = fmt.Sprintf("pattern%d", len(s.images))
		s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
		s.images[pattern] = name
	}
	b := pattern.Image.Bounds()
	s.setAlpha(color.NRGBA{A: 0xff})
	s.pdf.ImageOptions(name, 0, 0, float64(b.Dx()), float64(b.Dy()), false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

var joinToStyle = [...]string{
	hexdraw.NilJoin: "miter",
	hexdraw.Miter:   "miter",
	hexdraw.Round:   "round",
	hexdraw.Bevel:   "bevel",
}

// Stroke only supports plain colors: gradients and images
// are replaced by their dominant color.
func (s *Surface) Stroke(path hexgeom.Path, pattern hexfill.Pattern, options hexdraw.StrokeOptions) {
	c := hexfill.Dominant(pattern)
	s.pdf.SetLineWidth(float64(options.Width) / 64)
	s.pdf.SetLineCapStyle(options.Cap.CSSName())
	s.pdf.SetLineJoinStyle(joinToStyle[options.Join])
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.setAlpha(c)
	path.AddTo(pather{s.pdf})
	s.pdf.DrawPath("D")
}

// Output closes the document and writes it to w.
func (s *Surface) Output(w io.Writer) error {
	for len(s.clips) != 0 {
		s.Restore()
	}
	s.endClips()
	return s.pdf.Output(w)
}

// OutputFile closes the document and writes it to a file.
func (s *Surface) OutputFile(fileName string) error {
	for len(s.clips) != 0 {
		s.Restore()
	}
	s.endClips()
	return s.pdf.OutputFileAndClose(fileName)
}

// Err returns the first error met while writing the document.
func (s *Surface) Err() error { return s.pdf.Error() }
