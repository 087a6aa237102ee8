// Implements a raster backend to render the indicator,
// by wrapping rasterx.
package hexraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexgeom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

var _ hexdraw.Surface = (*Surface)(nil) // assert interface conformance

type state struct {
	composite hexdraw.CompositeMode
	clip      *image.Alpha // nil means no clip
}

// Surface draws into an RGBA image.
// It supports the destination-in composite mode.
type Surface struct {
	img   *image.RGBA
	state state
	saved []state
}

// New returns an empty (transparent) surface.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the underlying image, which is modified by
// the next drawing operations.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.state, s.saved = state{}, nil
}

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) Save() { s.saved = append(s.saved, s.state) }

func (s *Surface) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.state = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *Surface) SupportsComposite(mode hexdraw.CompositeMode) bool {
	return mode == hexdraw.SourceOver || mode == hexdraw.DestinationIn
}

func (s *Surface) SetComposite(mode hexdraw.CompositeMode) { s.state.composite = mode }

func (s *Surface) Clip(path hexgeom.Path) {
	w, h := s.Size()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	path.AddTo(filler)
	filler.SetColor(color.Alpha{A: 0xff})
	filler.Draw()

	if prev := s.state.clip; prev != nil {
		for i, a := range mask.Pix {
			mask.Pix[i] = uint8(uint32(a) * uint32(prev.Pix[i]) / 0xff)
		}
	}
	// masks are never mutated once set, so saved states may share them
	s.state.clip = mask
}

func (s *Surface) Fill(path hexgeom.Path, pattern hexfill.Pattern) {
	s.render(func(w, h int, scanner rasterx.Scanner) {
		filler := rasterx.NewFiller(w, h, scanner)
		path.AddTo(filler)
		setColorFromPattern(pattern, filler.Scanner)
		filler.Draw()
	})
}

var capToFunc = [...]rasterx.CapFunc{
	hexdraw.NilCap:    rasterx.ButtCap,
	hexdraw.ButtCap:   rasterx.ButtCap,
	hexdraw.SquareCap: rasterx.SquareCap,
	hexdraw.RoundCap:  rasterx.RoundCap,
}

var joinToJoin = [...]rasterx.JoinMode{
	hexdraw.NilJoin: rasterx.Miter,
	hexdraw.Miter:   rasterx.Miter,
	hexdraw.Round:   rasterx.Round,
	hexdraw.Bevel:   rasterx.Bevel,
}

func (s *Surface) Stroke(path hexgeom.Path, pattern hexfill.Pattern, options hexdraw.StrokeOptions) {
	s.render(func(w, h int, scanner rasterx.Scanner) {
		dasher := rasterx.NewDasher(w, h, scanner)
		capFunc := capToFunc[options.Cap]
		dasher.SetStroke(
			options.Width, fixed.I(hexdraw.DefaultMiterLimit),
			capFunc, capFunc, rasterx.FlatGap, joinToJoin[options.Join], nil, 0,
		)
		path.AddTo(dasher)
		setColorFromPattern(pattern, dasher.Scanner)
		dasher.Draw()
	})
}

// render runs draw on a scanner targeting the image,
// or an intermediate layer when a clip or a composite mode is active.
func (s *Surface) render(drawOp func(w, h int, scanner rasterx.Scanner)) {
	w, h := s.Size()
	if s.state.clip == nil && s.state.composite == hexdraw.SourceOver {
		drawOp(w, h, rasterx.NewScannerGV(w, h, s.img, s.img.Bounds()))
		return
	}

	layer := image.NewRGBA(s.img.Bounds())
	drawOp(w, h, rasterx.NewScannerGV(w, h, layer, layer.Bounds()))

	switch s.state.composite {
	case hexdraw.DestinationIn:
		s.destinationIn(layer)
	default:
		var mask image.Image
		if s.state.clip != nil {
			mask = s.state.clip
		}
		draw.DrawMask(s.img, s.img.Bounds(), layer, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// destinationIn scales the existing pixels by the layer opacity,
// inside the clip region.
func (s *Surface) destinationIn(layer *image.RGBA) {
	for i := 0; i < len(s.img.Pix); i += 4 {
		k := uint32(layer.Pix[i+3])
		if clip := s.state.clip; clip != nil {
			c := uint32(clip.Pix[i/4])
			// outside of the clip, the content is left untouched
			k = (k*c + 0xff*(0xff-c)) / 0xff
		}
		for j := i; j < i+4; j++ {
			s.img.Pix[j] = uint8(uint32(s.img.Pix[j]) * k / 0xff)
		}
	}
}

// resolve gradient color
func setColorFromPattern(pattern hexfill.Pattern, scanner rasterx.Scanner) {
	switch pattern := pattern.(type) {
	case hexfill.PlainColor:
		scanner.SetColor(pattern.NRGBA)
	case hexfill.Gradient:
		rasterxGradient := toRasterxGradient(pattern)
		scanner.SetColor(rasterxGradient.GetColorFunction(1))
	case *hexfill.ImagePattern:
		scanner.SetColor(rasterx.ColorFunc(func(x, y int) color.Color {
			return pattern.At(x, y)
		}))
	}
}

func toRasterxGradient(grad hexfill.Gradient) rasterx.Gradient {
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, stop := range grad.Stops {
		stops[i] = rasterx.GradStop{StopColor: stop.Color, Offset: stop.Offset, Opacity: 1}
	}
	d := grad.Direction
	return rasterx.Gradient{
		Points: [5]float64{d[0], d[1], d[2], d[3], 0},
		Stops:  stops,
		Matrix: rasterx.Identity,
		Spread: rasterx.PadSpread,
		Units:  rasterx.UserSpaceOnUse,
	}
}

// EncodePNG writes the current content of the surface.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG writes the current content of the surface to a file.
func (s *Surface) SavePNG(filePath string) error {
	var b bytes.Buffer
	if err := s.EncodePNG(&b); err != nil {
		return err
	}
	return os.WriteFile(filePath, b.Bytes(), 0o644)
}
