package hexfill

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader fetches the image referenced by a fill.
// Load is called outside of the widget loop and may block.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) { return f(ctx, src) }

// FSLoader reads images from a file system. If FS is nil,
// sources are paths of the host file system.
// PNG, JPEG, GIF, BMP, TIFF, WebP and SVG are supported.
type FSLoader struct {
	FS fs.FS
}

func (l FSLoader) Load(ctx context.Context, src string) (image.Image, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if l.FS != nil {
		f, err = l.FS.Open(src)
	} else {
		f, err = os.Open(src)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(f, src)
}

// Decode reads an image. The name is only used to detect SVG files,
// which are rasterized at their view box size.
func Decode(r io.Reader, name string) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".svg") {
		return decodeSVG(r)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

func decodeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("decoding svg: %w", err)
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("decoding svg: invalid view box %v", icon.ViewBox)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// Fit defines how an image is mapped to the widget square.
type Fit uint8

const (
	// Stretch scales the image to the whole square, ignoring its aspect ratio.
	Stretch Fit = iota
	// Cover scales the image, keeping its aspect ratio, so that
	// it covers the square, and centers it.
	Cover
)

// CoverRect returns the destination of an image of size (w, h)
// covering a square of the given size.
func CoverRect(w, h, size float64) (x, y, nw, nh float64) {
	scale := math.Max(size/w, size/h)
	nw, nh = w*scale, h*scale
	return (size - nw) / 2, (size - nh) / 2, nw, nh
}

// Rasterize draws img into an offscreen square of the given size.
func Rasterize(img image.Image, size int, fit Fit) *ImagePattern {
	if size < 1 {
		size = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	src := img.Bounds()
	dr := dst.Bounds()
	if fit == Cover && !src.Empty() {
		x, y, w, h := CoverRect(float64(src.Dx()), float64(src.Dy()), float64(size))
		dr = image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	}
	draw.BiLinear.Scale(dst, dr, img, src, draw.Over, nil)
	return &ImagePattern{Image: dst, mean: meanColor(dst)}
}
