package hexfill

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in  string
		exp color.NRGBA
	}{
		{"#fb141d", color.NRGBA{0xfb, 0x14, 0x1d, 0xff}},
		{"#FFF000", color.NRGBA{0xff, 0xf0, 0x00, 0xff}},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#0f08", color.NRGBA{0x00, 0xff, 0x00, 0x88}},
		{"#11223344", color.NRGBA{0x11, 0x22, 0x33, 0x44}},
		{"rgba(0, 0, 0, .1)", color.NRGBA{0, 0, 0, 26}},
		{"rgba(255, 255, 255, .5)", color.NRGBA{255, 255, 255, 128}},
		{"rgb(10,20,30)", color.NRGBA{10, 20, 30, 255}},
		{"rgb(100%, 0%, 50%)", color.NRGBA{255, 0, 128, 255}},
		{"rgb(50%, 50%, 50%)", color.NRGBA{128, 128, 128, 255}},
		{"rgb(127.5, 0, 0)", color.NRGBA{128, 0, 0, 255}},
		{"rgba(0, 0, 0, 50%)", color.NRGBA{0, 0, 0, 128}},
		{"rgb(120%, -5%, 0)", color.NRGBA{255, 0, 0, 255}},
		{" Lime ", color.NRGBA{0, 255, 0, 255}},
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"transparent", color.NRGBA{}},
	} {
		got, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.exp, got, test.in)
	}

	for _, in := range []string{"", "#12", "#zzz", "rgb(1,2)", "rgba(1,2,3,x)", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestResolveColor(t *testing.T) {
	p, pending, err := Resolve(SolidSpec("#fff000"), 100, Stretch)
	require.NoError(t, err)
	assert.False(t, pending)
	assert.Equal(t, NewPlainColor(0xff, 0xf0, 0, 0xff), p)
}

func TestResolveEmpty(t *testing.T) {
	_, _, err := Resolve(Spec{}, 100, Stretch)
	assert.True(t, errors.Is(err, ErrNoFill))

	_, _, err = Resolve(SolidSpec("nope"), 100, Stretch)
	assert.Error(t, err)
}

func TestGradientSingleStop(t *testing.T) {
	p, _, err := Resolve(GradientSpec("red"), 100, Stretch)
	require.NoError(t, err)
	assert.Equal(t, NewPlainColor(255, 0, 0, 255), p)
}

func TestGradientStopsDefault(t *testing.T) {
	p, _, err := Resolve(GradientSpec("red", "green", "blue"), 100, Stretch)
	require.NoError(t, err)
	grad, ok := p.(Gradient)
	require.True(t, ok)
	require.Len(t, grad.Stops, 3)
	assert.Equal(t, 0., grad.Stops[0].Offset)
	assert.Equal(t, 0.5, grad.Stops[1].Offset)
	assert.Equal(t, 1., grad.Stops[2].Offset)
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, grad.Stops[2].Color)
	// angle 0: left to right, through the center
	assert.Equal(t, [4]float64{0, 50, 100, 50}, grad.Direction)
}

func TestGradientExplicit(t *testing.T) {
	dir := [4]float64{1, 2, 3, 4}
	spec := Spec{
		Gradient:          []Stop{{Color: "red"}, At("blue", 0.2), {Color: "lime"}},
		GradientDirection: &dir,
	}
	p, _, err := Resolve(spec, 100, Stretch)
	require.NoError(t, err)
	grad := p.(Gradient)
	assert.Equal(t, dir, grad.Direction)
	require.Len(t, grad.Stops, 3)
	// sorted by offset
	assert.Equal(t, []float64{0, 0.2, 1}, []float64{grad.Stops[0].Offset, grad.Stops[1].Offset, grad.Stops[2].Offset})
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, grad.Stops[1].Color)

	spec.Gradient[1].Offset = 2
	_, _, err = Resolve(spec, 100, Stretch)
	assert.Error(t, err)
}

func TestGradientLine(t *testing.T) {
	line := GradientLine(math.Pi/2, 100)
	// bottom to top
	assert.InDelta(t, 50, line[0], 1e-9)
	assert.InDelta(t, 100, line[1], 1e-9)
	assert.InDelta(t, 50, line[2], 1e-9)
	assert.InDelta(t, 0, line[3], 1e-9)
}

func TestResolveImagePending(t *testing.T) {
	p, pending, err := Resolve(Spec{Color: "lime", Image: "bg.png"}, 100, Stretch)
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, NewPlainColor(0, 255, 0, 255), p, "interim color")

	p, pending, err = Resolve(ImageSpec("bg.png"), 100, Stretch)
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Nil(t, p)
}

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func TestResolvePicture(t *testing.T) {
	p, pending, err := Resolve(Spec{Color: "lime", Picture: checker(4, 4)}, 20, Stretch)
	require.NoError(t, err)
	assert.False(t, pending)
	pat, ok := p.(*ImagePattern)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 20, 20), pat.Image.Bounds())
	assert.Equal(t, uint8(255), pat.Image.RGBAAt(10, 10).A)
}

func TestCoverRect(t *testing.T) {
	x, y, w, h := CoverRect(200, 100, 100)
	assert.Equal(t, [4]float64{-50, 0, 200, 100}, [4]float64{x, y, w, h})

	x, y, w, h = CoverRect(10, 40, 100)
	assert.Equal(t, [4]float64{0, -150, 100, 400}, [4]float64{x, y, w, h})
}

func TestRasterizeCover(t *testing.T) {
	// left half red, right half blue, twice as wide as high
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	pat := Rasterize(img, 10, Cover)
	// the center of the image is kept: still split in the middle
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pat.Image.RGBAAt(1, 5))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pat.Image.RGBAAt(8, 5))
	// fully covered
	assert.Equal(t, uint8(255), pat.Image.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), pat.Image.RGBAAt(9, 9).A)

	mean := Dominant(pat)
	assert.Equal(t, uint8(255), mean.A)
	assert.InDelta(t, 127, int(mean.R), 3)
}

func TestImagePatternRepeat(t *testing.T) {
	pat := Rasterize(checker(2, 2), 2, Stretch)
	_, _, _, a := pat.At(5, 5).RGBA()
	assert.Equal(t, uint32(0), a)

	pat.Repeat = true
	assert.Equal(t, pat.At(1, 1), pat.At(3, 5))
	assert.Equal(t, pat.At(0, 1), pat.At(-2, -1))
}

func TestFSLoader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker(3, 5)))
	fsys := fstest.MapFS{
		"img/checker.png": {Data: buf.Bytes()},
		"img/icon.svg": {Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 8">
			<rect x="0" y="0" width="16" height="8" fill="#fb141d"/></svg>`)},
		"img/broken.png": {Data: []byte("not a png")},
	}
	loader := FSLoader{FS: fsys}

	img, err := loader.Load(context.Background(), "img/checker.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 5), img.Bounds())

	img, err = loader.Load(context.Background(), "img/icon.svg")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	r, _, _, a := img.At(8, 4).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, uint32(0xfbfb), r)

	_, err = loader.Load(context.Background(), "img/broken.png")
	assert.Error(t, err)
	_, err = loader.Load(context.Background(), "img/missing.png")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx, "img/checker.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpecClone(t *testing.T) {
	dir := [4]float64{0, 0, 1, 1}
	s := Spec{Gradient: []Stop{{Color: "red"}, {Color: "blue"}}, GradientDirection: &dir}
	c := s.Clone()
	c.Gradient[0].Color = "lime"
	c.GradientDirection[0] = 5
	assert.Equal(t, "red", s.Gradient[0].Color)
	assert.Equal(t, 0., s.GradientDirection[0])
	assert.True(t, Spec{}.IsEmpty())
	assert.True(t, ImageSpec("a.png").NeedsLoad())
}
