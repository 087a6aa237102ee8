package hexwidget

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benoitkugler/hexprogress/hexanim"
	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, m map[string]any) Options {
	t.Helper()
	opts, err := DecodeOptions(m)
	require.NoError(t, err)
	out := DefaultOptions()
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

func TestDecodeOptions(t *testing.T) {
	var m map[string]any
	err := json.Unmarshal([]byte(`{
		"size": "parent",
		"value": 0.5,
		"startAngle": 0,
		"lineWidth": "auto",
		"lineCap": "butt",
		"clip": true,
		"background": {"color": "#fff000", "image": "bg.png"},
		"lineBackFill": "rgba(0, 0, 0, .2)",
		"lineFrontFill": {"gradient": ["red", ["blue", 0.3]], "gradientAngle": 1.5},
		"animation": {"duration": 500, "easing": "linear"},
		"animationStartValue": "0.1"
	}`), &m)
	require.NoError(t, err)

	opts := decode(t, m)
	assert.Equal(t, 0., opts.Size)
	assert.Equal(t, 0.5, opts.Value)
	assert.Equal(t, 0., opts.StartAngle)
	assert.Equal(t, 0., opts.LineWidth)
	assert.Equal(t, hexdraw.ButtCap, opts.LineCap)
	assert.True(t, opts.Clip)
	assert.Equal(t, &hexfill.Spec{Color: "#fff000", Image: "bg.png"}, opts.Background)
	assert.Equal(t, hexfill.SolidSpec("rgba(0, 0, 0, .2)"), opts.LineBackFill)
	assert.Equal(t, hexfill.Spec{
		Gradient:      []hexfill.Stop{{Color: "red"}, hexfill.At("blue", 0.3)},
		GradientAngle: 1.5,
	}, opts.LineFrontFill)
	assert.Equal(t, &hexanim.Config{Duration: 500 * time.Millisecond, Easing: "linear"}, opts.Animation)
	assert.Equal(t, 0.1, opts.AnimationStartValue)
}

func TestDecodeAnimation(t *testing.T) {
	assert.Nil(t, decode(t, map[string]any{"animation": false}).Animation)
	assert.Equal(t, hexanim.DefaultDuration, decode(t, map[string]any{"animation": true}).Animation.Duration)
	opts := decode(t, map[string]any{"animation": map[string]any{"duration": "1.5s"}})
	assert.Equal(t, 1500*time.Millisecond, opts.Animation.Duration)
	assert.Equal(t, hexanim.HexagonEasing, opts.Animation.Easing)
}

func TestDecodeFill(t *testing.T) {
	spec, err := DecodeFill(`{"gradient": ["#fb141d", "#fb0c58"], "gradientDirection": [0, 0, 100, 100]}`)
	require.NoError(t, err)
	assert.Equal(t, &[4]float64{0, 0, 100, 100}, spec.GradientDirection)
	assert.Len(t, spec.Gradient, 2)

	spec, err = DecodeFill(map[string]any{"image": "a.png", "color": "red"})
	require.NoError(t, err)
	assert.Equal(t, hexfill.Spec{Image: "a.png", Color: "red"}, spec)

	assert.Nil(t, decode(t, map[string]any{"background": nil}).Background)
	assert.Nil(t, decode(t, map[string]any{"background": false}).Background)
}

func TestDecodeErrors(t *testing.T) {
	for _, m := range []map[string]any{
		{"unknown": 1},
		{"size": "big"},
		{"value": true},
		{"lineCap": "arc"},
		{"clip": 3},
		{"lineFrontFill": 12},
		{"lineFrontFill": map[string]any{"gradientDirection": []any{1., 2.}}},
		{"lineFrontFill": map[string]any{"gradient": []any{[]any{"red"}}}},
		{"lineFrontFill": map[string]any{"pattern": "x"}},
		{"lineFrontFill": "{not json"},
		{"animation": map[string]any{"easing": "bounce"}},
		{"animation": map[string]any{"duration": "soon"}},
		{"animation": "yes"},
	} {
		_, err := DecodeOptions(m)
		assert.Error(t, err, m)
		assert.True(t, IsKind(err, KindConfiguration), m)
	}

	_, err := DecodeOptions(map[string]any{"animation": map[string]any{"easing": "bounce"}})
	assert.True(t, errors.Is(err, hexanim.ErrUnknownEasing))
}

func TestDecodeNumbers(t *testing.T) {
	for _, v := range []any{2, int64(2), uint64(2), float32(2), 2., json.Number("2"), " 2 "} {
		f, err := toFloat(v)
		require.NoError(t, err)
		assert.Equal(t, 2., f)
	}
}
