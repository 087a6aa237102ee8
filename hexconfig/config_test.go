package hexconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexwidget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(opts []hexwidget.Option) hexwidget.Options {
	out := hexwidget.DefaultOptions()
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

const yamlOptions = `
size: 120
value: 0.75
lineCap: square
clip: true
background:
  color: "#fff000"
lineFrontFill:
  gradient: ["#fb141d", ["#fb0c58", 0.8]]
animation: false
`

const tomlOptions = `
size = 120
value = 0.75
lineCap = "square"
clip = true
animation = false

[background]
color = "#fff000"

[lineFrontFill]
gradient = ["#fb141d", ["#fb0c58", 0.8]]
`

func TestDecode(t *testing.T) {
	for _, test := range []struct {
		data   string
		format Format
	}{
		{yamlOptions, YAML},
		{tomlOptions, TOML},
	} {
		opts, err := Decode([]byte(test.data), test.format)
		require.NoError(t, err, test.format)
		o := apply(opts)
		assert.Equal(t, 120., o.Size)
		assert.Equal(t, 0.75, o.Value)
		assert.Equal(t, hexdraw.SquareCap, o.LineCap)
		assert.True(t, o.Clip)
		assert.Nil(t, o.Animation)
		require.NotNil(t, o.Background)
		assert.Equal(t, "#fff000", o.Background.Color)
		require.Len(t, o.LineFrontFill.Gradient, 2)
		assert.Equal(t, 0.8, o.LineFrontFill.Gradient[1].Offset)
	}

	_, err := Decode([]byte("size: [1"), YAML)
	assert.Error(t, err)
	_, err = Decode([]byte("color: 1"), YAML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlOptions), 0o644))
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, apply(opts).Value)

	_, err = Load(filepath.Join(dir, "widget.json"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jobs:
  - name: half
    output: half.png
    options: {value: 0.5, animation: false}
  - name: full
    output: full.png
    options: {value: 1}
`), 0o644))
	b, err := LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, b.Jobs, 2)
	assert.Equal(t, "full.png", b.Jobs[1].Output)

	require.NoError(t, os.WriteFile(path, []byte(`
jobs:
  - name: bad
    output: bad.png
    options: {lineCap: arc}
`), 0o644))
	_, err = LoadBatch(path)
	assert.True(t, hexwidget.IsKind(err, hexwidget.KindConfiguration))

	require.NoError(t, os.WriteFile(path, []byte("jobs: []"), 0o644))
	_, err = LoadBatch(path)
	assert.Error(t, err)
}
