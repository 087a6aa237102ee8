// Command hexview shows a widget in a window, for trying options
// and animations interactively.
//
// Keys: up and down change the value by a tenth, 0 to 9 set it
// to n/10, enter sets it to 1, space replays the initial animation,
// escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/benoitkugler/hexprogress/hexconfig"
	"github.com/benoitkugler/hexprogress/hexraster"
	"github.com/benoitkugler/hexprogress/hexwidget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		config  string
		size    float64
		verbose bool
	)
	fs := flag.NewFlagSet("hexview", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "YAML or TOML file with the widget options")
	fs.Float64Var(&size, "size", 300, "window size in pixels, used when the configuration has none")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var opts []hexwidget.Option
	if config != "" {
		var err error
		if opts, err = hexconfig.Load(config); err != nil {
			return err
		}
	}
	w := hexwidget.New(hexwidget.FixedContainer{Width: size, Height: size}, nil, hexwidget.WithLogger(logger))
	defer w.Close()
	if err := w.Init(opts...); err != nil {
		return err
	}
	w.AddListener(func(e hexwidget.Event) {
		if e.Kind != hexwidget.EventProgress {
			logger.Debug("widget event", "kind", e.Kind, "value", e.Value)
		}
	})

	g := &viewGame{w: w, logger: logger}
	px, _ := w.Size()
	ebiten.SetWindowTitle("hexview")
	ebiten.SetWindowSize(int(px), int(px))
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type viewGame struct {
	w      *hexwidget.Widget
	logger *slog.Logger
	img    *ebiten.Image
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// nextValue returns the value requested by the keyboard, if any.
func nextValue(current float64) (float64, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return min(1, current+0.1), true
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return max(0, current-0.1), true
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return 1, true
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			return float64(i) / 10, true
		}
	}
	return 0, false
}

func (g *viewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.w.Init(); err != nil {
			return err
		}
	}
	current, err := g.w.Value()
	if err != nil {
		return err
	}
	if v, ok := nextValue(current); ok {
		g.logger.Info("value changed", "value", v)
		if err := g.w.SetValue(v); err != nil {
			return err
		}
	}
	g.w.Tick()
	return nil
}

func (g *viewGame) Draw(screen *ebiten.Image) {
	canvas, err := g.w.Canvas()
	if err != nil {
		return
	}
	raster := canvas.(*hexraster.Surface)
	src := raster.Image()
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	if g.img == nil || g.img.Bounds().Dx() != width || g.img.Bounds().Dy() != height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(width, height)
	}
	g.img.WritePixels(src.Pix)

	screen.Fill(color.White)
	screen.DrawImage(g.img, nil)
}

func (g *viewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	canvas, err := g.w.Canvas()
	if err != nil {
		return outsideWidth, outsideHeight
	}
	return canvas.Size()
}
