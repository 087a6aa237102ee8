package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	"github.com/benoitkugler/hexprogress/hexanim"
	"github.com/benoitkugler/hexprogress/hexraster"
	"github.com/benoitkugler/hexprogress/hexwidget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "animate",
		Short: "Render the animation of a widget to a GIF file",
		Long: `Animate records the animation from the start value to the value,
one frame every 1/fps second, and writes it as an animated GIF.
The frames are flattened over a white background.`,
		Usage: "hexprogress animate [-config file] [-size px] [-value v] [-fps n] [-easing name] -o out.gif",
		Run:   runAnimate,
	})
}

// maxFrames bounds the length of a recording.
const maxFrames = 2000

func runAnimate(args []string) error {
	var (
		common   commonFlags
		output   string
		fps      int
		easing   string
		duration time.Duration
	)
	fs := flag.NewFlagSet("animate", flag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&output, "o", "", "output GIF file")
	fs.IntVar(&fps, "fps", 25, "frames per second")
	fs.StringVar(&easing, "easing", "", "easing curve, overriding the configuration")
	fs.DurationVar(&duration, "duration", 0, "animation duration, overriding the configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return errors.New("missing output file (-o)")
	}
	if fps <= 0 || fps > 100 {
		return fmt.Errorf("invalid frame rate %d", fps)
	}
	logger := newLogger(common.verbose)

	clock := hexanim.NewManualClock(time.Unix(0, 0))
	w, err := newWidget(context.Background(), &common, hexwidget.RasterSurface, logger,
		[]hexwidget.Setting{hexwidget.WithClock(clock)})
	if err != nil {
		return err
	}
	defer w.Close()

	// apply the overrides on top of the configured animation
	if easing != "" || duration > 0 {
		cfg := hexanim.DefaultConfig()
		if anim := w.Options().Animation; anim != nil {
			cfg = *anim
		}
		if easing != "" {
			cfg.Easing = easing
		}
		if duration > 0 {
			cfg.Duration = duration
		}
		if err := w.Init(hexwidget.WithAnimation(cfg)); err != nil {
			return err
		}
	}

	canvas, err := w.Canvas()
	if err != nil {
		return err
	}
	raster, ok := canvas.(*hexraster.Surface)
	if !ok {
		return errors.New("widget is not backed by a raster surface")
	}

	step := time.Second / time.Duration(fps)
	delay := 100 / fps
	anim := &gif.GIF{}
	record := func() {
		anim.Image = append(anim.Image, toPaletted(raster.Image()))
		anim.Delay = append(anim.Delay, delay)
	}

	record()
	if w.Options().Animation != nil {
		// one frame per tick: the clock is advanced by a frame duration,
		// and the resulting step recorded
		err := w.Loop().Run(context.Background(), hexanim.RunConfig{Hz: fps, Ticks: maxFrames - 1}, func() bool {
			clock.Advance(step)
			running := w.Tick()
			record()
			return running
		})
		if err != nil {
			return err
		}
	}
	logger.Debug("animation recorded", "frames", len(anim.Image), "output", output)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", output, err)
	}
	return f.Close()
}

// toPaletted flattens img over white and dithers it.
func toPaletted(img *image.RGBA) *image.Paletted {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	out := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(out, bounds, flat, bounds.Min)
	return out
}
