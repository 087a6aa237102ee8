package main

import (
	"context"
	"errors"
	"flag"

	"github.com/benoitkugler/hexprogress/hexraster"
	"github.com/benoitkugler/hexprogress/hexwidget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a widget to a PNG file",
		Long:  "Render paints the final state of a widget, without animation, to a PNG file.",
		Usage: "hexprogress render [-config file] [-size px] [-value v] -o out.png",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	var (
		common commonFlags
		output string
	)
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&output, "o", "", "output PNG file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return errors.New("missing output file (-o)")
	}
	logger := newLogger(common.verbose)

	w, err := newWidget(context.Background(), &common, hexwidget.RasterSurface, logger, nil,
		hexwidget.WithoutAnimation())
	if err != nil {
		return err
	}
	defer w.Close()
	return savePNG(w, output)
}

func savePNG(w *hexwidget.Widget, output string) error {
	canvas, err := w.Canvas()
	if err != nil {
		return err
	}
	raster, ok := canvas.(*hexraster.Surface)
	if !ok {
		return errors.New("widget is not backed by a raster surface")
	}
	return raster.SavePNG(output)
}
