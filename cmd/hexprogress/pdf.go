package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexpdf"
	"github.com/benoitkugler/hexprogress/hexwidget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "pdf",
		Short: "Render a widget to a PDF file",
		Long: `Pdf paints the widget on one page per value, as vector graphics.
By default, the only page shows the configured value.`,
		Usage: "hexprogress pdf [-config file] [-size px] [-values 0,0.5,1] -o out.pdf",
		Run:   runPDF,
	})
}

func runPDF(args []string) error {
	var (
		common commonFlags
		output string
		values string
	)
	fs := flag.NewFlagSet("pdf", flag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&output, "o", "", "output PDF file")
	fs.StringVar(&values, "values", "", "comma separated values, one page each")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return errors.New("missing output file (-o)")
	}
	pages, err := parseValues(values)
	if err != nil {
		return err
	}
	logger := newLogger(common.verbose)

	w, err := newWidget(context.Background(), &common, hexwidget.RasterSurface, logger, nil,
		hexwidget.WithoutAnimation())
	if err != nil {
		return err
	}
	defer w.Close()

	if len(pages) == 0 {
		v, _ := w.Value()
		pages = []float64{v}
	}
	return writePDF(w, pages, output)
}

// writePDF paints the fills resolved by w on a vector surface.
func writePDF(w *hexwidget.Widget, values []float64, output string) error {
	canvas, err := w.Canvas()
	if err != nil {
		return err
	}
	width, height := canvas.Size()
	doc := hexpdf.New(width, height)
	for _, v := range values {
		hexdraw.Paint(doc, w.Frame(v))
	}
	return doc.OutputFile(output)
}

func parseValues(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}
