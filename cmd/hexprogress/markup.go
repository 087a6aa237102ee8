package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/benoitkugler/hexprogress/hexmarkup"
	"github.com/benoitkugler/hexprogress/hexwidget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "markup",
		Short: "Render the widgets declared in an HTML page",
		Long: `Markup renders each element of an HTML page having the marker class
to <dir>/<id>.png (or <dir>/widget-<n>.png for elements without id).
The options are read from the data-* attributes of the elements,
and their size from the width and height attributes.`,
		Usage: "hexprogress markup [-class name] [-dir out] page.html",
		Run:   runMarkup,
	})
}

func runMarkup(args []string) error {
	var (
		class, dir, contentType string
		verbose                 bool
	)
	fs := flag.NewFlagSet("markup", flag.ContinueOnError)
	fs.StringVar(&class, "class", hexmarkup.DefaultClass, "class of the widget elements")
	fs.StringVar(&dir, "dir", ".", "output directory")
	fs.StringVar(&contentType, "content-type", "text/html", "content type, used to detect the encoding")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected one HTML file")
	}
	logger := newLogger(verbose)

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	elements, err := hexmarkup.Parse(f, contentType, class)
	f.Close()
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		logger.Warn("no widget found", "class", class)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for i, el := range elements {
		name := el.ID
		if name == "" {
			name = fmt.Sprintf("widget-%d", i)
		}
		output := filepath.Join(dir, name+".png")
		if err := renderElement(el, output, filepath.Dir(fs.Arg(0)), logger.With("element", name)); err != nil {
			return fmt.Errorf("element %s: %w", name, err)
		}
	}
	return nil
}

// renderElement reads relative image sources from base.
func renderElement(el hexmarkup.Element, output, base string, logger *slog.Logger) error {
	opts, err := el.Options()
	if err != nil {
		return err
	}
	w := hexwidget.New(el, nil, hexwidget.WithLogger(logger), hexwidget.WithLoader(relativeLoader(base)))
	defer w.Close()
	if err := w.Init(append(opts, hexwidget.WithoutAnimation())...); err != nil {
		return err
	}
	if err := settle(context.Background(), w); err != nil {
		return err
	}
	if err := savePNG(w, output); err != nil {
		return err
	}
	logger.Info("widget rendered", "output", output)
	return nil
}
