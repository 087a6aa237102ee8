package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/benoitkugler/hexprogress/hexconfig"
	"github.com/benoitkugler/hexprogress/hexfill"
	"github.com/benoitkugler/hexprogress/hexwidget"
)

// loadTimeout bounds the wait for the images of a widget.
const loadTimeout = 30 * time.Second

// options merges the configuration file and the flags.
func (c *commonFlags) options() ([]hexwidget.Option, error) {
	var opts []hexwidget.Option
	if c.config != "" {
		fromFile, err := hexconfig.Load(c.config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fromFile...)
	}
	if c.value >= 0 && c.value <= 1 {
		opts = append(opts, hexwidget.WithValue(c.value))
	}
	return opts, nil
}

// newWidget configures a widget sized by the flags, and waits
// for its images.
func newWidget(ctx context.Context, c *commonFlags, factory hexwidget.SurfaceFactory,
	logger *slog.Logger, settings []hexwidget.Setting, opts ...hexwidget.Option,
) (*hexwidget.Widget, error) {
	base, err := c.options()
	if err != nil {
		return nil, err
	}
	settings = append(settings, hexwidget.WithLogger(logger))
	if c.config != "" {
		settings = append(settings, hexwidget.WithLoader(relativeLoader(filepath.Dir(c.config))))
	}
	w := hexwidget.New(hexwidget.FixedContainer{Width: c.size, Height: c.size}, factory, settings...)
	if err := w.Init(append(base, opts...)...); err != nil {
		return nil, err
	}
	if err := settle(ctx, w); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func settle(ctx context.Context, w *hexwidget.Widget) error {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	if err := w.Settle(ctx); err != nil {
		return fmt.Errorf("waiting for images: %w", err)
	}
	return nil
}

// relativeLoader reads image files, resolving relative
// sources against dir.
func relativeLoader(dir string) hexfill.Loader {
	return hexfill.LoaderFunc(func(ctx context.Context, src string) (image.Image, error) {
		if !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}
		return hexfill.FSLoader{}.Load(ctx, src)
	})
}
