package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/benoitkugler/hexprogress/hexconfig"
	"github.com/benoitkugler/hexprogress/hexwidget"
	"golang.org/x/sync/errgroup"
)

func init() {
	RegisterCommand(&Command{
		Name:  "batch",
		Short: "Render the widgets listed in a batch file",
		Long: `Batch renders the jobs of a YAML or TOML batch file concurrently.
Each job has a name, an output file (.png or .pdf) and options:

  jobs:
    - name: upload
      output: upload.png
      options:
        size: 120
        value: 0.4`,
		Usage: "hexprogress batch [-j n] [-size px] batch.yaml",
		Run:   runBatch,
	})
}

func runBatch(args []string) error {
	var (
		size    float64
		jobs    int
		verbose bool
	)
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.Float64Var(&size, "size", 200, "size in pixels, for the jobs without one")
	fs.IntVar(&jobs, "j", runtime.NumCPU(), "number of jobs rendered concurrently")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected one batch file, got %d arguments", fs.NArg())
	}
	logger := newLogger(verbose)

	batch, err := hexconfig.LoadBatch(fs.Arg(0))
	if err != nil {
		return err
	}

	dir := filepath.Dir(fs.Arg(0))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)
	for _, job := range batch.Jobs {
		job := job
		g.Go(func() error {
			if err := renderJob(ctx, job, size, dir, logger.With("job", job.Name)); err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("batch done", "jobs", len(batch.Jobs))
	return nil
}

// renderJob owns its widget: each goroutine drives its own loop.
// Relative image sources are read from dir.
func renderJob(ctx context.Context, job hexconfig.Job, size float64, dir string, logger *slog.Logger) error {
	opts, err := hexwidget.DecodeOptions(job.Options)
	if err != nil {
		return err
	}
	opts = append(opts, hexwidget.WithoutAnimation())

	w := hexwidget.New(hexwidget.FixedContainer{Width: size, Height: size}, nil,
		hexwidget.WithLogger(logger), hexwidget.WithLoader(relativeLoader(dir)))
	defer w.Close()
	if err := w.Init(opts...); err != nil {
		return err
	}
	if err := settle(ctx, w); err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(job.Output)); ext {
	case ".png":
		err = savePNG(w, job.Output)
	case ".pdf":
		v, _ := w.Value()
		err = writePDF(w, []float64{v}, job.Output)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err != nil {
		return err
	}
	logger.Debug("job rendered", "output", job.Output)
	return nil
}
