package hexanim

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Loop is a task queue drained by a single goroutine,
// which owns the widgets bound to it.
// Post may be called from any goroutine, the other methods
// only from the owner.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues f, to be run by the next Drain.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake is signaled after a Post.
func (l *Loop) Wake() <-chan struct{} { return l.wake }

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Drain runs the queued tasks in order, including those
// posted while draining, and returns how many were run.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		if len(tasks) == 0 {
			return n
		}
		for _, task := range tasks {
			task()
		}
		n += len(tasks)
	}
}

// RunConfig configures Run.
type RunConfig struct {
	Hz    int    // frames per second, 60 if zero
	Ticks uint64 // stop after this many frames, if not zero
}

// Run calls frame at a fixed rate until ctx is done, frame returns false
// or cfg.Ticks frames have been run. Posted tasks are run between frames.
func (l *Loop) Run(ctx context.Context, cfg RunConfig, frame func() bool) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid frame rate: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		case <-t.C:
			l.Drain()
			if !frame() {
				return nil
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
