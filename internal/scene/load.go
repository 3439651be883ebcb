package scene

import (
	"context"

	"go.uber.org/atomic"
)

// activationThreshold is the loader progress at which a scene is considered
// ready and only waits for activation.
const activationThreshold = 0.9

// Load tracks one asynchronous scene load.
type Load struct {
	name     string
	progress atomic.Float64
	done     chan struct{}
	err      error
	activate Activate
	applied  atomic.Bool
}

func newLoad(name string) *Load {
	return &Load{name: name, done: make(chan struct{})}
}

// Scene returns the scene name.
func (l *Load) Scene() string {
	return l.name
}

// Progress reports load progress normalised to [0, 1].
func (l *Load) Progress() float64 {
	return l.progress.Load()
}

// Done is closed when the loader returns.
func (l *Load) Done() <-chan struct{} {
	return l.done
}

// Err is the loader error. Valid after Done is closed.
func (l *Load) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Activated reports whether the scene has been swapped in.
func (l *Load) Activated() bool {
	return l.applied.Load()
}

// Wait blocks until the loader returns or ctx ends.
func (l *Load) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// report stores raw loader progress, normalised so the activation threshold
// reads as fully loaded.
func (l *Load) report(raw float64) float64 {
	p := raw / activationThreshold
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	l.progress.Store(p)
	return p
}
