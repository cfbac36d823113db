// Package workers provides a small aggregate for managing background
// workers with a shared lifecycle.
package workers

import "context"

// Worker is a background component with an explicit start/stop lifecycle.
// Start must not block; Stop must wait until the worker has fully exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Group starts and stops a set of workers together. Stop runs in reverse
// start order.
type Group struct {
	workers []Worker
}

// NewGroup returns a Group over the given workers. Nil entries are skipped,
// which lets callers pass optional workers unconditionally.
func NewGroup(workers ...Worker) *Group {
	g := &Group{}
	for _, w := range workers {
		if w != nil {
			g.workers = append(g.workers, w)
		}
	}
	return g
}

// Start starts every worker in order.
func (g *Group) Start(ctx context.Context) {
	for _, w := range g.workers {
		w.Start(ctx)
	}
}

// Stop stops every worker in reverse order and waits for each to exit.
func (g *Group) Stop() {
	for i := len(g.workers) - 1; i >= 0; i-- {
		g.workers[i].Stop()
	}
}
