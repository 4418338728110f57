package app

import (
	"context"

	"github.com/no111u3/automatic/internal/domain"
	"github.com/no111u3/automatic/internal/infra"
)

// Item binds a RunItem to the executor. Each run builds a fresh Runner.
type Item struct {
	domain.RunItem
	last *infra.Output
}

var _ domain.Runnable = (*Item)(nil)

func NewItem(ri domain.RunItem) *Item {
	return &Item{RunItem: ri}
}

// Runner returns a new executor configured with the default piped stdio.
func (i *Item) Runner() *infra.Runner {
	return infra.NewRunner(i.Name, i.Args...)
}

// Run executes the item synchronously with piped stdio.
func (i *Item) Run(ctx context.Context) domain.RunStatus {
	return i.RunMap(ctx, nil)
}

// RunMap lets configure adjust the Runner, usually its stdio, before the
// item runs synchronously.
func (i *Item) RunMap(ctx context.Context, configure func(*infra.Runner) *infra.Runner) domain.RunStatus {
	r := i.Runner()
	if configure != nil {
		r = configure(r)
	}
	out, err := r.Run(ctx)
	i.last = out
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Ok(out.Status)
}

// RunAsync starts the item and returns the process handle.
func (i *Item) RunAsync(ctx context.Context) (*infra.Runned, error) {
	return i.Runner().RunAsync(ctx)
}

// Output returns what the last synchronous run captured, or nil.
func (i *Item) Output() *infra.Output {
	return i.last
}
