package app

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/no111u3/automatic/internal/domain"
	"github.com/no111u3/automatic/internal/infra"
)

// ItemHandler receives per-item events from a list while it runs.
type ItemHandler interface {
	OnStart(index int, item domain.RunItem)
	OnComplete(result domain.RunResult)
}

type ListOption func(*listOptions)

type listOptions struct {
	handler     ItemHandler
	itemTimeout time.Duration
}

func WithHandler(h ItemHandler) ListOption {
	return func(opts *listOptions) { opts.handler = h }
}

// WithItemTimeout bounds every item. Zero means no bound.
func WithItemTimeout(d time.Duration) ListOption {
	return func(opts *listOptions) { opts.itemTimeout = d }
}

func newListOptions(opts []ListOption) listOptions {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// policy is what distinguishes the list variants: how each item's stdio
// is set up and what a non-successful item turns into.
type policy struct {
	configure func(*infra.Runner) *infra.Runner
	onFailure func(item domain.RunItem, status domain.Status) domain.RunStatus
}

func pipedStdio(r *infra.Runner) *infra.Runner {
	return r.SetStdin(infra.Piped()).SetStdout(infra.Piped()).SetStderr(infra.Piped())
}

func inheritedStdio(r *infra.Runner) *infra.Runner {
	return r.SetStdin(infra.Inherit()).SetStdout(infra.Inherit()).SetStderr(infra.Inherit())
}

func synthesizeExitError(item domain.RunItem, status domain.Status) domain.RunStatus {
	return domain.Failed(&domain.ExitError{Item: item, Status: status})
}

func propagateStatus(_ domain.RunItem, status domain.Status) domain.RunStatus {
	return domain.Ok(status)
}

// run executes items in order and stops at the first one that fails to
// start or does not succeed.
func (o listOptions) run(ctx context.Context, items []domain.RunItem, p policy) domain.RunStatus {
	for i, ri := range items {
		if err := ctx.Err(); err != nil {
			return domain.Failed(err)
		}

		result := o.runOne(ctx, i, ri, p.configure)
		if result.Error != nil {
			slog.Debug("aborting list", "item", i+1, "program", ri.Name, "error", result.Error)
			return domain.Failed(result.Error)
		}
		if !result.Status.Success() {
			slog.Debug("aborting list", "item", i+1, "program", ri.Name, "status", result.Status.String())
			return p.onFailure(ri, result.Status)
		}
	}
	return domain.Ok(domain.Succeeded())
}

func (o listOptions) runOne(ctx context.Context, index int, ri domain.RunItem, configure func(*infra.Runner) *infra.Runner) domain.RunResult {
	if o.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.itemTimeout)
		defer cancel()
	}
	if o.handler != nil {
		o.handler.OnStart(index, ri)
	}

	item := NewItem(ri)
	result := domain.RunResult{Index: index, Item: ri, StartedAt: time.Now()}
	_, result.Error = item.RunMap(ctx, configure).Status()
	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)
	if out := item.Output(); out != nil {
		result.Status = out.Status
		result.Stdout = out.Stdout
		result.Stderr = out.Stderr
	}

	if o.handler != nil {
		o.handler.OnComplete(result)
	}
	return result
}

// SequentialList runs items with their default piped stdio. A
// non-successful item aborts the list and its status is returned as-is,
// exit code included. Its script tag is "Promiscuous".
type SequentialList struct {
	items []domain.RunItem
	opts  listOptions
}

func NewSequentialList(items []domain.RunItem, opts ...ListOption) *SequentialList {
	return &SequentialList{items: slices.Clone(items), opts: newListOptions(opts)}
}

func (l *SequentialList) Items() []domain.RunItem { return slices.Clone(l.items) }

func (l *SequentialList) Run(ctx context.Context) domain.RunStatus {
	return l.opts.run(ctx, l.items, policy{onFailure: propagateStatus})
}

// SilentList captures all output and aborts with an *domain.ExitError
// on the first item that does not succeed.
type SilentList struct {
	items []domain.RunItem
	opts  listOptions
}

func NewSilentList(items []domain.RunItem, opts ...ListOption) *SilentList {
	return &SilentList{items: slices.Clone(items), opts: newListOptions(opts)}
}

func (l *SilentList) Items() []domain.RunItem { return slices.Clone(l.items) }

func (l *SilentList) Run(ctx context.Context) domain.RunStatus {
	return l.opts.run(ctx, l.items, policy{configure: pipedStdio, onFailure: synthesizeExitError})
}

// InteractiveList connects every item to the parent's terminal and fails
// like SilentList.
type InteractiveList struct {
	items []domain.RunItem
	opts  listOptions
}

func NewInteractiveList(items []domain.RunItem, opts ...ListOption) *InteractiveList {
	return &InteractiveList{items: slices.Clone(items), opts: newListOptions(opts)}
}

func (l *InteractiveList) Items() []domain.RunItem { return slices.Clone(l.items) }

func (l *InteractiveList) Run(ctx context.Context) domain.RunStatus {
	return l.opts.run(ctx, l.items, policy{configure: inheritedStdio, onFailure: synthesizeExitError})
}

var (
	_ domain.Runnable = (*SequentialList)(nil)
	_ domain.Runnable = (*SilentList)(nil)
	_ domain.Runnable = (*InteractiveList)(nil)
)
