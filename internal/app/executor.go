package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/no111u3/automatic/internal/domain"
)

// ResultHandler receives item events and the final summary of a run.
type ResultHandler interface {
	ItemHandler
	OnFinish(summary domain.Summary)
}

type Executor interface {
	Execute(ctx context.Context, cfg *domain.RunConfig, list domain.List, handler ResultHandler) error
}

// ScriptExecutor runs one loaded list under the policy its tag selects.
type ScriptExecutor struct{}

func NewScriptExecutor() *ScriptExecutor {
	return &ScriptExecutor{}
}

// progress counts completed items on their way to the handler.
type progress struct {
	next      ItemHandler
	completed atomic.Int64
}

func (p *progress) OnStart(index int, item domain.RunItem) {
	p.next.OnStart(index, item)
}

func (p *progress) OnComplete(result domain.RunResult) {
	p.completed.Add(1)
	p.next.OnComplete(result)
}

// Execute returns the error that aborted the list, or an
// *domain.UnsuccessfulError when the list finished with a failing status.
func (e *ScriptExecutor) Execute(ctx context.Context, cfg *domain.RunConfig, list domain.List, handler ResultHandler) error {
	tracker := &progress{next: handler}
	script, err := NewScript(list, WithHandler(tracker), WithItemTimeout(cfg.ItemTimeout))
	if err != nil {
		return err
	}

	summary := domain.Summary{
		RunID:      uuid.NewString(),
		ScriptPath: cfg.ScriptPath,
		Kind:       list.Kind,
		Total:      script.Len(),
	}

	start := time.Now()
	status, err := script.Run(ctx).Status()
	summary.Duration = time.Since(start)
	summary.Completed = int(tracker.completed.Load())
	summary.Status = domain.StatusOf(status)
	summary.Error = err

	handler.OnFinish(summary)

	if err != nil {
		return err
	}
	if !summary.Status.Success() {
		return &domain.UnsuccessfulError{Status: summary.Status}
	}
	return nil
}

func NewExecutor() Executor {
	return NewScriptExecutor()
}
