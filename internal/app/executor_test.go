//go:build unix

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/no111u3/automatic/internal/domain"
)

func TestExecutorSummary(t *testing.T) {
	rec := &recorder{}
	cfg := &domain.RunConfig{ScriptPath: "ok.yaml"}
	list := domain.NewList(domain.ListSilent, items("true", "true")...)

	if err := NewExecutor().Execute(context.Background(), cfg, list, rec); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if rec.finished != 1 || rec.summary == nil {
		t.Fatalf("OnFinish called %d times", rec.finished)
	}
	s := rec.summary
	if !s.Success() || s.Total != 2 || s.Completed != 2 || s.Kind != domain.ListSilent || s.ScriptPath != "ok.yaml" {
		t.Errorf("summary = %+v", s)
	}
	if _, err := uuid.Parse(s.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", s.RunID, err)
	}
}

func TestExecutorSequentialFailure(t *testing.T) {
	rec := &recorder{}
	list := domain.NewList(domain.ListPromiscuous, items("true", "false", "true")...)

	err := NewExecutor().Execute(context.Background(), &domain.RunConfig{}, list, rec)
	var unsuccessful *domain.UnsuccessfulError
	if !errors.As(err, &unsuccessful) {
		t.Fatalf("expected UnsuccessfulError, got %v", err)
	}
	if got, want := err.Error(), "unsuccessful run with error code: 1"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if rec.summary.Completed != 2 || rec.summary.Total != 3 {
		t.Errorf("summary = %+v", rec.summary)
	}
}

func TestExecutorSilentFailure(t *testing.T) {
	rec := &recorder{}
	list := domain.NewList(domain.ListSilent, items("false")...)

	err := NewExecutor().Execute(context.Background(), &domain.RunConfig{}, list, rec)
	if !errors.Is(err, domain.ErrNonzeroExit) {
		t.Fatalf("expected ErrNonzeroExit, got %v", err)
	}
	if rec.summary.Error == nil || rec.summary.Success() {
		t.Errorf("summary should carry the error: %+v", rec.summary)
	}
}
