package app

import (
	"context"
	"fmt"

	"github.com/no111u3/automatic/internal/domain"
)

// Script is a loaded List bound to the policy its tag selects.
type Script struct {
	list     domain.List
	runnable domain.Runnable
}

var _ domain.Runnable = (*Script)(nil)

func NewScript(list domain.List, opts ...ListOption) (*Script, error) {
	var r domain.Runnable
	switch list.Kind {
	case domain.ListPromiscuous:
		r = NewSequentialList(list.Items, opts...)
	case domain.ListSilent:
		r = NewSilentList(list.Items, opts...)
	case domain.ListInteractive:
		r = NewInteractiveList(list.Items, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown list kind %q", domain.ErrInvalidScript, list.Kind)
	}
	return &Script{list: list, runnable: r}, nil
}

func (s *Script) Kind() domain.ListKind { return s.list.Kind }

func (s *Script) Len() int { return len(s.list.Items) }

func (s *Script) Run(ctx context.Context) domain.RunStatus {
	return s.runnable.Run(ctx)
}
