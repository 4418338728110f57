//go:build unix

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/no111u3/automatic/internal/domain"
)

func TestNewScriptDispatch(t *testing.T) {
	failing := []domain.RunItem{domain.NewRunItem("false")}

	tests := []struct {
		kind    domain.ListKind
		wantErr bool
	}{
		{domain.ListPromiscuous, false},
		{domain.ListSilent, true},
		{domain.ListInteractive, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s, err := NewScript(domain.NewList(tt.kind, failing...))
			if err != nil {
				t.Fatalf("NewScript: %v", err)
			}
			if s.Kind() != tt.kind || s.Len() != 1 {
				t.Errorf("Kind() = %s, Len() = %d", s.Kind(), s.Len())
			}

			status, err := s.Run(context.Background()).Status()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNonzeroExit) {
					t.Errorf("expected ErrNonzeroExit, got (%v, %v)", status, err)
				}
				return
			}
			if err != nil || status.Success() {
				t.Errorf("expected a failing status, got (%v, %v)", status, err)
			}
		})
	}
}

func TestNewScriptUnknownKind(t *testing.T) {
	_, err := NewScript(domain.List{Kind: "Parallel"})
	if !errors.Is(err, domain.ErrInvalidScript) {
		t.Fatalf("expected ErrInvalidScript, got %v", err)
	}
}
