package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/no111u3/automatic/internal/domain"
)

func newTestModel() *Model {
	list := domain.NewList(domain.ListSilent,
		domain.NewRunItem("true"),
		domain.NewRunItem("false"),
		domain.NewRunItem("echo", "never"),
	)
	m := NewModel("script.yaml", list)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestModelTracksItems(t *testing.T) {
	m := newTestModel()

	m.Update(startMsg{index: 0})
	if m.items[0].status != statusRunning {
		t.Fatalf("item 0 status = %v, want running", m.items[0].status)
	}

	m.Update(completeMsg{result: domain.RunResult{Index: 0, Stdout: []byte("line one\nline two\n"), Duration: time.Second}})
	m.Update(startMsg{index: 1})
	m.Update(completeMsg{result: domain.RunResult{Index: 1, Status: domain.Exited(1)}})
	m.Update(finishMsg{summary: domain.Summary{Total: 3, Completed: 2, Status: domain.Exited(1)}})

	if m.completed != 2 {
		t.Errorf("completed = %d, want 2", m.completed)
	}
	if m.items[0].status != statusSuccess || m.items[1].status != statusFailed {
		t.Errorf("statuses = %v, %v", m.items[0].status, m.items[1].status)
	}
	if m.items[2].status != statusSkipped {
		t.Errorf("unrun item status = %v, want skipped", m.items[2].status)
	}
	if len(m.logs[0]) != 2 {
		t.Errorf("logs for item 0 = %d lines, want 2", len(m.logs[0]))
	}
	if !m.finished {
		t.Error("model should be finished")
	}

	view := m.View()
	if !strings.Contains(view, "Aborted") {
		t.Errorf("view does not report the aborted run:\n%s", view)
	}
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || !m.quit {
		t.Error("q should quit")
	}
}

func TestModelEmptyList(t *testing.T) {
	m := NewModel("empty.yaml", domain.NewList(domain.ListPromiscuous))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(finishMsg{summary: domain.Summary{}})

	if view := m.View(); !strings.Contains(view, "Complete") {
		t.Errorf("view = %s", view)
	}
}
