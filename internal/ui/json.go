package ui

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/no111u3/automatic/internal/domain"
)

type ResultJSON struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Args     []string `json:"args"`
	Success  bool     `json:"success"`
	ExitCode *int     `json:"exit_code,omitempty"`
	Signal   string   `json:"signal,omitempty"`
	Duration float64  `json:"duration_ms"`
	Stdout   string   `json:"stdout,omitempty"`
	Stderr   string   `json:"stderr,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type ReportJSON struct {
	RunID     string       `json:"run_id"`
	Script    string       `json:"script"`
	Kind      string       `json:"kind"`
	Success   bool         `json:"success"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	ExitCode  *int         `json:"exit_code,omitempty"`
	Duration  float64      `json:"duration_ms"`
	Error     string       `json:"error,omitempty"`
	Results   []ResultJSON `json:"results"`
}

// JSONFormatter collects results and writes a single report when the run
// finishes.
type JSONFormatter struct {
	out     io.Writer
	results []domain.RunResult
	mu      sync.Mutex
}

func NewJSONFormatter(out io.Writer) *JSONFormatter {
	return &JSONFormatter{
		out:     out,
		results: make([]domain.RunResult, 0),
	}
}

func (f *JSONFormatter) OnStart(index int, item domain.RunItem) {}

func (f *JSONFormatter) OnComplete(result domain.RunResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

func (f *JSONFormatter) OnFinish(summary domain.Summary) {
	f.mu.Lock()
	defer f.mu.Unlock()

	report := ReportJSON{
		RunID:     summary.RunID,
		Script:    summary.ScriptPath,
		Kind:      string(summary.Kind),
		Success:   summary.Success(),
		Total:     summary.Total,
		Completed: summary.Completed,
		ExitCode:  codeOf(summary.Status),
		Duration:  float64(summary.Duration.Milliseconds()),
		Results:   make([]ResultJSON, 0, len(f.results)),
	}
	if summary.Error != nil {
		report.Error = summary.Error.Error()
	}

	for _, res := range f.results {
		args := res.Item.Args
		if args == nil {
			args = []string{}
		}
		resultJSON := ResultJSON{
			Index:    res.Index,
			Name:     res.Item.Name,
			Args:     args,
			Success:  res.Success(),
			ExitCode: codeOf(res.Status),
			Duration: float64(res.Duration.Milliseconds()),
			Stdout:   string(res.Stdout),
			Stderr:   string(res.Stderr),
		}
		resultJSON.Signal, _ = res.Status.Signal()
		if res.Error != nil {
			resultJSON.Error = res.Error.Error()
		}
		report.Results = append(report.Results, resultJSON)
	}

	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		slog.Error("encode json report", "error", err)
	}
}

func codeOf(s domain.Status) *int {
	if code, ok := s.Code(); ok {
		return &code
	}
	return nil
}
