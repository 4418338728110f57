package domain

import (
	"time"
)

type VerbosityLevel string
type OutputFormat string

const (
	VerbositySilent  VerbosityLevel = "silent"
	VerbosityNormal  VerbosityLevel = "normal"
	VerbosityVerbose VerbosityLevel = "verbose"
)

const (
	FormatTUI  OutputFormat = "tui"
	FormatJSON OutputFormat = "json"
	FormatRaw  OutputFormat = "raw"
)

type RunConfig struct {
	ScriptPath  string
	Verbosity   VerbosityLevel
	Format      OutputFormat
	ItemTimeout time.Duration
}

// RunResult describes one executed list item.
type RunResult struct {
	Index      int
	Item       RunItem
	Status     Status
	Stdout     []byte
	Stderr     []byte
	Duration   time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Error      error
}

func (r RunResult) Success() bool {
	return r.Error == nil && r.Status.Success()
}

// Summary is the aggregate outcome of one script run.
type Summary struct {
	RunID      string
	ScriptPath string
	Kind       ListKind
	Total      int
	Completed  int
	Status     Status
	Error      error
	Duration   time.Duration
}

func (s Summary) Success() bool {
	return s.Error == nil && s.Status.Success()
}
