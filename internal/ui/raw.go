package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/no111u3/automatic/internal/domain"
)

// RawFormatter prints one progress line per item to stderr. With verbose
// output it also replays what each item captured.
type RawFormatter struct {
	stdout    io.Writer
	stderr    io.Writer
	verbosity domain.VerbosityLevel
}

func NewRawFormatter(stdout, stderr io.Writer, verbosity domain.VerbosityLevel) *RawFormatter {
	return &RawFormatter{stdout: stdout, stderr: stderr, verbosity: verbosity}
}

func (f *RawFormatter) OnStart(index int, item domain.RunItem) {
	if f.verbosity == domain.VerbositySilent {
		return
	}
	fmt.Fprintf(f.stderr, "[ Item %d: %s ]\n", index+1, item)
}

func (f *RawFormatter) OnComplete(result domain.RunResult) {
	if f.verbosity == domain.VerbosityVerbose {
		f.stdout.Write(result.Stdout)
		f.stderr.Write(result.Stderr)
	}
	if f.verbosity == domain.VerbositySilent {
		return
	}

	fmt.Fprintf(f.stderr, "[ Item %d completed in %v", result.Index+1, result.Duration.Round(time.Millisecond))
	switch {
	case result.Error != nil:
		fmt.Fprintf(f.stderr, " - FAILED: %v", result.Error)
	case !result.Status.Success():
		fmt.Fprintf(f.stderr, " - FAILED: %s", result.Status)
	default:
		fmt.Fprint(f.stderr, " - SUCCESS")
	}
	fmt.Fprintln(f.stderr, " ]")
}

func (f *RawFormatter) OnFinish(summary domain.Summary) {
	if f.verbosity == domain.VerbositySilent {
		return
	}
	state := "SUCCESS"
	if !summary.Success() {
		state = "FAILED"
	}
	fmt.Fprintf(f.stderr, "[ %s %s: %d/%d items in %v - %s ]\n",
		summary.Kind, summary.ScriptPath, summary.Completed, summary.Total,
		summary.Duration.Round(time.Millisecond), state)
}
