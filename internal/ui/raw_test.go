package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/no111u3/automatic/internal/domain"
)

func TestRawFormatterProgress(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := NewRawFormatter(&stdout, &stderr, domain.VerbosityNormal)

	item := domain.NewRunItem("echo", "hi")
	f.OnStart(0, item)
	f.OnComplete(domain.RunResult{Index: 0, Item: item, Stdout: []byte("hi\n"), Duration: time.Millisecond})
	f.OnStart(1, domain.NewRunItem("false"))
	f.OnComplete(domain.RunResult{Index: 1, Item: domain.NewRunItem("false"), Status: domain.Exited(1)})
	f.OnFinish(domain.Summary{Kind: domain.ListSilent, ScriptPath: "s.yaml", Total: 3, Completed: 2, Status: domain.Exited(1)})

	got := stderr.String()
	for _, want := range []string{
		"[ Item 1: echo hi ]",
		"[ Item 1 completed in 1ms - SUCCESS ]",
		"[ Item 2 completed in 0s - FAILED: exit code 1 ]",
		"[ Silent s.yaml: 2/3 items in 0s - FAILED ]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stderr missing %q:\n%s", want, got)
		}
	}
	if stdout.Len() != 0 {
		t.Errorf("captured output replayed at normal verbosity: %q", stdout.String())
	}
}

func TestRawFormatterVerboseReplaysOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := NewRawFormatter(&stdout, &stderr, domain.VerbosityVerbose)

	f.OnComplete(domain.RunResult{Item: domain.NewRunItem("sh"), Stdout: []byte("out\n"), Stderr: []byte("err\n")})

	if stdout.String() != "out\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "err\n") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRawFormatterSilent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := NewRawFormatter(&stdout, &stderr, domain.VerbositySilent)

	f.OnStart(0, domain.NewRunItem("true"))
	f.OnComplete(domain.RunResult{Item: domain.NewRunItem("true"), Error: errors.New("boom")})
	f.OnFinish(domain.Summary{})

	if stdout.Len()+stderr.Len() != 0 {
		t.Errorf("silent formatter wrote %q / %q", stdout.String(), stderr.String())
	}
}
