package domain

import (
	"context"
	"fmt"
	"strconv"
)

// ExitStatus is a read-only view of how a runnable finished.
type ExitStatus interface {
	// Success reports a zero exit, or an aggregate that did not fail.
	Success() bool
	// Code returns the numeric exit code when one is known.
	Code() (int, bool)
}

// Status is the concrete ExitStatus. The zero value is an opaque
// success with no exit code, which is what list policies report once
// every item has passed.
type Status struct {
	failed  bool
	code    int
	hasCode bool
	signal  string
}

var _ ExitStatus = Status{}

// Succeeded returns a successful status without a code.
func Succeeded() Status { return Status{} }

// Exited returns the status of a process that exited with code.
func Exited(code int) Status {
	return Status{failed: code != 0, code: code, hasCode: true}
}

// Signaled returns the status of a process terminated by a signal.
func Signaled(name string) Status {
	return Status{failed: true, signal: name}
}

// Unknown returns a failed status whose code could not be determined.
func Unknown() Status {
	return Status{failed: true}
}

func (s Status) Success() bool { return !s.failed }

func (s Status) Code() (int, bool) { return s.code, s.hasCode }

// Signal returns the terminating signal name, if any.
func (s Status) Signal() (string, bool) { return s.signal, s.signal != "" }

// CodeText renders the code for messages: the number, the signal, or
// "unavailable".
func (s Status) CodeText() string {
	if s.hasCode {
		return strconv.Itoa(s.code)
	}
	if s.signal != "" {
		return "signal " + s.signal
	}
	return "unavailable"
}

func (s Status) String() string {
	switch {
	case s.hasCode:
		return fmt.Sprintf("exit code %d", s.code)
	case s.signal != "":
		return "terminated by " + s.signal
	case s.failed:
		return "failed (code unavailable)"
	default:
		return "success"
	}
}

// StatusOf converts any ExitStatus into a Status.
func StatusOf(es ExitStatus) Status {
	if es == nil {
		return Status{}
	}
	if s, ok := es.(Status); ok {
		return s
	}
	if code, ok := es.Code(); ok {
		s := Exited(code)
		s.failed = !es.Success()
		return s
	}
	if es.Success() {
		return Succeeded()
	}
	return Unknown()
}

// RunStatus is what a Runnable yields. Status returns an error only when
// the runnable could not be started or its outcome could not be read.
type RunStatus struct {
	status ExitStatus
	err    error
}

func Ok(status ExitStatus) RunStatus { return RunStatus{status: status} }

func Failed(err error) RunStatus { return RunStatus{err: err} }

func (r RunStatus) Status() (ExitStatus, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.status == nil {
		return Status{}, nil
	}
	return r.status, nil
}

func (r RunStatus) Err() error { return r.err }

// Runnable is implemented by single commands and by every list policy.
type Runnable interface {
	Run(ctx context.Context) RunStatus
}
