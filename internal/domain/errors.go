package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSpawn          = errors.New("process could not be started")
	ErrWait           = errors.New("process outcome could not be read")
	ErrNonzeroExit    = errors.New("process exited unsuccessfully")
	ErrInvalidScript  = errors.New("invalid script")
	ErrScriptNotExist = errors.New("script does not exist")
	ErrScriptOpen     = errors.New("failed to open script")
	ErrScriptRead     = errors.New("failed to read script")
	ErrScriptParse    = errors.New("failed to parse script")
)

// SpawnError is returned when the OS could not create the process. The
// message is the OS error text unchanged.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string { return e.Err.Error() }

func (e *SpawnError) Unwrap() error { return e.Err }

func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// WaitError is returned when waiting for, or reading from, a started
// process failed.
type WaitError struct {
	Program string
	Err     error
}

func (e *WaitError) Error() string { return fmt.Sprintf("wait %s: %v", e.Program, e.Err) }

func (e *WaitError) Unwrap() error { return e.Err }

func (e *WaitError) Is(target error) bool { return target == ErrWait }

// ExitError is the abort reason synthesized by the silent and interactive
// list policies when an item ran but did not succeed.
type ExitError struct {
	Item   RunItem
	Status Status
}

func (e *ExitError) Error() string {
	if sig, ok := e.Status.Signal(); ok {
		return "runned item terminated by signal: " + sig
	}
	return "runned item return fail execution state with code: " + e.Status.CodeText()
}

func (e *ExitError) Is(target error) bool { return target == ErrNonzeroExit }

// UnsuccessfulError reports a whole run that finished with a failed
// status rather than an error.
type UnsuccessfulError struct {
	Status Status
}

func (e *UnsuccessfulError) Error() string {
	return "unsuccessful run with error code: " + e.Status.CodeText()
}

func (e *UnsuccessfulError) Is(target error) bool { return target == ErrNonzeroExit }

// ScriptError is returned by the script loader. Kind is one of the
// ErrScript* sentinels.
type ScriptError struct {
	Kind error
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	switch e.Kind {
	case ErrScriptNotExist:
		return fmt.Sprintf("script: %s doesn't exist", e.Path)
	case ErrScriptOpen:
		return fmt.Sprintf("fail to open script with error: %v", e.Err)
	case ErrScriptRead:
		return fmt.Sprintf("fail to read script with error: %v", e.Err)
	case ErrScriptParse:
		return fmt.Sprintf("fail to parse script %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("script %s: %v", e.Path, e.Err)
	}
}

func (e *ScriptError) Unwrap() error { return e.Err }

func (e *ScriptError) Is(target error) bool { return target == e.Kind }
