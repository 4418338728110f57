package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusDefaults(t *testing.T) {
	var s Status
	if !s.Success() {
		t.Error("zero status should be successful")
	}
	if _, ok := s.Code(); ok {
		t.Error("zero status should have no code")
	}
	if s != Succeeded() {
		t.Error("Succeeded() should equal the zero value")
	}
}

func TestStatusConstructors(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		success  bool
		code     int
		hasCode  bool
		codeText string
	}{
		{"exit 0", Exited(0), true, 0, true, "0"},
		{"exit 1", Exited(1), false, 1, true, "1"},
		{"exit 127", Exited(127), false, 127, true, "127"},
		{"signal", Signaled("SIGKILL"), false, 0, false, "signal SIGKILL"},
		{"unknown", Unknown(), false, 0, false, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Success(); got != tt.success {
				t.Errorf("Success() = %v, want %v", got, tt.success)
			}
			code, ok := tt.status.Code()
			if ok != tt.hasCode || code != tt.code {
				t.Errorf("Code() = (%d, %v), want (%d, %v)", code, ok, tt.code, tt.hasCode)
			}
			if got := tt.status.CodeText(); got != tt.codeText {
				t.Errorf("CodeText() = %q, want %q", got, tt.codeText)
			}
		})
	}
}

type fakeExit struct {
	ok   bool
	code int
	has  bool
}

func (f fakeExit) Success() bool     { return f.ok }
func (f fakeExit) Code() (int, bool) { return f.code, f.has }

func TestStatusOf(t *testing.T) {
	if got := StatusOf(nil); got != Succeeded() {
		t.Errorf("StatusOf(nil) = %v", got)
	}
	if got := StatusOf(fakeExit{ok: false, code: 3, has: true}); got != Exited(3) {
		t.Errorf("StatusOf(code 3) = %v", got)
	}
	if got := StatusOf(fakeExit{ok: true}); got != Succeeded() {
		t.Errorf("StatusOf(opaque success) = %v", got)
	}
	if got := StatusOf(fakeExit{ok: false}); got != Unknown() {
		t.Errorf("StatusOf(opaque failure) = %v", got)
	}
}

func TestRunStatus(t *testing.T) {
	st, err := Ok(Exited(2)).Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Success() {
		t.Error("exit 2 should not be successful")
	}

	st, err = Ok(nil).Status()
	if err != nil || !st.Success() {
		t.Errorf("Ok(nil) = (%v, %v), want default success", st, err)
	}

	boom := errors.New("boom")
	st, err = Failed(boom).Status()
	if st != nil || !errors.Is(err, boom) {
		t.Errorf("Failed(boom) = (%v, %v)", st, err)
	}
}

func TestExitErrorMessages(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Exited(1), "runned item return fail execution state with code: 1"},
		{Signaled("SIGTERM"), "runned item terminated by signal: SIGTERM"},
		{Unknown(), "runned item return fail execution state with code: unavailable"},
	}
	for _, tt := range tests {
		err := &ExitError{Item: NewRunItem("false"), Status: tt.status}
		if err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
		}
		if !errors.Is(err, ErrNonzeroExit) {
			t.Error("ExitError should match ErrNonzeroExit")
		}
	}
}

func TestSpawnErrorKeepsMessage(t *testing.T) {
	cause := errors.New(`exec: "bla bla": executable file not found in $PATH`)
	err := fmt.Errorf("list: %w", &SpawnError{Program: "bla bla", Err: cause})

	if !errors.Is(err, ErrSpawn) {
		t.Error("expected ErrSpawn")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	var se *SpawnError
	if !errors.As(err, &se) || se.Error() != cause.Error() {
		t.Errorf("spawn error message changed: %v", se)
	}
}

func TestScriptErrorKinds(t *testing.T) {
	err := &ScriptError{Kind: ErrScriptNotExist, Path: "x.yaml"}
	if err.Error() != "script: x.yaml doesn't exist" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrScriptNotExist) || errors.Is(err, ErrScriptRead) {
		t.Error("kind matching is wrong")
	}
}
