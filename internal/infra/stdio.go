package infra

import (
	"io"
	"os"
)

type stdioKind int

const (
	stdioPiped stdioKind = iota
	stdioInherit
	stdioNull
	stdioExternal
)

// Stdio configures one standard stream of a Runner. The zero value is
// Piped.
type Stdio struct {
	kind   stdioKind
	reader io.Reader
	writer io.Writer
	closer io.Closer // owned endpoint, closed once the child has it
}

// Piped captures the stream: into memory for Run, or as a pipe endpoint
// handed out by Runned for RunAsync.
func Piped() Stdio { return Stdio{kind: stdioPiped} }

// Inherit shares the parent's stream.
func Inherit() Stdio { return Stdio{kind: stdioInherit} }

// Null connects the stream to the null device.
func Null() Stdio { return Stdio{kind: stdioNull} }

// From feeds the child's stdin from r. The caller keeps ownership of r.
func From(r io.Reader) Stdio { return Stdio{kind: stdioExternal, reader: r} }

// To sends a child's stdout or stderr to w. The caller keeps ownership of w.
func To(w io.Writer) Stdio { return Stdio{kind: stdioExternal, writer: w} }

// FromPipe feeds stdin from a pipe endpoint, typically another process's
// stdout taken from Runned. Ownership moves to the Runner: the parent's
// copy is closed once the child has been started.
func FromPipe(rc io.ReadCloser) Stdio {
	return Stdio{kind: stdioExternal, reader: rc, closer: rc}
}

// ToPipe is the output counterpart of FromPipe.
func ToPipe(wc io.WriteCloser) Stdio {
	return Stdio{kind: stdioExternal, writer: wc, closer: wc}
}

func (s Stdio) String() string {
	switch s.kind {
	case stdioPiped:
		return "piped"
	case stdioInherit:
		return "inherit"
	case stdioNull:
		return "null"
	default:
		return "external"
	}
}

func (s Stdio) input() io.Reader {
	switch s.kind {
	case stdioInherit:
		return os.Stdin
	case stdioExternal:
		return s.reader
	default:
		return nil
	}
}

func (s Stdio) output(inherited *os.File, captured io.Writer) io.Writer {
	switch s.kind {
	case stdioPiped:
		return captured
	case stdioInherit:
		return inherited
	case stdioExternal:
		return s.writer
	default:
		return nil
	}
}

func (s Stdio) release() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}
