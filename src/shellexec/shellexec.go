package shellexec

import (
	"bytes"
	"io"
	"os/exec"
	"strings"
)

// Error reports a failed external tool invocation, carrying the tool's
// stderr verbatim so the operator sees the real diagnostic.
type Error struct {
	Phase  string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return e.Phase + " failed: " + s
	}
	return e.Phase + " failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Run executes argv with the given stdin/stdout, capturing stderr. A
// nonzero exit (or a failure to start) is returned as an *Error labelled
// with phase.
func Run(phase string, argv []string, stdin io.Reader, stdout io.Writer) error {
	if len(argv) == 0 {
		return &Error{Phase: phase, Err: exec.ErrNotFound}
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &Error{Phase: phase, Stderr: stderr.String(), Err: err}
	}
	return nil
}
