package shellexec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func script(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCapturesStdout(t *testing.T) {
	tool := script(t, "echo out; cat")
	var out bytes.Buffer
	if err := Run("dump", []string{tool}, strings.NewReader("piped\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "out\npiped\n" {
		t.Fatalf("stdout: %q", got)
	}
}

func TestRunNonzeroExitCarriesStderr(t *testing.T) {
	tool := script(t, "echo 'Access denied for user' >&2; exit 1")
	err := Run("dump", []string{tool}, nil, nil)
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if se.Phase != "dump" {
		t.Fatalf("phase: %q", se.Phase)
	}
	if !strings.Contains(se.Stderr, "Access denied") {
		t.Fatalf("stderr not captured: %q", se.Stderr)
	}
	if !strings.Contains(se.Error(), "Access denied") {
		t.Fatalf("message should carry the diagnostic verbatim: %q", se.Error())
	}
}

func TestRunEmptyArgv(t *testing.T) {
	if err := Run("reload", nil, nil, nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}
