package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"basic/interpreter-go/pkg/runtime"
)

func newTestInterpreter(opts Options) (*Interpreter, *bytes.Buffer) {
	var stdout bytes.Buffer
	opts.Stdout = &stdout
	return NewWithOptions(opts), &stdout
}

func mustRun(t *testing.T, interp *Interpreter, src string) runtime.Value {
	t.Helper()
	val, err := interp.Run(src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return val
}

func expectRunError(t *testing.T, interp *Interpreter, src string, sentinel error) error {
	t.Helper()
	_, err := interp.Run(src)
	if err == nil {
		t.Fatalf("Run(%q): expected error", src)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("Run(%q): expected %v, got %v", src, sentinel, err)
	}
	return err
}

func outputLines(stdout *bytes.Buffer) []string {
	text := strings.TrimSuffix(stdout.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
