package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

// scriptedReader feeds fixed lines to the REPL.
type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
	closed  bool
}

func (s *scriptedReader) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (s *scriptedReader) AppendHistory(item string) { s.history = append(s.history, item) }

func (s *scriptedReader) Close() error {
	s.closed = true
	return nil
}

func withReader(t *testing.T, reader *scriptedReader) {
	t.Helper()
	prev := newLineReader
	newLineReader = func(string) lineReader { return reader }
	t.Cleanup(func() { newLineReader = prev })
}

// isolateConfig points the CLI at a config file in a temp dir so the host's
// settings never leak in.
func isolateConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BASIC_CONFIG", path)
	t.Setenv("BASIC_HOME", filepath.Join(dir, "home"))
	return dir
}

func writeProgram(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write program: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFile(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "main.bas", "int sq(int n) => n * n\nprint(sq(7))\n")

	code, stdout, stderr := runCLI(t, "", "run", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if stdout != "49\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunFileShortcut(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "hello.bas", `print("hello")`)
	code, stdout, _ := runCLI(t, "", path)
	if code != 0 || stdout != "hello\n" {
		t.Fatalf("exit %d, stdout %q", code, stdout)
	}
}

func TestRunStdin(t *testing.T) {
	isolateConfig(t, "")
	code, stdout, stderr := runCLI(t, `print(1 + 2)`, "run", "-")
	if code != 0 || stdout != "3\n" {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}
}

func TestRunFileReportsRenderedError(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "bad.bas", "int a = 1\n\"s\" - a\n")
	code, _, stderr := runCLI(t, "", "run", path)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	want := "TypeError: cannot apply '-' to string and int\n   2 | \"s\" - a\n     | ^^^^^^^\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
}

func TestRunFileMissing(t *testing.T) {
	dir := isolateConfig(t, "")
	code, _, stderr := runCLI(t, "", "run", filepath.Join(dir, "nope.bas"))
	if code != 1 || !strings.Contains(stderr, "nope.bas") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestPreloadFromConfig(t *testing.T) {
	dir := isolateConfig(t, "preload:\n  - lib.bas\n")
	writeProgram(t, dir, "lib.bas", "int twice(int n) => n * 2")
	path := writeProgram(t, dir, "main.bas", "print(twice(21))")
	code, stdout, stderr := runCLI(t, "", "run", path)
	if code != 0 || stdout != "42\n" {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}
}

func TestPreloadErrorNamesFile(t *testing.T) {
	dir := isolateConfig(t, "preload: [broken.bas]\n")
	writeProgram(t, dir, "broken.bas", "missing")
	path := writeProgram(t, dir, "main.bas", "1")
	code, _, stderr := runCLI(t, "", "run", path)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "broken.bas:\n") || !strings.Contains(stderr, "ReferenceError: 'missing' is not defined") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestMaxCallDepthFromConfig(t *testing.T) {
	dir := isolateConfig(t, "max_call_depth: 50\n")
	path := writeProgram(t, dir, "deep.bas", "int down(int n) => down(n + 1); down(0)")
	code, _, stderr := runCLI(t, "", "run", path)
	if code != 1 || !strings.Contains(stderr, "Maximum call depth of 50 exceeded") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestTokensCommand(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "t.bas", "print(0x1F)")
	code, stdout, stderr := runCLI(t, "", "tokens", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if lines[0] != "IDENTIFIER:print" || lines[len(lines)-1] != "EOF:EOF" {
		t.Fatalf("tokens = %q", lines)
	}
	if !strings.Contains(stdout, "HEX:") {
		t.Fatalf("expected a HEX token, got %q", stdout)
	}
}

func TestASTCommand(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "a.bas", "1 + 2")
	code, stdout, stderr := runCLI(t, "", "ast", path)
	if code != 0 || strings.TrimSpace(stdout) == "" {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}
}

func TestASTCommandSyntaxError(t *testing.T) {
	dir := isolateConfig(t, "")
	path := writeProgram(t, dir, "a.bas", "1 +")
	code, _, stderr := runCLI(t, "", "ast", path)
	if code != 1 || !strings.HasPrefix(stderr, "SyntaxError:") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	if code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("version: exit %d, stdout %q", code, stdout)
	}
	code, stdout, _ = runCLI(t, "", "help")
	if code != 0 || !strings.Contains(stdout, "usage: basic") {
		t.Fatalf("help: exit %d, stdout %q", code, stdout)
	}
}

func TestUnknownCommand(t *testing.T) {
	isolateConfig(t, "")
	code, _, stderr := runCLI(t, "", "frobnicate")
	if code != 2 || !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestBadConfigFails(t *testing.T) {
	isolateConfig(t, "max_call_depth: -3\n")
	code, _, stderr := runCLI(t, "", "run", "-")
	if code != 1 || !strings.Contains(stderr, "max_call_depth must not be negative") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestVerboseLogging(t *testing.T) {
	isolateConfig(t, "")
	code, _, stderr := runCLI(t, "1 + 1", "-v", "run", "-")
	if code != 0 || !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "msg=parsed") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestReplSession(t *testing.T) {
	isolateConfig(t, "")
	reader := &scriptedReader{lines: []string{
		"int a = 1",
		"int add(int x, int y) {",
		"ret x + y",
		"}",
		"add(a, 2)",
		`"s" - 1`,
		"a",
	}}
	withReader(t, reader)

	code, stdout, stderr := runCLI(t, "", "repl")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"1\n", "int add(int x,int y) {}\n", "3\n"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout %q missing %q", stdout, want)
		}
	}
	if !strings.HasPrefix(stderr, "TypeError: cannot apply '-' to string and int") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !reader.closed {
		t.Fatalf("reader was not closed")
	}
	if reader.prompts[2] != "  ...> " || reader.prompts[3] != "  ...> " {
		t.Fatalf("prompts = %q", reader.prompts)
	}
	if reader.history[1] != "int add(int x, int y) { ret x + y }" {
		t.Fatalf("history = %q", reader.history)
	}
}

func TestReplNoEchoAndCommands(t *testing.T) {
	isolateConfig(t, "no_echo: true\nprompt: \"? \"\n")
	reader := &scriptedReader{lines: []string{
		"const int k = 5",
		":scope",
		"^C",
		":bogus",
		":quit",
		"print(1)",
	}}
	withReader(t, reader)

	code, stdout, _ := runCLI(t, "")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "const int k = 5\n") {
		t.Fatalf(":scope output missing binding: %q", stdout)
	}
	if !strings.Contains(stdout, "const function print = ") {
		t.Fatalf(":scope output missing builtin: %q", stdout)
	}
	if !strings.Contains(stdout, "unknown command :bogus") {
		t.Fatalf("stdout = %q", stdout)
	}
	if strings.Contains(stdout, "\n5\n") {
		t.Fatalf("no_echo still echoed: %q", stdout)
	}
	if len(reader.lines) != 1 {
		t.Fatalf(":quit did not end the session, %d lines left", len(reader.lines))
	}
	if reader.prompts[0] != "? " {
		t.Fatalf("prompt = %q", reader.prompts[0])
	}
}
