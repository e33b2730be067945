package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/interpreter"
	"basic/interpreter-go/pkg/parser"
	"basic/interpreter-go/pkg/runtime"
)

const banner = `basic REPL. Type :help for commands, :quit to exit.`

// lineReader is the part of *liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader is swapped out in tests.
var newLineReader = func(historyFile string) lineReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &historyLiner{State: ln, path: historyFile}
}

// historyLiner writes the session history back on Close.
type historyLiner struct {
	*liner.State
	path string
}

func (h *historyLiner) Close() error {
	if h.path != "" {
		if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err == nil {
			if f, err := os.Create(h.path); err == nil {
				_, _ = h.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return h.State.Close()
}

func (c *cli) runRepl() int {
	interp := c.newInterpreter()
	if err := c.preload(interp); err != nil {
		return 1
	}
	ln := newLineReader(c.cfg.HistoryFile)
	defer ln.Close()

	fmt.Fprintln(c.stdout, banner)
	for {
		code, ok := c.readEntry(ln)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := c.replCommand(interp, trimmed); quit {
				return 0
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		value, err := interp.Run(code)
		if err != nil {
			c.reportError(err)
			continue
		}
		if !c.cfg.NoEcho {
			fmt.Fprintln(c.stdout, runtime.Inspect(value))
		}
	}
}

// readEntry collects lines until they form a complete program or fail to
// parse for a reason other than running out of input. Ctrl-C discards the
// pending entry.
func (c *cli) readEntry(ln lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := c.cfg.Prompt
		if b.Len() > 0 {
			prompt = c.cfg.ContinuationPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			c.reportError(err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseSource(src); perr != nil && diag.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// replCommand handles a `:` command and reports whether the session ends.
func (c *cli) replCommand(interp *interpreter.Interpreter, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(c.stdout, `:help   show this message
:scope  list global bindings
:quit   leave the REPL`)
	case ":scope":
		env := interp.GlobalEnvironment()
		for _, name := range env.Keys() {
			binding, _ := env.Get(name)
			prefix := ""
			if binding.IsConst {
				prefix = "const "
			}
			fmt.Fprintf(c.stdout, "%s%s %s = %s\n", prefix, runtime.TypeOf(binding.Value), name, runtime.Inspect(binding.Value))
		}
	default:
		fmt.Fprintf(c.stdout, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return false
}
