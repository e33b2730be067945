package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/driver"
	"basic/interpreter-go/pkg/interpreter"
	"basic/interpreter-go/pkg/lexer"
	"basic/interpreter-go/pkg/parser"
)

const cliToolVersion = "basic 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli carries the streams and settings shared by every subcommand.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *driver.Config
	logger *slog.Logger
	color  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("basic", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { printUsage(stderr) }
	configPath := flags.String("config", "", "path to a basic.yml config file")
	verbose := flags.Bool("v", false, "log interpreter phases to stderr")
	noColor := flags.Bool("no-color", false, "disable colored error output")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	args = flags.Args()

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			printUsage(stdout)
			return 0
		case "--version", "-V", "version":
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		}
	}

	cfg, err := driver.ResolveConfig(*configPath, ".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		color:  !*noColor && !cfg.NoColor && os.Getenv("NO_COLOR") == "",
	}
	if *verbose {
		c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if cfg.Path != "" {
		c.logger.Debug("config loaded", "path", cfg.Path)
	}

	if len(args) == 0 {
		return c.runRepl()
	}
	switch args[0] {
	case "run":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "usage: basic run <file|->")
			return 2
		}
		return c.runFile(args[1])
	case "repl":
		return c.runRepl()
	case "tokens":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "usage: basic tokens <file>")
			return 2
		}
		return c.dumpTokens(args[1])
	case "ast":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "usage: basic ast <file>")
			return 2
		}
		return c.dumpAST(args[1])
	default:
		if len(args) == 1 && strings.HasSuffix(args[0], ".bas") {
			return c.runFile(args[0])
		}
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func (c *cli) newInterpreter() *interpreter.Interpreter {
	return interpreter.NewWithOptions(interpreter.Options{
		Stdout:         c.stdout,
		MaxCallDepth:   c.cfg.MaxCallDepth,
		ParseCacheSize: c.cfg.ParseCacheSize,
		Logger:         c.logger,
	})
}

// preload runs the config's preload files into interp. Failures are reported
// and returned.
func (c *cli) preload(interp *interpreter.Interpreter) error {
	if len(c.cfg.Preload) == 0 {
		return nil
	}
	if err := driver.RunFiles(interp, c.cfg.Preload); err != nil {
		c.reportError(err)
		return err
	}
	c.logger.Debug("preloaded", "files", len(c.cfg.Preload))
	return nil
}

func (c *cli) readSource(path string) (string, error) {
	if path == "-" {
		return driver.ReadSource("<stdin>", c.stdin)
	}
	return driver.LoadSource(path)
}

func (c *cli) runFile(path string) int {
	source, err := c.readSource(path)
	if err != nil {
		c.reportError(err)
		return 1
	}
	interp := c.newInterpreter()
	if err := c.preload(interp); err != nil {
		return 1
	}
	if _, err := interp.Run(source); err != nil {
		c.reportError(err)
		return 1
	}
	return 0
}

func (c *cli) dumpTokens(path string) int {
	source, err := c.readSource(path)
	if err != nil {
		c.reportError(err)
		return 1
	}
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		c.reportError(diag.WithSource(err, source))
		return 1
	}
	for _, tok := range tokens {
		fmt.Fprintln(c.stdout, tok.String())
	}
	return 0
}

func (c *cli) dumpAST(path string) int {
	source, err := c.readSource(path)
	if err != nil {
		c.reportError(err)
		return 1
	}
	module, err := parser.ParseSource(source)
	if err != nil {
		c.reportError(diag.WithSource(err, source))
		return 1
	}
	fmt.Fprintln(c.stdout, ast.Print(module))
	return 0
}

func (c *cli) reportError(err error) {
	msg := diag.Render(err)
	var fe *driver.FileError
	if errors.As(err, &fe) {
		if _, isDiag := diag.As(fe.Err); isDiag {
			msg = fe.Path + ":\n" + msg
		}
	}
	if c.color {
		msg = red(msg)
	}
	fmt.Fprintln(c.stderr, msg)
}

func red(s string) string {
	return "\x1b[31m" + s + "\x1b[0m"
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: basic [-config file] [-v] [-no-color] <command> [args]

commands:
  run <file|->   evaluate a program file (or stdin)
  repl           start an interactive session (default)
  tokens <file>  print the token stream
  ast <file>     print the syntax tree
  version        print the version
  help           show this message`)
}
