package interpreter

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang/groupcache/lru"

	"basic/interpreter-go/pkg/ast"
	"basic/interpreter-go/pkg/diag"
	"basic/interpreter-go/pkg/lexer"
	"basic/interpreter-go/pkg/parser"
	"basic/interpreter-go/pkg/runtime"
)

// DefaultParseCacheSize is the number of parsed programs kept when
// Options.ParseCacheSize is zero.
const DefaultParseCacheSize = 64

// Options configures an Interpreter.
type Options struct {
	// Stdout receives the output of print. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth bounds nested function calls. Zero means unlimited.
	MaxCallDepth int
	// ParseCacheSize bounds the source-to-AST cache. Zero selects
	// DefaultParseCacheSize, a negative value disables caching.
	ParseCacheSize int
	// Logger receives debug records for each phase of Run. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Interpreter evaluates programs against a global scope that persists across
// calls to Run.
type Interpreter struct {
	global       *runtime.Environment
	stdout       io.Writer
	maxCallDepth int
	parseCache   *lru.Cache
	logger       *slog.Logger
}

// New returns an interpreter writing to os.Stdout with default options.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter whose global scope holds the
// built-in functions.
func NewWithOptions(opts Options) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		stdout:       opts.Stdout,
		maxCallDepth: opts.MaxCallDepth,
		logger:       opts.Logger,
	}
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	switch size := opts.ParseCacheSize; {
	case size == 0:
		i.parseCache = lru.New(DefaultParseCacheSize)
	case size > 0:
		i.parseCache = lru.New(size)
	}
	i.registerBuiltins()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Run tokenizes, parses and evaluates source in the global scope and returns
// the value of the last statement. Language errors carry the source text so
// diag.Render can quote the offending line.
func (i *Interpreter) Run(source string) (runtime.Value, error) {
	module, err := i.parse(source)
	if err != nil {
		return nil, diag.WithSource(err, source)
	}
	start := time.Now()
	value, err := i.EvaluateModule(module)
	if err != nil {
		i.logger.Debug("evaluate failed", "error", err, "elapsed", time.Since(start))
		return nil, diag.WithSource(err, source)
	}
	i.logger.Debug("evaluated", "statements", len(module.Body), "result", runtime.TypeOf(value), "elapsed", time.Since(start))
	return value, nil
}

func (i *Interpreter) parse(source string) (*ast.Module, error) {
	if i.parseCache != nil {
		if cached, ok := i.parseCache.Get(source); ok {
			i.logger.Debug("parse cache hit", "bytes", len(source))
			return cached.(*ast.Module), nil
		}
	}
	start := time.Now()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	module, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("parsed", "tokens", len(tokens), "statements", len(module.Body), "elapsed", time.Since(start))
	if i.parseCache != nil {
		i.parseCache.Add(source, module)
	}
	return module, nil
}

// EvaluateModule executes a module node in the global scope and returns the
// value of its last statement.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, error) {
	var last runtime.Value = runtime.Null
	for _, stmt := range module.Body {
		res, err := i.evaluateStatement(stmt, i.global, evalContext{})
		if err != nil {
			return nil, err
		}
		last = res.value
	}
	return last, nil
}
