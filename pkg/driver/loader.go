package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"basic/interpreter-go/pkg/runtime"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileError ties a failure to the source file that produced it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

// LoadSource reads a program file as UTF-8 text. A leading byte order mark is
// dropped.
func LoadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return decodeSource(path, data)
}

// ReadSource is LoadSource for an already open stream such as stdin.
func ReadSource(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return decodeSource(name, data)
}

func decodeSource(name string, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &FileError{Path: name, Err: fmt.Errorf("source is not valid UTF-8")}
	}
	return string(data), nil
}

// Runner evaluates source text. *interpreter.Interpreter satisfies it.
type Runner interface {
	Run(source string) (runtime.Value, error)
}

// RunFile loads path and evaluates it with r. Evaluation errors are wrapped
// in a FileError naming the file.
func RunFile(r Runner, path string) (runtime.Value, error) {
	source, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	value, err := r.Run(source)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return value, nil
}

// RunFiles evaluates each file in order, stopping at the first failure.
func RunFiles(r Runner, paths []string) error {
	for _, path := range paths {
		if _, err := RunFile(r, path); err != nil {
			return err
		}
	}
	return nil
}
