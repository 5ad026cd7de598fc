package cli

import (
	"fmt"
	"io"
	"os"
)

// StdStream is the path naming stdin for inputs and stdout for outputs.
const StdStream = "-"

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ReadInput returns the contents of path, or all of stdin when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == StdStream {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &IOError{Op: "read input", Path: "<stdin>", Err: err}
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read input", Path: path, Err: err}
	}
	return data, nil
}

// WriteOutput writes data to path, or to stdout when path is empty or "-".
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == StdStream {
		if _, err := stdout.Write(data); err != nil {
			return &IOError{Op: "write output", Path: "<stdout>", Err: err}
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write output", Path: path, Err: err}
	}
	return nil
}
