package cli

import (
	"errors"

	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitValidation = 1
	ExitIO         = 2
)

// ExitError carries an explicit exit code for failures already reported to
// the user, such as a batch of documents with mixed outcomes.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code.
// Validation failures exit 1. I/O problems, undecodable documents and
// anything unclassified exit 2.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if _, ok := domain.KindOf(err); ok {
		return ExitValidation
	}
	return ExitIO
}
