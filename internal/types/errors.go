package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound means the linter executable could not be
	// resolved or started. The user can fix it by configuring node_path.
	ErrExecutableNotFound = errors.New("linter executable not found")

	// ErrNonZeroExit means the linter process exited abnormally.
	ErrNonZeroExit = errors.New("linter exited with non-zero status")

	// ErrInvalidOutputFormat means the output carried no sentinel, so the
	// linter never actually ran (missing runtime, broken script, ...).
	ErrInvalidOutputFormat = errors.New("linter produced invalid output")
)

// RunError describes a failed linter invocation.
type RunError struct {
	Command []string
	Output  []byte
	Err     error
}

func NewRunError(command []string, output []byte, err error) *RunError {
	return &RunError{Command: command, Output: output, Err: err}
}

func (e *RunError) Error() string {
	return fmt.Sprintf("command %q: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
