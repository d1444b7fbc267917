package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the feedprint binary.
const (
	ExitCodeOK       = 0
	ExitCodeError    = 1
	ExitCodeWarnings = 2
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code   int
	Reason string
}

// Error returns the error message.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.Code)
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}
