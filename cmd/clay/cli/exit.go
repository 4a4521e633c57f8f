// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode maps an error returned by the command tree to a process exit
// status and reports whether the error text should still be printed.
//
//	nil                  -> 0, false
//	*ExitError           -> its code, false
//	validation ToolError -> 2, true
//	anything else        -> 1, true
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	var toolError *ToolError
	if errors.As(err, &toolError) && toolError.Category == CategoryValidation {
		return 2, true
	}
	return 1, true
}
