// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"errors"
	"fmt"
)

// ErrHelpShown is returned by Parse when help output was rendered instead of
// running a handler. Callers should treat it as a signal to exit cleanly.
var ErrHelpShown = errors.New("help shown")

// GrammarError reports a malformed command definition string. It is raised at
// registration time, never during a parse.
type GrammarError struct {
	Definition string
	Reason     string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("bad command definition %q: %s", e.Definition, e.Reason)
}

// BindingCountError is returned when fewer tokens remain than the command's
// demanded positionals require. The handler is not invoked.
type BindingCountError struct {
	Got  int
	Need int
}

func (e *BindingCountError) Error() string {
	return fmt.Sprintf("not enough positional arguments: got %d, need at least %d", e.Got, e.Need)
}

// ValidationError reports a failed argument validation: a strict-mode unknown
// argument, a conflicting pair, a missing implied or demanded option, or a
// value outside its choices. Validation preempts binding and execution.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// HandlerRejectionError wraps the failure of a deferred handler. The original
// cause is preserved and available via Unwrap.
type HandlerRejectionError struct {
	Command string
	Cause   error
}

func (e *HandlerRejectionError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("command failed: %v", e.Cause)
}

func (e *HandlerRejectionError) Unwrap() error {
	return e.Cause
}
