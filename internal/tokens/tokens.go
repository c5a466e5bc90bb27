// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokens splits raw argv into flag values and positional tokens.
// It knows nothing about commands or positional schemas; the command engine
// feeds its output into dispatch and binding.
package tokens

import "strings"

// Spec describes how a known flag consumes tokens. Bool flags never consume
// the next argument; Collect flags accumulate repeated occurrences instead
// of keeping the last value.
type Spec struct {
	Bool    bool
	Collect bool
}

// Result is the outcome of a Split: flag values keyed by the name as
// written (without dashes), the positional tokens in order, and everything
// after a "--" separator.
type Result struct {
	Flags       map[string][]string
	Positionals []string
	Rest        []string
}

// Split separates argv into flags and positionals.
//
// Supported flag forms: -f, --flag, -f=v, --flag=v, and "--flag v" where the
// next token becomes the value for non-bool flags unless it looks like a
// flag itself (negative numbers are values, not flags). Flags not present in
// specs default to value-consuming. A bare "--" ends flag parsing and the
// remaining tokens are returned in Rest untouched.
func Split(argv []string, specs map[string]Spec) Result {
	r := Result{Flags: make(map[string][]string)}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			if i+1 < len(argv) {
				r.Rest = append([]string(nil), argv[i+1:]...)
			}
			break
		}

		if !isFlag(arg) {
			r.Positionals = append(r.Positionals, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if idx := strings.Index(name, "="); idx > 0 {
			value = name[idx+1:]
			name = name[:idx]
			hasValue = true
		}
		spec := specs[name]

		if !hasValue {
			if spec.Bool {
				value = "true"
			} else if i+1 < len(argv) && !isFlag(argv[i+1]) {
				value = argv[i+1]
				i++
			}
		}

		if spec.Collect {
			r.Flags[name] = append(r.Flags[name], value)
		} else {
			r.Flags[name] = []string{value}
		}
	}
	return r
}

// isFlag reports whether arg is a flag token. A lone dash and negative
// numbers are values.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	return !isNumeric(arg)
}

// isNumeric reports whether s is a decimal number, with an optional leading
// sign and at most one dot.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
			if hasDot {
				return false
			}
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
