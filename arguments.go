// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"fmt"
	"strconv"
)

// Arguments is the result object of a parse: flag values, config values,
// defaults, and bound positionals keyed by name. Hyphenated keys are
// mirrored under camel-case twins holding identical values. The leftover
// token list lives under "_" and everything after "--" under "--".
type Arguments map[string]any

// Has reports whether key was set by any phase of the parse.
func (a Arguments) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the value for key rendered as a string, or "".
func (a Arguments) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Strings returns the value for key as a string slice. A scalar value
// becomes a one-element slice.
func (a Arguments) Strings(key string) []string {
	v, ok := a[key]
	if !ok || v == nil {
		return nil
	}
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(e)
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Int returns the value for key as an int, or 0 if absent or unparseable.
func (a Arguments) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Bool returns the value for key as a bool. String values parse with
// strconv.ParseBool semantics.
func (a Arguments) Bool(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}
