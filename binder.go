// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"strconv"
	"strings"
	"unicode"
)

// bindPositionals fills args from tokens according to the compiled
// positional slots: demanded slots in declared order, then optional ones.
// Only the final slot of the combined sequence absorbs multiple tokens; an
// earlier slot written as variadic captures a single token. A variadic slot
// with no tokens left binds an empty sequence, never an absent value.
//
// It returns the number of tokens consumed. Too few tokens for the demanded
// slots is a BindingCountError; the caller must not run the handler.
func bindPositionals(args Arguments, demanded, optional []positional, tokens []string) (int, error) {
	if len(tokens) < len(demanded) {
		return 0, &BindingCountError{Got: len(tokens), Need: len(demanded)}
	}

	seq := make([]positional, 0, len(demanded)+len(optional))
	seq = append(seq, demanded...)
	seq = append(seq, optional...)

	consumed := 0
	for i, slot := range seq {
		last := i == len(seq)-1
		if slot.variadic && last {
			vals := make([]any, 0, len(tokens)-consumed)
			for _, tok := range tokens[consumed:] {
				vals = append(vals, coerceToken(tok))
			}
			consumed = len(tokens)
			writeBound(args, slot, vals)
			break
		}
		if consumed >= len(tokens) {
			// Demanded slots were counted up front; only optional slots can
			// run out of tokens, and they simply stay unbound.
			continue
		}
		writeBound(args, slot, coerceToken(tokens[consumed]))
		consumed++
	}
	return consumed, nil
}

// writeBound stores value under every declared alias of the slot plus the
// camel-case twin of each alias that contains a separator. These keys are
// the slot's own, so earlier-phase values for them are replaced; the binder
// never touches keys it is not itself binding.
func writeBound(args Arguments, slot positional, value any) {
	for _, name := range slot.aliases {
		args[name] = value
		if c := camelCase(name); c != name {
			args[c] = value
		}
	}
}

// coerceToken converts a token to a number when it parses as one. A token
// with a leading "+" is preserved as text, so phone-number-like input
// survives binding intact.
func coerceToken(tok string) any {
	if tok == "" || strings.HasPrefix(tok, "+") {
		return tok
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}
	return tok
}

// camelCase returns the camel-case twin of a hyphen- or underscore-separated
// name ("file-name" -> "fileName"). Names without separators are returned
// unchanged.
func camelCase(name string) string {
	if !strings.ContainsAny(name, "-_") {
		return name
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
