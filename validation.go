// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"fmt"
	"sort"
	"strings"
)

// validate enforces the pre-binding argument rules in the current scope:
// strict-mode unknown arguments, demanded options, conflicts, and
// implications. A failure preempts binding and execution.
func (p *Parser) validate(args Arguments, entry *CommandEntry) error {
	if p.settings.strict {
		if err := p.checkUnknown(args, entry); err != nil {
			return err
		}
	}
	for _, key := range p.settings.order {
		d, ok := p.settings.opts[key]
		if !ok || !d.demand {
			continue
		}
		if !args.Has(key) && !args.Has(camelCase(key)) {
			return &ValidationError{Msg: fmt.Sprintf("missing required argument: %s", key)}
		}
	}
	for key, others := range p.settings.conflicts {
		if !args.Has(key) {
			continue
		}
		for _, other := range others {
			if args.Has(other) {
				return &ValidationError{Msg: fmt.Sprintf("arguments %s and %s are mutually exclusive", key, other)}
			}
		}
	}
	for key, others := range p.settings.implies {
		if !args.Has(key) {
			continue
		}
		for _, other := range others {
			if !args.Has(other) {
				return &ValidationError{Msg: fmt.Sprintf("argument %s requires argument %s", key, other)}
			}
		}
	}
	return nil
}

// checkUnknown rejects result keys that no option, alias, or positional of
// the current command claims.
func (p *Parser) checkUnknown(args Arguments, entry *CommandEntry) error {
	claimed := make(map[string]bool)
	if entry != nil {
		for _, slots := range [][]positional{entry.demanded, entry.optional} {
			for _, slot := range slots {
				for _, name := range slot.aliases {
					claimed[name] = true
					claimed[camelCase(name)] = true
				}
			}
		}
	}
	var unknown []string
	for key := range args {
		if key == "_" || key == "--" || key == "$0" {
			continue
		}
		if claimed[key] || p.settings.knownKey(key) {
			continue
		}
		unknown = append(unknown, key)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &ValidationError{Msg: fmt.Sprintf("unknown argument: %s", strings.Join(unknown, ", "))}
	}
	return nil
}

// validateValues enforces the post-binding value rules: choices, coercions,
// and check functions, applied to the fully bound result object.
func (p *Parser) validateValues(args Arguments) error {
	for _, key := range p.settings.order {
		d, ok := p.settings.opts[key]
		if !ok {
			continue
		}
		v, present := args[key]
		if !present {
			continue
		}
		if len(d.choices) > 0 {
			s := fmt.Sprint(v)
			found := false
			for _, c := range d.choices {
				if s == c {
					found = true
					break
				}
			}
			if !found {
				return &ValidationError{Msg: fmt.Sprintf("invalid value %q for %s, choices: %s", s, key, strings.Join(d.choices, ", "))}
			}
		}
		if d.coerce != nil {
			coerced, err := d.coerce(v)
			if err != nil {
				return &ValidationError{Msg: fmt.Sprintf("%s: %v", key, err)}
			}
			p.setAll(args, key, coerced)
		}
	}
	for _, c := range p.settings.checks {
		if err := c.fn(args); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				return verr
			}
			return &ValidationError{Msg: err.Error()}
		}
	}
	return nil
}
