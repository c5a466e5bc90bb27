// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Option configures one flag key. Global is a pointer so that the zero value
// means "unspecified": unspecified keys are global, matching the parser's
// global-by-default scoping.
type Option struct {
	Aliases  []string
	Type     string // "string", "number", "boolean", or "array"
	Default  any
	Describe string
	Demand   bool
	Global   *bool
	Choices  []string
	Coerce   func(any) (any, error)
}

// Option registers or replaces the configuration for key in the current
// scope. Inside a builder the registration is command-local unless
// opt.Global points at true.
func (p *Parser) Option(key string, opt Option) *Parser {
	global := true
	if opt.Global != nil {
		global = *opt.Global
	}
	d := &optionDef{
		key:      key,
		aliases:  append([]string(nil), opt.Aliases...),
		typ:      opt.Type,
		def:      opt.Default,
		hasDef:   opt.Default != nil,
		describe: opt.Describe,
		demand:   opt.Demand,
		global:   global,
		choices:  append([]string(nil), opt.Choices...),
		coerce:   opt.Coerce,
	}
	if _, ok := p.settings.opts[key]; !ok {
		p.settings.order = append(p.settings.order, key)
	}
	p.settings.opts[key] = d
	return p
}

// Options registers a flat map of option configurations, in key order.
func (p *Parser) Options(opts map[string]Option) *Parser {
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		p.Option(key, opts[key])
	}
	return p
}

func (p *Parser) option(key string) *optionDef {
	d, ok := p.settings.opts[key]
	if !ok {
		d = &optionDef{key: key, global: true}
		p.settings.opts[key] = d
		p.settings.order = append(p.settings.order, key)
	}
	return d
}

// Alias adds aliases for key.
func (p *Parser) Alias(key string, aliases ...string) *Parser {
	d := p.option(key)
	d.aliases = append(d.aliases, aliases...)
	return p
}

// Default sets the default value bound to key when no other phase sets it.
func (p *Parser) Default(key string, value any) *Parser {
	d := p.option(key)
	d.def = value
	d.hasDef = true
	return p
}

// Demand marks keys as required; a missing demanded key is a validation
// failure reported before any binding or execution.
func (p *Parser) Demand(keys ...string) *Parser {
	for _, key := range keys {
		p.option(key).demand = true
	}
	return p
}

// Choices restricts key to the given values.
func (p *Parser) Choices(key string, choices ...string) *Parser {
	d := p.option(key)
	d.choices = append(d.choices, choices...)
	return p
}

// Coerce installs a transformation applied to key's value after binding.
func (p *Parser) Coerce(key string, fn func(any) (any, error)) *Parser {
	p.option(key).coerce = fn
	return p
}

// Local marks keys as command-local: they reset before each matched command
// runs and never leak to sibling commands or back to the parent scope.
func (p *Parser) Local(keys ...string) *Parser {
	for _, key := range keys {
		p.option(key).global = false
	}
	return p
}

// Global marks keys as global: they survive command scope resets. Options
// are global unless marked Local, so this mainly undoes an earlier Local.
func (p *Parser) Global(keys ...string) *Parser {
	for _, key := range keys {
		p.option(key).global = true
	}
	return p
}

// Check registers a predicate over the final result object. Non-global
// checks registered inside a builder apply only to that command.
func (p *Parser) Check(fn func(Arguments) error, global bool) *Parser {
	p.settings.checks = append(p.settings.checks, checkDef{fn: fn, global: global})
	return p
}

// Strict rejects arguments that no configured option or positional claims.
func (p *Parser) Strict(on bool) *Parser {
	p.settings.strict = on
	return p
}

// Conflicts declares that key and others may not appear together.
func (p *Parser) Conflicts(key string, others ...string) *Parser {
	p.settings.conflicts[key] = append(p.settings.conflicts[key], others...)
	return p
}

// Implies declares that key's presence requires the others to be set.
func (p *Parser) Implies(key string, others ...string) *Parser {
	p.settings.implies[key] = append(p.settings.implies[key], others...)
	return p
}

// ConfigFile registers a configuration file whose values fill result keys
// not already set by flags. YAML, JSON, and TOML files are supported, chosen
// by extension. The load executes exactly once per top-level Parse call,
// even when registered command-locally and cycled through scope resets.
func (p *Parser) ConfigFile(path string, global bool) *Parser {
	return p.ConfigLoader(path, global, func() (map[string]any, error) {
		return loadConfigFile(path)
	})
}

// ConfigLoader registers an arbitrary side-effecting configuration source
// identified by id, with the same once-per-parse execution guarantee as
// ConfigFile.
func (p *Parser) ConfigLoader(id string, global bool, load func() (map[string]any, error)) *Parser {
	if p.settings.hasLoader(id) {
		return p
	}
	p.settings.loaders = append(p.settings.loaders, &configLoader{id: id, global: global, load: load})
	return p
}

func loadConfigFile(path string) (map[string]any, error) {
	vals := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &vals); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		// yaml.v3 also accepts JSON.
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &vals); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	return vals, nil
}

// runLoaders executes every loader in scope that has not yet run during this
// parse, merging loaded values into args for keys no earlier phase set.
func (p *Parser) runLoaders(args Arguments) error {
	for _, l := range p.settings.loaders {
		if p.run.ranLoaders[l.id] {
			continue
		}
		p.run.ranLoaders[l.id] = true
		vals, err := l.load()
		if err != nil {
			return err
		}
		for key, v := range vals {
			p.setIfUnset(args, key, v)
		}
	}
	return nil
}

// applyDefaults fills args with configured defaults for keys still unset.
func (p *Parser) applyDefaults(args Arguments) {
	for _, key := range p.settings.order {
		d, ok := p.settings.opts[key]
		if !ok || !d.hasDef {
			continue
		}
		p.setIfUnset(args, key, d.def)
	}
}

// setIfUnset writes v under key, its aliases, and all camel-case twins,
// without clobbering values from earlier phases.
func (p *Parser) setIfUnset(args Arguments, key string, v any) {
	canonical := p.settings.canonicalKey(key)
	for _, k := range p.keyForms(canonical) {
		if !args.Has(k) {
			args[k] = v
		}
	}
}

// setAll writes v under key, its aliases, and all camel-case twins,
// replacing any existing values.
func (p *Parser) setAll(args Arguments, key string, v any) {
	canonical := p.settings.canonicalKey(key)
	for _, k := range p.keyForms(canonical) {
		args[k] = v
	}
}

// keyForms returns the canonical key, its aliases, and the camel-case twin
// of each name that contains a separator.
func (p *Parser) keyForms(canonical string) []string {
	names := []string{canonical}
	if d, ok := p.settings.opts[canonical]; ok {
		names = append(names, d.aliases...)
	}
	forms := make([]string, 0, len(names)*2)
	for _, n := range names {
		forms = append(forms, n)
		if c := camelCase(n); c != n {
			forms = append(forms, c)
		}
	}
	return forms
}
