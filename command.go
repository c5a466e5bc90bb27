// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"fmt"
	"strings"
)

// defaultMarker names the default command. "$0" is accepted as a synonym in
// definition strings and alias lists.
const defaultMarker = "*"

// positional is one compiled positional slot from a command definition.
// The first alias is the canonical name. Variadic is recorded as written;
// only the final slot of the demanded+optional sequence is granted
// multi-token absorption at bind time.
type positional struct {
	aliases  []string
	required bool
	variadic bool
}

// parseDefinition compiles a definition string like "get <id> [fields..]"
// into the command name and its ordered positional slots.
//
// Grammar: <name> is required, [name] is optional, a trailing ".." or "..."
// marks variadic, and "a|b" inside one bracket binds aliases to the same
// value. An unbracketed token after the name is treated as a required
// positional. Runs of whitespace are insignificant.
func parseDefinition(def string) (name string, demanded, optional []positional, err error) {
	fields := strings.Fields(def)
	if len(fields) == 0 {
		return "", nil, nil, &GrammarError{Definition: def, Reason: "empty definition"}
	}

	name = fields[0]
	if name == "$0" {
		name = defaultMarker
	}
	if strings.HasPrefix(name, "<") || strings.HasPrefix(name, "[") {
		// A usage string opening with a positional has no command name; that
		// form is only valid for the default command via a "$0" prefix.
		return "", nil, nil, &GrammarError{Definition: def, Reason: "default command usage string must start with $0"}
	}

	for _, tok := range fields[1:] {
		p, opt := parsePositionalToken(tok)
		if len(p.aliases) == 0 {
			return "", nil, nil, &GrammarError{Definition: def, Reason: fmt.Sprintf("positional %q has no name", tok)}
		}
		if opt {
			optional = append(optional, p)
		} else {
			demanded = append(demanded, p)
		}
	}
	return name, demanded, optional, nil
}

// parsePositionalToken parses one bracketed token. Unbracketed tokens are
// demanded positionals with the token as their sole name.
func parsePositionalToken(tok string) (positional, bool) {
	opt := strings.HasPrefix(tok, "[")
	inner := strings.Trim(tok, "<>[]")
	if strings.HasSuffix(inner, "..") {
		inner = strings.TrimRight(inner, ".")
		var p positional
		p.variadic = true
		p.required = !opt
		p.aliases = splitAliases(inner)
		return p, opt
	}
	return positional{aliases: splitAliases(inner), required: !opt}, opt
}

func splitAliases(inner string) []string {
	var out []string
	for _, a := range strings.Split(inner, "|") {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// CommandModule is a module-style command registration: a single value
// carrying the definition, aliases, description, builder, and handler.
// The first non-empty of Describe, Description, and Desc is used; Hide
// excludes the command from help listings while leaving it dispatchable.
type CommandModule struct {
	Command     string
	Aliases     []string
	Describe    string
	Description string
	Desc        string
	Hide        bool
	Builder     any
	Handler     any
}

func (m *CommandModule) description() (string, bool) {
	for _, d := range []string{m.Describe, m.Description, m.Desc} {
		if d != "" {
			return d, true
		}
	}
	return "", false
}

// CommandEntry is one registered command. Entries are immutable after
// registration except for the child registry a builder may attach lazily.
type CommandEntry struct {
	name      string
	usage     string
	aliases   []string
	describe  string
	hasDesc   bool
	isDefault bool
	demanded  []positional
	optional  []positional
	builder   any
	handler   any
	children  *registry
}

// Name returns the canonical command name.
func (e *CommandEntry) Name() string { return e.name }

// Usage returns the original definition string.
func (e *CommandEntry) Usage() string { return e.usage }

// Aliases returns the command's alias names, excluding the default marker.
func (e *CommandEntry) Aliases() []string { return e.aliases }

// IsDefault reports whether the entry is dispatched when no command matches.
func (e *CommandEntry) IsDefault() bool { return e.isDefault }

// CommandListing is one row of the command listing handed verbatim to the
// help renderer.
type CommandListing struct {
	Usage       string
	Description string
	IsDefault   bool
	Aliases     []string
}

// registry stores the commands registered at one depth of the command tree.
// Child registries hang off entries and are created the first time a builder
// registers a subcommand; no back-reference to the parent is kept.
type registry struct {
	entries     map[string]*CommandEntry
	order       []string
	aliasOf     map[string]string
	defaultName string
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[string]*CommandEntry),
		aliasOf: make(map[string]string),
	}
}

// register compiles and stores a command. nameSpec is a definition string, a
// slice of strings (first canonical, rest aliases), or a *CommandModule.
// describe is a string, false (hidden), or nil. Re-registering a canonical
// name replaces the earlier entry; the most recent default registration wins
// dispatch.
func (r *registry) register(nameSpec any, describe any, builder any, handler any) error {
	var names []string
	hide := false

	switch spec := nameSpec.(type) {
	case string:
		names = []string{spec}
	case []string:
		names = spec
	case *CommandModule:
		names = append([]string{spec.Command}, spec.Aliases...)
		if desc, ok := spec.description(); ok {
			describe = desc
		}
		hide = spec.Hide
		if builder == nil {
			builder = spec.Builder
		}
		if handler == nil {
			handler = spec.Handler
		}
	case CommandModule:
		return r.register(&spec, describe, builder, handler)
	default:
		return fmt.Errorf("unsupported command spec type %T", nameSpec)
	}
	if len(names) == 0 || names[0] == "" {
		return &GrammarError{Definition: "", Reason: "empty definition"}
	}

	name, demanded, optional, err := parseDefinition(names[0])
	if err != nil {
		return err
	}

	e := &CommandEntry{
		name:      name,
		usage:     names[0],
		demanded:  demanded,
		optional:  optional,
		builder:   builder,
		handler:   handler,
		isDefault: name == defaultMarker,
	}

	switch d := describe.(type) {
	case string:
		e.describe = d
		e.hasDesc = true
	case bool:
		// false hides the command from listings; it stays dispatchable.
	case nil:
	default:
		return fmt.Errorf("unsupported describe type %T", describe)
	}
	if hide {
		e.hasDesc = false
	}

	// Aliases flatten to their first word and dedupe. The default marker in
	// an alias list flags the entry as default without becoming an alias.
	seen := map[string]bool{name: true}
	for _, a := range names[1:] {
		a = firstWord(a)
		if a == defaultMarker || a == "$0" {
			e.isDefault = true
			continue
		}
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		e.aliases = append(e.aliases, a)
	}

	if old, ok := r.entries[name]; ok {
		for _, a := range old.aliases {
			if r.aliasOf[a] == name {
				delete(r.aliasOf, a)
			}
		}
	} else {
		r.order = append(r.order, name)
	}
	r.entries[name] = e
	for _, a := range e.aliases {
		r.aliasOf[a] = name
	}
	if e.isDefault {
		r.defaultName = name
	}
	return nil
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// lookup resolves a token to an entry by canonical name or alias.
func (r *registry) lookup(tok string) (*CommandEntry, bool) {
	if e, ok := r.entries[tok]; ok && tok != defaultMarker {
		return e, true
	}
	if name, ok := r.aliasOf[tok]; ok {
		return r.entries[name], true
	}
	return nil, false
}

// defaultEntry returns the most recently registered default command, if any.
func (r *registry) defaultEntry() *CommandEntry {
	if r.defaultName == "" {
		return nil
	}
	return r.entries[r.defaultName]
}

// names returns the canonical command names in registration order.
func (r *registry) names() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if _, ok := r.entries[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// listing returns the rows consumed by the help renderer. Entries without a
// usable description are omitted.
func (r *registry) listing() []CommandListing {
	var out []CommandListing
	for _, name := range r.order {
		e, ok := r.entries[name]
		if !ok || !e.hasDesc {
			continue
		}
		out = append(out, CommandListing{
			Usage:       e.usage,
			Description: e.describe,
			IsDefault:   e.isDefault,
			Aliases:     append([]string(nil), e.aliases...),
		})
	}
	return out
}

// Match is the result of resolving tokens against the command tree: the
// command-name tokens consumed, the tokens left for positional binding, and
// the terminal entry.
type Match struct {
	Path      []string
	Remaining []string
	Entry     *CommandEntry
}

// match walks tokens left to right against the registry tree. At each depth
// the first unconsumed token is matched against canonical names and aliases;
// on a hit the walk descends into the entry's child registry, if one exists.
// When the first token matches nothing, a default command at that depth is
// selected without consuming a token. Tokens after the first non-command
// token are never promoted to command status.
func (r *registry) match(tokens []string) (*Match, bool) {
	m := &Match{Remaining: tokens}
	cur := r
	for {
		if len(m.Remaining) > 0 {
			if e, ok := cur.lookup(m.Remaining[0]); ok {
				m.Entry = e
				m.Path = append(m.Path, e.name)
				m.Remaining = m.Remaining[1:]
				if e.children != nil {
					cur = e.children
					continue
				}
				break
			}
		}
		if d := cur.defaultEntry(); d != nil {
			m.Entry = d
		}
		break
	}
	if m.Entry == nil {
		return nil, false
	}
	return m, true
}

// matchDepth resolves a single depth: the entry matching tokens[0], or the
// default command. consumed reports whether a token was eaten.
func (r *registry) matchDepth(tokens []string) (e *CommandEntry, consumed bool) {
	if len(tokens) > 0 {
		if e, ok := r.lookup(tokens[0]); ok {
			return e, true
		}
	}
	return r.defaultEntry(), false
}
