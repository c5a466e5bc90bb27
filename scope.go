// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

// optionDef is the stored form of one configured option key. Every key is
// global unless registered otherwise; global keys survive the per-command
// scope reset, local keys do not.
type optionDef struct {
	key      string
	aliases  []string
	typ      string
	def      any
	hasDef   bool
	describe string
	demand   bool
	global   bool
	choices  []string
	coerce   func(any) (any, error)
}

func (d *optionDef) clone() *optionDef {
	c := *d
	c.aliases = append([]string(nil), d.aliases...)
	c.choices = append([]string(nil), d.choices...)
	return &c
}

// checkDef is one registered argv check function.
type checkDef struct {
	fn     func(Arguments) error
	global bool
}

// configLoader is a registered side-effecting configuration source, e.g. a
// config-file load. Loaders execute at most once per top-level Parse call,
// tracked in runState, regardless of how often scopes cycle.
type configLoader struct {
	id     string
	global bool
	load   func() (map[string]any, error)
}

// settings is the explicit configuration state threaded through the scope
// manager, binder, and orchestrator. Scope cycling produces new settings
// values via snapshot and restore rather than mutating a shared singleton.
type settings struct {
	opts      map[string]*optionDef
	order     []string
	strict    bool
	conflicts map[string][]string
	implies   map[string][]string
	checks    []checkDef
	loaders   []*configLoader
}

func newSettings() *settings {
	return &settings{
		opts:      make(map[string]*optionDef),
		conflicts: make(map[string][]string),
		implies:   make(map[string][]string),
	}
}

// snapshot deep-copies the settings. Coerce and check functions are shared;
// everything else is independent of the original.
func (s *settings) snapshot() *settings {
	c := newSettings()
	for key, d := range s.opts {
		c.opts[key] = d.clone()
	}
	c.order = append([]string(nil), s.order...)
	c.strict = s.strict
	for k, v := range s.conflicts {
		c.conflicts[k] = append([]string(nil), v...)
	}
	for k, v := range s.implies {
		c.implies[k] = append([]string(nil), v...)
	}
	c.checks = append([]checkDef(nil), s.checks...)
	c.loaders = append([]*configLoader(nil), s.loaders...)
	return c
}

// resetLocal drops every non-global key, check, and loader, leaving global
// configuration to persist unchanged into the command-local scope.
func (s *settings) resetLocal() {
	order := s.order[:0]
	for _, key := range s.order {
		d, ok := s.opts[key]
		if !ok {
			continue
		}
		if d.global {
			order = append(order, key)
		} else {
			delete(s.opts, key)
		}
	}
	s.order = order

	checks := s.checks[:0]
	for _, c := range s.checks {
		if c.global {
			checks = append(checks, c)
		}
	}
	s.checks = checks

	loaders := s.loaders[:0]
	for _, l := range s.loaders {
		if l.global {
			loaders = append(loaders, l)
		}
	}
	s.loaders = loaders
}

// hasLoader reports whether a loader with the given id is registered.
func (s *settings) hasLoader(id string) bool {
	for _, l := range s.loaders {
		if l.id == id {
			return true
		}
	}
	return false
}

// canonicalKey resolves an option key, alias, or camel-case twin of either
// to its canonical key. Unknown keys resolve to themselves.
func (s *settings) canonicalKey(name string) string {
	if _, ok := s.opts[name]; ok {
		return name
	}
	for key, d := range s.opts {
		if name == camelCase(key) {
			return key
		}
		for _, a := range d.aliases {
			if a == name || name == camelCase(a) {
				return key
			}
		}
	}
	return name
}

// knownKey reports whether name is a configured key, alias, or a camel-case
// twin of one. Used by strict-mode validation.
func (s *settings) knownKey(name string) bool {
	for key, d := range s.opts {
		if name == key || name == camelCase(key) {
			return true
		}
		for _, a := range d.aliases {
			if name == a || name == camelCase(a) {
				return true
			}
		}
	}
	return false
}

// mergeRestore reinstates the outer snapshot after a command scope completes,
// carrying over only the command-local additions that were declared global.
// baseChecks is the number of checks inherited into the scope; only checks
// registered past it are additions.
func mergeRestore(outer, inner *settings, baseChecks int) *settings {
	for _, key := range inner.order {
		d, ok := inner.opts[key]
		if !ok || !d.global {
			continue
		}
		if _, exists := outer.opts[key]; !exists {
			outer.order = append(outer.order, key)
		}
		outer.opts[key] = d
	}
	for _, c := range inner.checks[baseChecks:] {
		if c.global {
			outer.checks = append(outer.checks, c)
		}
	}
	for _, l := range inner.loaders {
		if l.global && !outer.hasLoader(l.id) {
			outer.loaders = append(outer.loaders, l)
		}
	}
	return outer
}

// runState is the per-Parse bookkeeping that survives scope cycling. Created
// fresh on every top-level Parse call, which keeps sequential reuse of one
// parser instance idempotent.
type runState struct {
	ranLoaders map[string]bool
}

func newRunState() *runState {
	return &runState{ranLoaders: make(map[string]bool)}
}

// withCommandScope runs fn inside a command-local configuration scope:
// snapshot, reset non-global state, run, restore the snapshot merged with
// fn's global additions. Nested scopes stack via the call stack.
func (p *Parser) withCommandScope(fn func() error) error {
	snap := p.settings.snapshot()
	p.settings.resetLocal()
	base := len(p.settings.checks)
	err := fn()
	p.settings = mergeRestore(snap, p.settings, base)
	return err
}
