// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/IanMoroney/yargs/internal/tokens"
)

// HandlerFunc runs a matched command with the bound result object.
type HandlerFunc func(Arguments) error

// DeferredHandlerFunc is a handler whose completion is deferred; overall
// completion of the parse suspends until the Deferred settles.
type DeferredHandlerFunc func(Arguments) *Deferred

// BuilderFunc configures a command synchronously. It receives the parser
// scoped to the command and may register options and subcommands.
type BuilderFunc func(*Parser) error

// DeferredBuilderFunc is a builder that settles later; the parse suspends
// until the returned Deferred resolves, then proceeds with the configured
// state.
type DeferredBuilderFunc func(*Parser) *Deferred

// CallbackBuilderFunc is a builder that signals completion by invoking the
// done callback.
type CallbackBuilderFunc func(*Parser, func(error))

// FailFn is the configured failure reporter. It receives the failure message
// and the underlying error and decides termination, propagation, or
// completion-callback delivery.
type FailFn func(msg string, err error)

// Parser is a command-line parser instance. Registration and configuration
// mutate the instance; Parse runs from a clean per-call state, so sequential
// reuse is idempotent with respect to registered commands and configuration.
// Concurrent Parse calls on one instance are not supported.
type Parser struct {
	reg         *registry
	settings    *settings
	scriptName  string
	helpTrigger string
	usage       UsageRenderer
	out         io.Writer
	failFn      FailFn

	// per-Parse state
	run *runState
	buf *bytes.Buffer
}

// New returns a parser with the default usage renderer writing to stderr.
func New() *Parser {
	return &Parser{
		reg:         newRegistry(),
		settings:    newSettings(),
		scriptName:  filepath.Base(os.Args[0]),
		helpTrigger: "help",
		usage:       NewUsageRenderer(),
		out:         os.Stderr,
	}
}

// ScriptName overrides the program name used in usage output.
func (p *Parser) ScriptName(name string) *Parser {
	p.scriptName = name
	return p
}

// HelpTrigger sets the token that, immediately following a fully matched
// command path, renders help instead of running the handler.
func (p *Parser) HelpTrigger(tok string) *Parser {
	p.helpTrigger = tok
	return p
}

// Usage replaces the help renderer.
func (p *Parser) Usage(u UsageRenderer) *Parser {
	p.usage = u
	return p
}

// SetOutput redirects help and failure output.
func (p *Parser) SetOutput(w io.Writer) *Parser {
	p.out = w
	return p
}

// Fail installs the failure reporter. When unset, failures render through
// the usage renderer and Parse returns the error.
func (p *Parser) Fail(fn FailFn) *Parser {
	p.failFn = fn
	return p
}

// Command registers a command and returns the parser for chaining. nameSpec
// is a definition string ("get <id> [fields..]"), a string slice (first
// entry the definition, the rest aliases), or a *CommandModule. describe is
// the help description, false to keep the command out of listings, or nil.
// builder is nil, a BuilderFunc, DeferredBuilderFunc, CallbackBuilderFunc,
// a map[string]Option, or a nested *CommandModule. handler is nil, a
// HandlerFunc, or a DeferredHandlerFunc.
//
// A malformed definition string panics with a *GrammarError; registration
// problems never surface at parse time. Use Register to handle them as
// errors.
func (p *Parser) Command(nameSpec any, describe any, builder any, handler any) *Parser {
	if err := p.Register(nameSpec, describe, builder, handler); err != nil {
		panic(err)
	}
	return p
}

// Register is Command with an error return instead of a panic.
func (p *Parser) Register(nameSpec any, describe any, builder any, handler any) error {
	return p.reg.register(nameSpec, describe, builder, handler)
}

// CommandNames returns the canonical names registered at the top level, in
// registration order.
func (p *Parser) CommandNames() []string {
	return p.reg.names()
}

// Listing returns the top-level command rows consumed by the help renderer.
func (p *Parser) Listing() []CommandListing {
	return p.reg.listing()
}

// MatchCommand resolves tokens against the command tree without executing
// anything. Only registries that already exist are walked; subcommands a
// builder has not yet attached are invisible here.
func (p *Parser) MatchCommand(toks []string) (*Match, bool) {
	return p.reg.match(toks)
}

// Reset discards every registered command and configuration entry, returning
// the instance to its initial state.
func (p *Parser) Reset() *Parser {
	p.reg = newRegistry()
	p.settings = newSettings()
	return p
}

// Parse matches argv against the registered commands, binds positionals, and
// runs the matched handler. It returns the result object and ErrHelpShown
// when help output was rendered instead. Each call runs matching, scope
// reset, binding, and execution from a clean per-call state.
func (p *Parser) Parse(argv []string) (Arguments, error) {
	p.run = newRunState()
	p.buf = &bytes.Buffer{}
	args := Arguments{"$0": p.scriptName}

	res := p.tokenize(argv)
	p.mergeFlags(args, res.Flags)
	if len(res.Rest) > 0 {
		args["--"] = append([]string(nil), res.Rest...)
	}
	toks := res.Positionals

	if err := p.runLoaders(args); err != nil {
		p.reportFailure(err)
		return args, err
	}
	p.applyDefaults(args)

	if len(toks) > 0 && toks[0] == p.helpTrigger {
		if _, ok := p.reg.lookup(toks[0]); !ok {
			p.renderHelp(nil, p.reg.listing())
			p.flush()
			return args, ErrHelpShown
		}
	}

	e, consumed := p.reg.matchDepth(toks)
	if e == nil {
		args["_"] = append([]string(nil), toks...)
		if err := p.validate(args, nil); err != nil {
			p.reportFailure(err)
			return args, err
		}
		if err := p.validateValues(args); err != nil {
			p.reportFailure(err)
			return args, err
		}
		return args, nil
	}

	var path []string
	rem := toks
	if consumed {
		path = []string{toks[0]}
		rem = toks[1:]
	}

	err := p.runCommand(e, path, rem, args)
	switch {
	case err == nil:
		return args, nil
	case errors.Is(err, ErrHelpShown):
		p.flush()
		return args, ErrHelpShown
	default:
		p.reportFailure(err)
		return args, err
	}
}

// runCommand executes one matched entry: scope reset, builder, one-shot
// config sources, descent into lazily attached subcommands, validation,
// binding, and the handler, restoring the outer scope on the way out.
// Parent context travels only on this call stack; entries keep no parent
// links.
func (p *Parser) runCommand(e *CommandEntry, path []string, rem []string, args Arguments) error {
	return p.withCommandScope(func() error {
		child := e.children
		if child == nil {
			child = newRegistry()
		}
		prev := p.reg
		p.reg = child
		err := p.settleBuilder(e.builder).Wait()
		p.reg = prev
		if err != nil {
			return err
		}
		// The child registry attaches only once the builder has actually
		// registered subcommands into it.
		if e.children == nil && len(child.entries) > 0 {
			e.children = child
		}

		if err := p.runLoaders(args); err != nil {
			return err
		}
		p.applyDefaults(args)

		// The help trigger outranks default-subcommand promotion, unless a
		// child command actually goes by that name.
		if len(rem) > 0 && rem[0] == p.helpTrigger {
			if _, ok := child.lookup(rem[0]); !ok {
				p.renderHelp(path, child.listing())
				return ErrHelpShown
			}
		}

		if len(child.entries) > 0 {
			if sub, consumed := child.matchDepth(rem); sub != nil {
				subPath, subRem := path, rem
				if consumed {
					subPath = append(append([]string(nil), path...), rem[0])
					subRem = rem[1:]
				}
				return p.runCommand(sub, subPath, subRem, args)
			}
		}

		if err := p.validate(args, e); err != nil {
			return err
		}
		consumed, err := bindPositionals(args, e.demanded, e.optional, rem)
		if err != nil {
			return err
		}
		args["_"] = append(append([]string(nil), path...), rem[consumed:]...)
		if err := p.validateValues(args); err != nil {
			return err
		}
		return p.runHandler(e, args)
	})
}

// settleBuilder normalizes the three builder completion protocols into one
// Deferred outcome: synchronous returns become already-settled Deferreds and
// callback-style builders settle when their done callback fires. A flat
// option map configures the command scope directly, and a nested module
// registers itself as a subcommand.
func (p *Parser) settleBuilder(b any) *Deferred {
	switch b := b.(type) {
	case nil:
		return settled(nil)
	case BuilderFunc:
		return settled(b(p))
	case func(*Parser) error:
		return settled(b(p))
	case DeferredBuilderFunc:
		return deferredOrSettled(b(p))
	case func(*Parser) *Deferred:
		return deferredOrSettled(b(p))
	case CallbackBuilderFunc:
		return adaptCallback(p, b)
	case func(*Parser, func(error)):
		return adaptCallback(p, b)
	case map[string]Option:
		p.Options(b)
		return settled(nil)
	case *CommandModule:
		return settled(p.reg.register(b, nil, nil, nil))
	case CommandModule:
		return settled(p.reg.register(&b, nil, nil, nil))
	default:
		return settled(fmt.Errorf("unsupported builder type %T", b))
	}
}

func deferredOrSettled(d *Deferred) *Deferred {
	if d == nil {
		return settled(nil)
	}
	return d
}

func adaptCallback(p *Parser, b func(*Parser, func(error))) *Deferred {
	d := NewDeferred()
	b(p, func(err error) {
		if err != nil {
			d.Reject(err)
		} else {
			d.Resolve()
		}
	})
	return d
}

// runHandler invokes the matched handler with the bound result object. A
// deferred handler suspends completion of the parse until it settles; a
// rejection surfaces as a HandlerRejectionError carrying the original
// cause, with buffered diagnostic output flushed first.
func (p *Parser) runHandler(e *CommandEntry, args Arguments) error {
	switch h := e.handler.(type) {
	case nil:
		return nil
	case HandlerFunc:
		return h(args)
	case func(Arguments) error:
		return h(args)
	case DeferredHandlerFunc:
		return p.awaitHandler(e, h(args))
	case func(Arguments) *Deferred:
		return p.awaitHandler(e, h(args))
	default:
		return fmt.Errorf("unsupported handler type %T", e.handler)
	}
}

func (p *Parser) awaitHandler(e *CommandEntry, d *Deferred) error {
	if d == nil {
		return nil
	}
	if err := d.Wait(); err != nil {
		p.flush()
		return &HandlerRejectionError{Command: e.name, Cause: err}
	}
	return nil
}

// tokenize splits argv using the flag kinds currently configured. Flags for
// options a builder has not yet registered tokenize as value-consuming.
func (p *Parser) tokenize(argv []string) tokens.Result {
	specs := make(map[string]tokens.Spec)
	for key, d := range p.settings.opts {
		spec := tokens.Spec{Bool: d.typ == "boolean", Collect: d.typ == "array"}
		for _, n := range p.keyForms(key) {
			specs[n] = spec
		}
	}
	return tokens.Split(argv, specs)
}

// mergeFlags writes tokenized flag values into the result object under
// canonical keys, aliases, and camel-case twins.
func (p *Parser) mergeFlags(args Arguments, flags map[string][]string) {
	for name, vals := range flags {
		if len(vals) == 0 {
			continue
		}
		canonical := p.settings.canonicalKey(name)
		d := p.settings.opts[canonical]
		var v any
		switch {
		case d != nil && d.typ == "array":
			arr := make([]any, 0, len(vals))
			for _, s := range vals {
				arr = append(arr, coerceToken(s))
			}
			v = arr
		case d != nil && d.typ == "boolean":
			b, err := strconv.ParseBool(vals[len(vals)-1])
			v = b || err != nil
		case d != nil && d.typ == "string":
			v = vals[len(vals)-1]
		default:
			v = coerceToken(vals[len(vals)-1])
		}
		p.setAll(args, canonical, v)
	}
}

func (p *Parser) renderHelp(path []string, listing []CommandListing) {
	p.usage.RenderHelp(p.buf, p.scriptName, path, listing)
}

// reportFailure flushes buffered help output, then hands the failure to the
// configured reporter or renders it through the usage renderer.
func (p *Parser) reportFailure(err error) {
	p.flush()
	if p.failFn != nil {
		p.failFn(err.Error(), err)
		return
	}
	p.usage.RenderFailure(p.out, err.Error())
}

func (p *Parser) flush() {
	if p.buf != nil && p.buf.Len() > 0 {
		p.out.Write(p.buf.Bytes())
		p.buf.Reset()
	}
}
