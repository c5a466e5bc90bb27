// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestLatestDefaultCommandWinsDispatch(t *testing.T) {
	var firstRan, secondRan bool
	p := New().SetOutput(io.Discard)
	p.Command([]string{"first", "*"}, "first", nil, func(Arguments) error {
		firstRan = true
		return nil
	})
	p.Command([]string{"second <name>", "*"}, "second", nil, func(args Arguments) error {
		secondRan = true
		return nil
	})

	args, err := p.Parse([]string{"unmatched"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if firstRan {
		t.Error("earlier default command ran; the most recent default registration must win")
	}
	if !secondRan {
		t.Error("later default command did not run")
	}
	if args["name"] != "unmatched" {
		t.Errorf("name = %v, want the unmatched token bound as a positional", args["name"])
	}
}

func TestRepeatedParseInvokesHandlerOncePerCall(t *testing.T) {
	counter := 0
	p := New().SetOutput(io.Discard)
	p.Command("foo", "counts", nil, func(Arguments) error {
		counter++
		return nil
	})

	if counter != 0 {
		t.Fatalf("counter = %d before any parse, want 0", counter)
	}
	for want := 1; want <= 2; want++ {
		if _, err := p.Parse([]string{"foo"}); err != nil {
			t.Fatalf("Parse() #%d error = %v", want, err)
		}
		if counter != want {
			t.Fatalf("counter = %d after parse #%d, want %d", counter, want, want)
		}
	}
}

func TestBuilderProtocolSynchronous(t *testing.T) {
	var configured bool
	p := New().SetOutput(io.Discard)
	p.Command("run", "run", func(cp *Parser) error {
		configured = true
		return nil
	}, nil)

	if _, err := p.Parse([]string{"run"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !configured {
		t.Error("synchronous builder did not run")
	}
}

func TestBuilderProtocolDeferred(t *testing.T) {
	order := []string{}
	p := New().SetOutput(io.Discard)
	p.Command("run", "run", DeferredBuilderFunc(func(cp *Parser) *Deferred {
		d := NewDeferred()
		go func() {
			order = append(order, "builder")
			d.Resolve()
		}()
		return d
	}), func(Arguments) error {
		order = append(order, "handler")
		return nil
	})

	if _, err := p.Parse([]string{"run"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []string{"builder", "handler"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v (handler waits for the builder to settle)", order, want)
	}
}

func TestBuilderProtocolCallback(t *testing.T) {
	var configured bool
	p := New().SetOutput(io.Discard)
	p.Command("run", "run", CallbackBuilderFunc(func(cp *Parser, done func(error)) {
		configured = true
		done(nil)
	}), nil)

	if _, err := p.Parse([]string{"run"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !configured {
		t.Error("callback builder did not run")
	}
}

func TestBuilderFailureSkipsHandler(t *testing.T) {
	boom := errors.New("boom")
	var handled bool
	p := New().SetOutput(io.Discard)
	p.Command("run", "run", func(cp *Parser) error {
		return boom
	}, func(Arguments) error {
		handled = true
		return nil
	})

	_, err := p.Parse([]string{"run"})
	if !errors.Is(err, boom) {
		t.Fatalf("Parse() error = %v, want the builder failure", err)
	}
	if handled {
		t.Error("handler ran after the builder failed")
	}
}

func TestBuilderOptionMap(t *testing.T) {
	var got Arguments
	p := New().SetOutput(io.Discard)
	p.Command("serve", "serve", map[string]Option{
		"port": {Type: "number", Default: 8080},
	}, func(args Arguments) error {
		got = args
		return nil
	})

	if _, err := p.Parse([]string{"serve"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["port"] != 8080 {
		t.Errorf("port = %v, want the option-map default", got["port"])
	}
}

func TestDeferredHandlerSuspendsCompletion(t *testing.T) {
	var settledLate bool
	p := New().SetOutput(io.Discard)
	p.Command("work", "work", nil, DeferredHandlerFunc(func(Arguments) *Deferred {
		d := NewDeferred()
		go func() {
			settledLate = true
			d.Resolve()
		}()
		return d
	}))

	if _, err := p.Parse([]string{"work"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !settledLate {
		t.Error("Parse returned before the deferred handler settled")
	}
}

func TestDeferredHandlerRejectionPreservesCause(t *testing.T) {
	cause := errors.New("backend unavailable")
	var out bytes.Buffer
	p := New().SetOutput(&out)
	p.Command("work", "work", nil, func(Arguments) *Deferred {
		d := NewDeferred()
		d.Reject(cause)
		return d
	})

	_, err := p.Parse([]string{"work"})
	var rej *HandlerRejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("Parse() error = %v, want *HandlerRejectionError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("original cause not preserved through the rejection")
	}
	if rej.Command != "work" {
		t.Errorf("Command = %q, want work", rej.Command)
	}
	if !strings.Contains(out.String(), "backend unavailable") {
		t.Errorf("output = %q, want the failure rendered", out.String())
	}
}

func TestFailureReporterReceivesMessageAndError(t *testing.T) {
	var gotMsg string
	var gotErr error
	p := New().SetOutput(io.Discard)
	p.Fail(func(msg string, err error) {
		gotMsg = msg
		gotErr = err
	})
	p.Command("foo <bar> <awesome>", "needs two", nil, nil)

	_, err := p.Parse([]string{"foo", "one"})
	if err == nil {
		t.Fatal("Parse() error = nil, want a binding failure")
	}
	if !strings.Contains(gotMsg, "got 1, need at least 2") {
		t.Errorf("reporter message = %q, want the count mismatch", gotMsg)
	}
	var berr *BindingCountError
	if !errors.As(gotErr, &berr) {
		t.Errorf("reporter error = %v, want *BindingCountError", gotErr)
	}
}

func TestHelpInterception(t *testing.T) {
	var handled bool
	var out bytes.Buffer
	p := New().ScriptName("app").SetOutput(&out)
	p.Command("remote", "Manage remotes", func(cp *Parser) error {
		cp.Command("add <name>", "Add a remote", nil, nil)
		return nil
	}, func(Arguments) error {
		handled = true
		return nil
	})

	_, err := p.Parse([]string{"remote", "help"})
	if !errors.Is(err, ErrHelpShown) {
		t.Fatalf("Parse() error = %v, want ErrHelpShown", err)
	}
	if handled {
		t.Error("handler ran despite help interception")
	}
	if !strings.Contains(out.String(), "add <name>") {
		t.Errorf("help output = %q, want the subcommand listing", out.String())
	}
}

func TestHelpOutranksDefaultSubcommand(t *testing.T) {
	var listRan, listBuilt bool
	var out bytes.Buffer
	p := New().ScriptName("app").SetOutput(&out)
	p.Command("remote", "Manage remotes", func(cp *Parser) error {
		cp.Command("add <name>", "Add a remote", nil, nil)
		cp.Command([]string{"list", "*"}, "List remotes", func(lp *Parser) error {
			listBuilt = true
			return nil
		}, func(Arguments) error {
			listRan = true
			return nil
		})
		return nil
	}, nil)

	_, err := p.Parse([]string{"remote", "help"})
	if !errors.Is(err, ErrHelpShown) {
		t.Fatalf("Parse() error = %v, want ErrHelpShown", err)
	}
	if listBuilt || listRan {
		t.Errorf("default subcommand built=%v ran=%v; help must not promote the default", listBuilt, listRan)
	}
	if !strings.Contains(out.String(), "add <name>") || !strings.Contains(out.String(), "list") {
		t.Errorf("help output = %q, want the full subcommand listing", out.String())
	}
}

func TestHelpNamedSubcommandStillDispatches(t *testing.T) {
	var helped bool
	p := New().SetOutput(io.Discard)
	p.Command("remote", "Manage remotes", func(cp *Parser) error {
		cp.Command("help", "Remote help", nil, func(Arguments) error {
			helped = true
			return nil
		})
		return nil
	}, nil)

	if _, err := p.Parse([]string{"remote", "help"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !helped {
		t.Error("a subcommand literally named for the help trigger must dispatch")
	}
}

func TestCustomHelpTrigger(t *testing.T) {
	var handled bool
	var out bytes.Buffer
	p := New().ScriptName("app").SetOutput(&out).HelpTrigger("ayuda")
	p.Command("remote", "Manage remotes", func(cp *Parser) error {
		cp.Command("add <name>", "Add a remote", nil, nil)
		return nil
	}, func(Arguments) error {
		handled = true
		return nil
	})

	_, err := p.Parse([]string{"remote", "ayuda"})
	if !errors.Is(err, ErrHelpShown) {
		t.Fatalf("Parse() error = %v, want ErrHelpShown on the configured trigger", err)
	}
	if handled {
		t.Error("handler ran despite help interception")
	}
	if !strings.Contains(out.String(), "add <name>") {
		t.Errorf("help output = %q, want the subcommand listing", out.String())
	}

	handled = false
	if _, err := p.Parse([]string{"remote", "help"}); err != nil {
		t.Fatalf("Parse() error = %v, the default token must no longer intercept", err)
	}
	if !handled {
		t.Error("handler did not run; \"help\" is an ordinary token once the trigger changes")
	}
}

func TestTopLevelHelp(t *testing.T) {
	var out bytes.Buffer
	p := New().ScriptName("app").SetOutput(&out)
	p.Command("get <id>", "Fetch a record", nil, nil)

	_, err := p.Parse([]string{"help"})
	if !errors.Is(err, ErrHelpShown) {
		t.Fatalf("Parse() error = %v, want ErrHelpShown", err)
	}
	if !strings.Contains(out.String(), "get <id>") || !strings.Contains(out.String(), "Fetch a record") {
		t.Errorf("help output = %q, want the command listing", out.String())
	}
}

func TestNestedSubcommandDispatch(t *testing.T) {
	var got Arguments
	p := New().SetOutput(io.Discard)
	p.Command("tag", "Manage tags", func(cp *Parser) error {
		cp.Command("add <item-id> <tags..>", "Tag an item", nil, func(args Arguments) error {
			got = args
			return nil
		})
		return nil
	}, nil)

	if _, err := p.Parse([]string{"tag", "add", "7", "urgent", "today"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got == nil {
		t.Fatal("nested handler did not run")
	}
	if got["item-id"] != 7 || got["itemId"] != 7 {
		t.Errorf("item-id = %v / itemId = %v, want 7 under both keys", got["item-id"], got["itemId"])
	}
	if want := []any{"urgent", "today"}; !reflect.DeepEqual(got["tags"], want) {
		t.Errorf("tags = %v, want %v", got["tags"], want)
	}
	if want := []string{"tag", "add"}; !reflect.DeepEqual(got["_"], want) {
		t.Errorf(`args["_"] = %v, want the command path %v`, got["_"], want)
	}
}

func TestDoubleDashRest(t *testing.T) {
	var got Arguments
	p := New().SetOutput(io.Discard)
	p.Command("exec <cmd>", "exec", nil, func(args Arguments) error {
		got = args
		return nil
	})

	if _, err := p.Parse([]string{"exec", "sh", "--", "-c", "ls"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["cmd"] != "sh" {
		t.Errorf("cmd = %v, want sh", got["cmd"])
	}
	if want := []string{"-c", "ls"}; !reflect.DeepEqual(got["--"], want) {
		t.Errorf(`args["--"] = %v, want %v`, got["--"], want)
	}
}

func TestFlagAliasesAndCamelTwins(t *testing.T) {
	p := New().SetOutput(io.Discard)
	p.Option("log-level", Option{Aliases: []string{"l"}, Type: "string"})

	args, err := p.Parse([]string{"-l", "debug"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, key := range []string{"log-level", "logLevel", "l"} {
		if args[key] != "debug" {
			t.Errorf("args[%q] = %v, want debug", key, args[key])
		}
	}
}

func TestCamelFlagInputResolvesHyphenatedOption(t *testing.T) {
	p := New().SetOutput(io.Discard)
	p.Option("log-level", Option{Aliases: []string{"l"}, Type: "string"})

	args, err := p.Parse([]string{"--logLevel", "debug"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, key := range []string{"log-level", "logLevel", "l"} {
		if args[key] != "debug" {
			t.Errorf("args[%q] = %v, want debug (camel input binds the configured option)", key, args[key])
		}
	}
}

func TestResetDiscardsState(t *testing.T) {
	p := New().SetOutput(io.Discard)
	p.Command("foo", "foo", nil, nil)
	p.Option("bar", Option{})
	p.Reset()

	if names := p.CommandNames(); len(names) != 0 {
		t.Errorf("CommandNames() after Reset = %v, want none", names)
	}
	if len(p.settings.opts) != 0 {
		t.Errorf("settings after Reset = %v, want empty", p.settings.opts)
	}
}
