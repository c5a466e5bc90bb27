// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yargs implements a command-resolution and positional-argument
// binding engine for command-line tools: commands are declared with usage
// strings like "get <id> [fields..]", arranged in a tree of subcommands,
// and dispatched against raw argv tokens.
//
// The library is designed around declarative command definitions and follows
// these principles:
//   - Usage strings compile to positional schemas at registration time
//   - Commands, aliases, and a default command resolve positionally
//   - Builders configure command-local options that never leak to siblings
//   - Consistent and predictable parsing behavior
//
// # Basic Usage
//
// Commands are registered with a definition string, a description, an
// optional builder, and a handler:
//
//	p := yargs.New()
//	p.Command("get <id> [fields..]", "Fetch a record", nil,
//	    func(args yargs.Arguments) error {
//	        fmt.Println("id:", args.String("id"), "fields:", args.Strings("fields"))
//	        return nil
//	    })
//	argv, err := p.Parse(os.Args[1:])
//
// Required positionals use <angle brackets>, optional ones [square brackets].
// A trailing ".." on the final positional makes it variadic, absorbing all
// remaining tokens. Hyphenated names are bound under both the literal key and
// a camel-case twin ("file-name" and "fileName").
//
// # Subcommands
//
// A builder receives the parser scoped to its command and may register
// nested subcommands or command-local options:
//
//	p.Command("remote", "Manage remotes", func(cp *yargs.Parser) error {
//	    cp.Command("add <name> <url>", "Add a remote", nil, handleRemoteAdd)
//	    cp.Command("rm <name>", "Remove a remote", nil, handleRemoteRm)
//	    return nil
//	}, nil)
//
// Options registered without Global set are local to the command whose
// builder registered them; they are reset before each matched command runs
// and restored afterwards.
//
// # Default Commands
//
// A command aliased to "*" (or defined with a "$0" usage prefix) is selected
// when no registered command matches the first token:
//
//	p.Command([]string{"serve [port]", "*"}, "Run the server", nil, handleServe)
//
// # Deferred Builders and Handlers
//
// Builders may complete synchronously, return a *Deferred, or accept a
// completion callback; handlers may return an error or a *Deferred. See
// Deferred for details.
package yargs
