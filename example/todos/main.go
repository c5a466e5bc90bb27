// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command todos is a small demo CLI for the yargs package: nested commands,
// a default command, variadic positionals, and a config file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/IanMoroney/yargs"
)

func main() {
	p := yargs.New().ScriptName("todos")

	p.Option("verbose", yargs.Option{
		Aliases:  []string{"v"},
		Type:     "boolean",
		Describe: "Chatty output",
	})
	p.ConfigFile(".todos.yaml", true)

	p.Command("add <text..>", "Add a todo item", nil, func(args yargs.Arguments) error {
		fmt.Println("added:", args.Strings("text"))
		return nil
	})

	p.Command([]string{"list", "ls", "*"}, "List todo items", nil, func(args yargs.Arguments) error {
		if args.Bool("verbose") {
			fmt.Println("listing with details")
		}
		fmt.Println("nothing to do")
		return nil
	})

	p.Command("tag", "Manage tags", func(cp *yargs.Parser) error {
		cp.Command("add <item-id> <tags..>", "Tag an item", nil, func(args yargs.Arguments) error {
			fmt.Printf("tag %v onto item %v\n", args.Strings("tags"), args.String("itemId"))
			return nil
		})
		cp.Command("rm <item-id> [tags..]", "Untag an item", nil, func(args yargs.Arguments) error {
			fmt.Printf("untag %v from item %v\n", args.Strings("tags"), args.String("itemId"))
			return nil
		})
		return nil
	}, nil)

	if _, err := p.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, yargs.ErrHelpShown) {
			return
		}
		os.Exit(1)
	}
}
