// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// UsageRenderer renders command help and failure diagnostics. The command
// listing is passed through verbatim from the registry.
type UsageRenderer interface {
	RenderHelp(w io.Writer, scriptName string, path []string, listing []CommandListing)
	RenderFailure(w io.Writer, msg string)
}

// colorUsage is the default renderer: bold headings and red failure text on
// terminals, plain text otherwise, with descriptions wrapped to the terminal
// width.
type colorUsage struct{}

// NewUsageRenderer returns the default help renderer.
func NewUsageRenderer() UsageRenderer {
	return &colorUsage{}
}

func (u *colorUsage) RenderHelp(w io.Writer, scriptName string, path []string, listing []CommandListing) {
	tty := writerIsTTY(w)
	width := renderWidth(w)

	prefix := scriptName
	if len(path) > 0 {
		prefix += " " + strings.Join(path, " ")
	}
	fmt.Fprintf(w, "Usage: %s <command> [options]\n", prefix)

	if len(listing) == 0 {
		return
	}
	heading := "Commands:"
	if tty {
		heading = color.New(color.Bold).Sprint(heading)
	}
	fmt.Fprintf(w, "\n%s\n", heading)

	usageCol := 0
	for _, row := range listing {
		if len(row.Usage) > usageCol {
			usageCol = len(row.Usage)
		}
	}

	for _, row := range listing {
		desc := row.Description
		if len(row.Aliases) > 0 {
			desc += fmt.Sprintf(" [aliases: %s]", strings.Join(row.Aliases, ", "))
		}
		if row.IsDefault {
			desc += " [default]"
		}
		left := fmt.Sprintf("  %-*s  ", usageCol, row.Usage)
		fmt.Fprintf(w, "%s%s\n", left, wrapIndent(desc, width-len(left), len(left)))
	}
}

func (u *colorUsage) RenderFailure(w io.Writer, msg string) {
	if writerIsTTY(w) {
		msg = color.New(color.FgRed).Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}

func writerIsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func renderWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return 80
}

// wrapIndent word-wraps text to fit the given width, indenting continuation
// lines by indent spaces. Width values too small to be useful disable
// wrapping.
func wrapIndent(text string, width, indent int) string {
	if width < 16 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	line := 0
	for i, word := range words {
		if i > 0 {
			if line+1+len(word) > width {
				b.WriteString("\n" + strings.Repeat(" ", indent))
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
