// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFlagForms(t *testing.T) {
	specs := map[string]Spec{
		"verbose": {Bool: true},
		"v":       {Bool: true},
		"output":  {},
		"o":       {},
	}

	tests := []struct {
		name            string
		argv            []string
		wantFlags       map[string][]string
		wantPositionals []string
	}{
		{
			name:            "long bool",
			argv:            []string{"--verbose", "run"},
			wantFlags:       map[string][]string{"verbose": {"true"}},
			wantPositionals: []string{"run"},
		},
		{
			name:            "short bool does not consume",
			argv:            []string{"-v", "run"},
			wantFlags:       map[string][]string{"v": {"true"}},
			wantPositionals: []string{"run"},
		},
		{
			name:            "equals value",
			argv:            []string{"--output=dist", "run"},
			wantFlags:       map[string][]string{"output": {"dist"}},
			wantPositionals: []string{"run"},
		},
		{
			name:            "space value",
			argv:            []string{"run", "--output", "dist"},
			wantFlags:       map[string][]string{"output": {"dist"}},
			wantPositionals: []string{"run"},
		},
		{
			name:            "value flag does not eat a following flag",
			argv:            []string{"--output", "--verbose"},
			wantFlags:       map[string][]string{"output": {""}, "verbose": {"true"}},
			wantPositionals: nil,
		},
		{
			name:            "negative number is a value",
			argv:            []string{"--output", "-5"},
			wantFlags:       map[string][]string{"output": {"-5"}},
			wantPositionals: nil,
		},
		{
			name:            "unknown flag consumes a value",
			argv:            []string{"--limit", "10"},
			wantFlags:       map[string][]string{"limit": {"10"}},
			wantPositionals: nil,
		},
		{
			name:            "last value wins for non-collect flags",
			argv:            []string{"--output", "a", "--output", "b"},
			wantFlags:       map[string][]string{"output": {"b"}},
			wantPositionals: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Split(tt.argv, specs)
			assert.Equal(t, tt.wantFlags, r.Flags)
			assert.Equal(t, tt.wantPositionals, r.Positionals)
			assert.Nil(t, r.Rest)
		})
	}
}

func TestSplitCollectFlags(t *testing.T) {
	specs := map[string]Spec{"tag": {Collect: true}}
	r := Split([]string{"--tag", "a", "--tag=b", "run"}, specs)
	assert.Equal(t, map[string][]string{"tag": {"a", "b"}}, r.Flags)
	assert.Equal(t, []string{"run"}, r.Positionals)
}

func TestSplitDoubleDash(t *testing.T) {
	r := Split([]string{"exec", "sh", "--", "-c", "--verbose", "ls"}, nil)
	assert.Equal(t, []string{"exec", "sh"}, r.Positionals)
	assert.Equal(t, []string{"-c", "--verbose", "ls"}, r.Rest)
	assert.Empty(t, r.Flags)
}

func TestSplitLoneDashIsPositional(t *testing.T) {
	r := Split([]string{"cat", "-"}, nil)
	assert.Equal(t, []string{"cat", "-"}, r.Positionals)
}

func TestIsNumeric(t *testing.T) {
	for s, want := range map[string]bool{
		"10":    true,
		"-10":   true,
		"+3.14": true,
		"3.1.4": false,
		"-":     false,
		"x10":   false,
		"":      false,
	} {
		assert.Equal(t, want, isNumeric(s), "isNumeric(%q)", s)
	}
}
