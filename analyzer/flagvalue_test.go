// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/closeguard/analyzer"
	"fillmore-labs.com/closeguard/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.RuleFlags
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.CloseCreated,
			args:    []string{"-idisp002"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.CloseMember,
			args:    []string{"-idisp002=false"},
			want:    false,
		},
		{
			name:    "Keep",
			initial: config.CloseMember,
			args:    nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var flags config.Rules
			flags.Set(tt.initial, true)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.CloseMember
			fv := NewBoolValue(&flags, value)
			fs.Var(fv, "idisp002", "enable IDISP002")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("CloseMember enabled = %v, want %v", flags.Enabled(value), tt.want)
			}
		})
	}
}

func TestFlagValueInvalid(t *testing.T) {
	t.Parallel()

	var flags config.Rules

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	fs.Var(NewBoolValue(&flags, config.CloseMember), "idisp002", "enable IDISP002")

	if err := fs.Parse([]string{"-idisp002=maybe"}); err == nil {
		t.Error("Expected parse error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	a := New()

	const expectedUsage = `
  -idisp001
    	enable IDISP001: Close created resource (default true)
`

	var out strings.Builder
	a.Flags.SetOutput(&out)
	a.Flags.PrintDefaults()

	if got, want := out.String(), expectedUsage[1:]; !strings.Contains(got, want) {
		t.Errorf("PrintDefaults() = %q, want to contain %q", got, want)
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	a := New()

	args := []string{"-min-severity=warning", "-factory=example.com/db.Connect", "-factory=(example.com/db.Pool).Acquire", "-timeout=1m", "-generated"}
	if err := a.Flags.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for name, want := range map[string]string{
		"min-severity": "Warning",
		"factory":      "(example.com/db.Pool).Acquire",
		"timeout":      "1m0s",
		"generated":    "true",
	} {
		if got := a.Flags.Lookup(name).Value.String(); got != want {
			t.Errorf("Flag %s = %q, want %q", name, got, want)
		}
	}

	a.Flags.SetOutput(&strings.Builder{})

	if err := a.Flags.Parse([]string{"-min-severity=error"}); err == nil {
		t.Error("Expected error for unknown severity")
	}
}
