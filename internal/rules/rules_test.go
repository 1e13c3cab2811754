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

package rules_test

import (
	"errors"
	"testing"

	"fillmore-labs.com/closeguard/internal/config"
	. "fillmore-labs.com/closeguard/internal/rules"
)

func TestAll(t *testing.T) {
	t.Parallel()

	var flags config.RuleFlags

	for i, d := range All() {
		if i > 0 && All()[i-1].ID >= d.ID {
			t.Errorf("%s is not ordered after %s", d.ID, All()[i-1].ID)
		}

		if flags&d.Flag != 0 {
			t.Errorf("%s reuses flag %b", d.ID, d.Flag)
		}

		flags |= d.Flag
	}

	if flags != config.AllRules {
		t.Errorf("Rules cover flags %b, want %b", flags, config.AllRules)
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	if got, want := CloseCreated.Message(), "Close created resource (IDISP001)"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}

	if got, want := NoUseClosed.URL(), "#idisp016"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestByID(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		id   string
		want Descriptor
		err  error
	}{
		{"IDISP003", CloseBeforeReassign, nil},
		{"idisp014", SingleHTTPClient, nil},
		{"IDISP013", Descriptor{}, ErrUnknownRule},
		{"", Descriptor{}, ErrUnknownRule},
	}

	for _, tt := range tests {
		got, err := ByID(tt.id)
		if !errors.Is(err, tt.err) {
			t.Errorf("ByID(%q) error = %v, want %v", tt.id, err, tt.err)
		}

		if got != tt.want {
			t.Errorf("ByID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		in   string
		want Severity
		err  error
	}{
		{"info", Info, nil},
		{"Warning", Warning, nil},
		{"error", Info, ErrUnknownSeverity},
	}

	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseSeverity(%q) error = %v, want %v", tt.in, err, tt.err)
		}

		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
