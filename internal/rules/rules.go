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

// Package rules describes the diagnostics closeguard reports.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"fillmore-labs.com/closeguard/internal/config"
)

// Severity ranks diagnostics.
type Severity uint8

//go:generate go tool stringer -type Severity
const (
	// Info diagnostics point out questionable API shapes.
	Info Severity = iota

	// Warning diagnostics point out likely resource leaks or misuse.
	Warning
)

// ErrUnknownSeverity is returned for severity names that can't be parsed.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity parses "info" or "warning", ignoring case.
func ParseSeverity(s string) (Severity, error) {
	for sev := range Warning + 1 {
		if strings.EqualFold(s, sev.String()) {
			return sev, nil
		}
	}

	return Info, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// Descriptor describes a diagnostic.
type Descriptor struct {
	ID       string           // Stable identifier, like "IDISP001"
	Title    string           // Human-readable title
	Severity Severity         // Default severity
	Flag     config.RuleFlags // Enabling flag
}

// Message returns the fixed diagnostic text.
func (d Descriptor) Message() string {
	return d.Title + " (" + d.ID + ")"
}

// URL returns the anchor of the rule in the documentation.
func (d Descriptor) URL() string {
	return "#" + strings.ToLower(d.ID)
}

// The diagnostics.
var (
	CloseCreated = Descriptor{"IDISP001", "Close created resource", Warning, config.CloseCreated}

	CloseMember = Descriptor{"IDISP002", "Close member", Warning, config.CloseMember}

	CloseBeforeReassign = Descriptor{"IDISP003", "Close previous resource before re-assigning", Warning, config.CloseBeforeReassign}

	NoIgnoreCreated = Descriptor{"IDISP004", "Don't ignore created resource", Warning, config.NoIgnoreCreated}

	ReturnTypeCloser = Descriptor{"IDISP005", "Return type should indicate io.Closer", Info, config.ReturnTypeCloser}

	ImplementCloser = Descriptor{"IDISP006", "Implement io.Closer", Warning, config.ImplementCloser}

	NoCloseInjected = Descriptor{"IDISP007", "Don't close injected resource", Warning, config.NoCloseInjected}

	NoMixedOwnership = Descriptor{"IDISP008", "Don't assign member with injected and created resources", Warning, config.NoMixedOwnership}

	CloseSignature = Descriptor{"IDISP009", "Close method should implement io.Closer", Info, config.CloseSignature}

	CloseEmbedded = Descriptor{"IDISP010", "Call Close of embedded resource", Warning, config.CloseEmbedded}

	NoReturnClosed = Descriptor{"IDISP011", "Don't return closed resource", Warning, config.NoReturnClosed}

	AccessorCreates = Descriptor{"IDISP012", "Accessor method should not return created resource", Info, config.AccessorCreates}

	SingleHTTPClient = Descriptor{"IDISP014", "Use a single instance of http.Client", Warning, config.SingleHTTPClient}

	NoUseClosed = Descriptor{"IDISP016", "Don't use closed resource", Warning, config.NoUseClosed}
)

var all = [...]Descriptor{
	CloseCreated,
	CloseMember,
	CloseBeforeReassign,
	NoIgnoreCreated,
	ReturnTypeCloser,
	ImplementCloser,
	NoCloseInjected,
	NoMixedOwnership,
	CloseSignature,
	CloseEmbedded,
	NoReturnClosed,
	AccessorCreates,
	SingleHTTPClient,
	NoUseClosed,
}

// All returns every diagnostic, ordered by ID.
func All() []Descriptor {
	return all[:]
}

// ErrUnknownRule is returned for rule identifiers that don't exist.
var ErrUnknownRule = errors.New("unknown rule")

// ByID returns the diagnostic with the identifier id, ignoring case.
func ByID(id string) (Descriptor, error) {
	for _, d := range all {
		if strings.EqualFold(d.ID, id) {
			return d, nil
		}
	}

	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownRule, id)
}
