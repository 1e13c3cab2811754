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

package config

// RuleFlags selects individual diagnostics.
type RuleFlags uint32

const (
	// CloseCreated reports created resources that are never closed.
	CloseCreated RuleFlags = 1 << iota

	// CloseMember reports fields not closed in the Close method.
	CloseMember

	// CloseBeforeReassign reports resources overwritten before being closed.
	CloseBeforeReassign

	// NoIgnoreCreated reports discarded resources.
	NoIgnoreCreated

	// ReturnTypeCloser reports functions returning a created resource as a non-closer type.
	ReturnTypeCloser

	// ImplementCloser reports types owning a resource without a Close method.
	ImplementCloser

	// NoCloseInjected reports closing of resources owned elsewhere.
	NoCloseInjected

	// NoMixedOwnership reports fields assigned both created and injected resources.
	NoMixedOwnership

	// CloseSignature reports Close methods not matching io.Closer.
	CloseSignature

	// CloseEmbedded reports Close methods not closing an embedded resource.
	CloseEmbedded

	// NoReturnClosed reports returning a closed resource.
	NoReturnClosed

	// AccessorCreates reports accessor methods returning created resources.
	AccessorCreates

	// SingleHTTPClient reports http.Client instances created outside of package initialization.
	SingleHTTPClient

	// NoUseClosed reports uses of closed resources.
	NoUseClosed

	lastRule
)

// AllRules has every rule flag set.
const AllRules = lastRule - 1

// Rules represent the set of enabled diagnostics.
type Rules = BitMask[RuleFlags]

// DefaultRules returns the default set of enabled diagnostics.
func DefaultRules() Rules {
	return NewBitMask(AllRules)
}

// Config holds behavioral flags.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota
)

// Behavior represents the analyzer's behavioral options.
type Behavior = BitMask[Config]

// DefaultBehavior returns the default behavior.
func DefaultBehavior() Behavior {
	return NewBitMask[Config]()
}
