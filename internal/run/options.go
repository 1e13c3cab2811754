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

package run

import (
	"time"

	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/rules"
)

// Options represent configuration options for the closeguard analyzer.
type Options struct {
	// Rules represent the rules to be enabled.
	Rules config.Rules

	// Behavior holds behavioral options.
	Behavior config.Behavior

	// MinSeverity suppresses rules with a lower severity.
	MinSeverity rules.Severity

	// Factories are additional functions returning resources owned by the caller,
	// as "path.Func" or "(path.Type).Method".
	Factories []string

	// Timeout limits the analysis of a single package, zero means no limit.
	Timeout time.Duration
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Rules:       config.DefaultRules(),
		Behavior:    config.DefaultBehavior(),
		MinSeverity: rules.Info,
	}
}
