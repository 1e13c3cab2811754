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

package gclplugin

import (
	"fmt"
	"time"

	closeguard "fillmore-labs.com/closeguard/analyzer"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/rules"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Generated enables checks of generated files.
	Generated *bool `json:"generated,omitzero"`
	// Disable lists rules to disable, like "IDISP005".
	Disable []string `json:"disable,omitzero"`
	// MinSeverity suppresses rules below "info" or "warning".
	MinSeverity *string `json:"min-severity,omitzero"`
	// Factories are additional functions returning resources owned by the caller.
	Factories []string `json:"factories,omitzero"`
	// Timeout limits the analysis time per package, like "30s".
	Timeout *string `json:"timeout,omitzero"`
}

// Options converts [Settings] into a list of [closeguard.Option] for the closeguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil), and
// rejects unknown rules, severities, factory names and durations.
func (s Settings) Options() ([]closeguard.Option, error) {
	var opts []closeguard.Option

	opts = appendOption(opts, s.Generated, closeguard.WithGenerated)

	for _, id := range s.Disable {
		if _, err := rules.ByID(id); err != nil {
			return nil, fmt.Errorf("closeguard: disable: %w", err)
		}

		opts = append(opts, closeguard.WithRule(id, false))
	}

	if s.MinSeverity != nil {
		if _, err := rules.ParseSeverity(*s.MinSeverity); err != nil {
			return nil, fmt.Errorf("closeguard: min-severity: %w", err)
		}

		opts = append(opts, closeguard.WithMinSeverity(*s.MinSeverity))
	}

	if len(s.Factories) > 0 {
		if _, err := registry.New(s.Factories...); err != nil {
			return nil, fmt.Errorf("closeguard: factories: %w", err)
		}

		opts = append(opts, closeguard.WithFactories(s.Factories...))
	}

	if s.Timeout != nil {
		timeout, err := time.ParseDuration(*s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("closeguard: timeout: %w", err)
		}

		opts = append(opts, closeguard.WithTimeout(timeout))
	}

	return opts, nil
}

// appendOption appends a non-nil setting to a [closeguard.Option] list.
func appendOption[T any](opts []closeguard.Option, value *T, constructor func(T) closeguard.Option) []closeguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
