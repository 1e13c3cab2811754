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

// Package report emits closeguard diagnostics.
package report

import (
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/rules"
)

// Reporter filters and reports diagnostics of a single pass.
type Reporter struct {
	pass  *analysis.Pass
	file  astutil.CurrentFile
	rules config.Rules
	min   rules.Severity
	seen  map[key]struct{}
}

type key struct {
	id  string
	pos token.Pos
}

// New creates a [Reporter] for the enabled rules with at least the given severity.
func New(p *analysis.Pass, enabled config.Rules, minSeverity rules.Severity) *Reporter {
	return &Reporter{
		pass:  p,
		rules: enabled,
		min:   minSeverity,
		seen:  make(map[key]struct{}),
	}
}

// SetFile sets the file line-level suppressions are read from.
func (r *Reporter) SetFile(file astutil.CurrentFile) {
	r.file = file
}

// Enabled reports whether diagnostics for d would be emitted at all.
func (r *Reporter) Enabled(d rules.Descriptor) bool {
	return r.rules.Enabled(d.Flag) && d.Severity >= r.min
}

// Report emits d for the range rng, unless the rule is disabled, the line is
// suppressed or an identical diagnostic was already emitted.
func (r *Reporter) Report(d rules.Descriptor, rng analysis.Range) {
	if !r.Enabled(d) {
		return
	}

	pos := rng.Pos()

	k := key{d.ID, pos}
	if _, ok := r.seen[k]; ok {
		return
	}

	r.seen[k] = struct{}{}

	if r.file.Contains(pos) && r.file.NoLintComment(pos, d.ID) {
		return
	}

	r.pass.Report(analysis.Diagnostic{
		Pos:      pos,
		End:      rng.End(),
		Category: d.ID,
		Message:  d.Message(),
		URL:      d.URL(),
	})
}
