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

package report_test

import (
	"go/ast"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/config"
	. "fillmore-labs.com/closeguard/internal/report"
	"fillmore-labs.com/closeguard/internal/rules"
	"fillmore-labs.com/closeguard/internal/testsource"
)

const src = `package test

import "os"

func _() {
	os.Open("a")
	os.Open("b") //nolint:idisp004
	os.Open("c") //nolint:closeguard
	os.Open("d") //nolint:idisp001
}
`

func TestReport(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)

	var got []analysis.Diagnostic
	p.Report = func(d analysis.Diagnostic) { got = append(got, d) }

	enabled := config.DefaultRules()
	enabled.Disable(config.NoUseClosed)

	r := New(p, enabled, rules.Info)
	r.SetFile(astutil.NewCurrentFile(p.Fset, p.Files[0]))

	for c := range in.Root().Preorder((*ast.ExprStmt)(nil)) {
		n := c.Node()
		r.Report(rules.NoIgnoreCreated, n)
		r.Report(rules.NoIgnoreCreated, n)
		r.Report(rules.NoUseClosed, n)
	}

	if len(got) != 2 {
		t.Fatalf("Got %d diagnostics, want 2", len(got))
	}

	for _, d := range got {
		if d.Category != "IDISP004" || d.Message != rules.NoIgnoreCreated.Message() {
			t.Errorf("Unexpected diagnostic %q (%s)", d.Message, d.Category)
		}
	}
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	p, _ := testsource.Load(t, src)
	r := New(p, config.DefaultRules(), rules.Warning)

	if r.Enabled(rules.ReturnTypeCloser) {
		t.Error("Info rule enabled with minimum severity warning")
	}

	if !r.Enabled(rules.CloseCreated) {
		t.Error("Warning rule disabled with minimum severity warning")
	}
}
