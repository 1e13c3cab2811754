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

package run_test

import (
	"errors"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	. "fillmore-labs.com/closeguard/internal/run"
	"fillmore-labs.com/closeguard/internal/testsource"
)

const src = `package test

import "os"

func _() {
	os.Open("a")
}
`

func TestRunErrors(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)

	if _, err := DefaultOptions().Run(p); !errors.Is(err, ErrResultMissing) {
		t.Errorf("Run without inspector error = %v, want %v", err, ErrResultMissing)
	}

	p.ResultOf = map[*analysis.Analyzer]any{inspect.Analyzer: in}

	o := DefaultOptions()
	o.Factories = []string{"newConn"}

	if _, err := o.Run(p); !errors.Is(err, ErrInvalidFactory) {
		t.Errorf("Run with invalid factory error = %v, want %v", err, ErrInvalidFactory)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)
	p.ResultOf = map[*analysis.Analyzer]any{inspect.Analyzer: in}

	var got []analysis.Diagnostic
	p.Report = func(d analysis.Diagnostic) { got = append(got, d) }

	if _, err := DefaultOptions().Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got) != 1 || got[0].Category != "IDISP004" {
		t.Errorf("Got diagnostics %v, want one IDISP004", got)
	}
}
