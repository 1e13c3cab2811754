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

package reachability_test

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	. "fillmore-labs.com/closeguard/internal/reachability"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/testsource"
)

// TestReachable reports for every call of check whether it is reachable
// from the first call of open in the same function.
func TestReachable(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	a := &analysis.Analyzer{
		Name:     "reachabilitytest",
		Doc:      "test reachability",
		Run:      func(p *analysis.Pass) (any, error) { return nil, reachable(t, p) },
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	analysistest.Run(t, testdata, a, "./flow")
}

func reachable(t *testing.T, p *analysis.Pass) error {
	t.Helper()

	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return fmt.Errorf("result of %s missing", inspect.Analyzer.Name)
	}

	graphs := NewGraphs(t.Context(), p.TypesInfo, registry.Default())

	for c := range in.Root().Preorder((*ast.FuncDecl)(nil)) {
		open, checks := calls(p.TypesInfo, c)
		if !open.IsValid() {
			continue
		}

		g := graphs.Of(c.Node())

		for _, check := range checks {
			r, ok := g.Reachable(open, check)

			var message string

			switch {
			case !ok:
				message = "unknown"

			case r:
				message = "reachable"

			default:
				message = "unreachable"
			}

			p.Report(analysis.Diagnostic{Pos: check, Message: message})
		}
	}

	return nil
}

// calls returns the position of the first call of open and of all calls of check.
func calls(info *types.Info, c inspector.Cursor) (open token.Pos, checks []token.Pos) {
	for e := range c.Preorder((*ast.CallExpr)(nil)) {
		call := e.Node().(*ast.CallExpr)

		fn, ok := typeutil.Callee(info, call).(*types.Func)
		if !ok {
			continue
		}

		switch fn.Name() {
		case "open":
			if !open.IsValid() {
				open = call.Pos()
			}

		case "check":
			checks = append(checks, call.Pos())
		}
	}

	return open, checks
}

func TestNoReturn(t *testing.T) {
	t.Parallel()

	const src = `package test

import (
	"log"
	"os"
	"runtime"
	"testing"
)

var _ = func(t *testing.T, l *log.Logger) {
	panic("")
	log.Fatal()
	l.Fatalf("")
	os.Exit(1)
	runtime.Goexit()
	t.Fatal()
	(t.SkipNow)()

	print()
	log.Print()
	os.Getenv("")
	t.Log()
	func() {}()
}
`

	p, in := testsource.Load(t, src)

	var got, want []bool

	for c := range in.Root().Preorder((*ast.ExprStmt)(nil)) {
		stmt := c.Node().(*ast.ExprStmt)

		call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
		if !ok {
			continue
		}

		got = append(got, NoReturn(p.TypesInfo, registry.Default(), call))
		want = append(want, len(want) < 7)
	}

	if len(got) != 12 {
		t.Fatalf("Found %d calls, want 12", len(got))
	}

	for i := range got {
		if got[i] != want[i] {
			t.Errorf("NoReturn of call %d = %t, want %t", i, got[i], want[i])
		}
	}
}

func TestNoGraph(t *testing.T) {
	t.Parallel()

	var g *Graph
	if _, ok := g.Reachable(token.NoPos, token.NoPos); ok {
		t.Error("nil graph decided reachability")
	}

	graphs := NewGraphs(t.Context(), nil, nil)
	if g := graphs.Of(&ast.FuncDecl{Type: &ast.FuncType{}}); g != nil {
		t.Errorf("Of(declaration without body) = %v, want nil", g)
	}
}

func TestRepeats(t *testing.T) {
	t.Parallel()

	const src = `package test

func inside()  {}
func outside() {}

func loops(names []string) {
	outside()
	for i := 0; i < 3; i++ {
		inside()
	}
	for range names {
		inside()
		break
	}
	for range names {
		inside()
		continue
	}
	outside()
}
`

	p, in := testsource.Load(t, src)

	graphs := NewGraphs(t.Context(), p.TypesInfo, registry.Default())

	want := []bool{false, true, false, true, false}

	var got []bool

	for c := range in.Root().Preorder((*ast.FuncDecl)(nil)) {
		decl := c.Node().(*ast.FuncDecl)
		if decl.Name.Name != "loops" {
			continue
		}

		g := graphs.Of(decl)

		for e := range c.Preorder((*ast.CallExpr)(nil)) {
			r, ok := g.Repeats(e.Node().Pos())
			if !ok {
				t.Fatalf("Repeats(%s) undecided", types.ExprString(e.Node().(*ast.CallExpr)))
			}

			got = append(got, r)
		}
	}

	if len(got) != len(want) {
		t.Fatalf("Found %d calls, want %d", len(got), len(want))
	}

	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Repeats of call %d = %t, want %t", i, got[i], want[i])
		}
	}
}
