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

package walker_test

import (
	"context"
	"go/ast"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/scope"
	"fillmore-labs.com/closeguard/internal/testsource"
	. "fillmore-labs.com/closeguard/internal/walker"
)

const src = `package test

import (
	"io"
	"os"
	"testing"
)

type holder struct {
	f     *os.File
	files []*os.File
}

func open() (*os.File, error) { return os.Open("x") }

func self(h *holder) *holder { return self(h) }

func assigns(h *holder) {
	var a *os.File
	a, _ = open()
	b := a
	_ = holder{f: a}
	_ = holder{a, nil}
	h.f = b
	for _, a = range h.files {
	}
	fill(&a)
}

func fill(p **os.File) { *p, _ = os.Open("y") }

func closes(t *testing.T, h *holder, c io.Closer) {
	defer h.f.Close()
	defer func() { _ = c.Close() }()
	t.Cleanup(func() { c.Close() })
	t.Cleanup(h.f.Close)
	go func() { c.Close() }()
	func() { c.Close() }()
	for _, f := range h.files {
		f.Close()
	}
}

func usages(f *os.File) (*os.File, error) {
	if f == nil {
		return nil, nil
	}
	_, _ = io.Copy(io.Discard, f)
	var w io.Writer = f
	_ = w
	go func() { _ = f.Name() }()
	f.Close()
	return f, nil
}
`

type fixture struct {
	info  *types.Info
	pkg   *types.Package
	in    *inspector.Inspector
	decls *query.Declarations
}

func load(tb testing.TB) fixture {
	tb.Helper()

	p, in := testsource.Load(tb, src)

	return fixture{p.TypesInfo, p.Pkg, in, query.NewDeclarations(p.TypesInfo, in)}
}

func (f fixture) fun(tb testing.TB, name string) (inspector.Cursor, *ast.FuncDecl) {
	tb.Helper()

	fn, ok := f.pkg.Scope().Lookup(name).(*types.Func)
	if !ok {
		tb.Fatalf("Can't find function %s", name)
	}

	c, decl, ok := f.decls.Func(fn)
	if !ok {
		tb.Fatalf("Can't find declaration of %s", name)
	}

	return c, decl
}

func (f fixture) local(tb testing.TB, decl *ast.FuncDecl, name string) *types.Var {
	tb.Helper()

	var v *types.Var

	ast.Inspect(decl, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name && v == nil {
			v, _ = f.info.Defs[id].(*types.Var)
		}

		return v == nil
	})

	if v == nil {
		tb.Fatalf("Can't find variable %s", name)
	}

	return v
}

func (f fixture) field(tb testing.TB, name string) *types.Var {
	tb.Helper()

	holder := f.pkg.Scope().Lookup("holder").Type()

	obj, ok := query.TryFindMember(holder, name)
	if !ok {
		tb.Fatalf("Can't find field %s", name)
	}

	return obj.(*types.Var)
}

func TestAssignedValueWalker(t *testing.T) {
	t.Parallel()

	f := load(t)
	fun, decl := f.fun(t, "assigns")

	w := BorrowAssigned(context.Background(), f.info)
	defer w.Release()

	values := w.Walk(fun, f.local(t, decl, "a"))
	if len(values) != 3 {
		t.Fatalf("Got %d values for a, want 3", len(values))
	}

	if v := values[0]; v.Value == nil || v.Index != 0 || v.Out {
		t.Errorf("Unexpected assignment %+v", v)
	}

	if v := values[1]; v.Value != nil {
		t.Errorf("Expected range assignment, got %+v", v)
	}

	if v := values[2]; !v.Out || v.Index != 0 {
		t.Errorf("Expected out parameter, got %+v", v)
	}

	fields := w.Walk(f.decls.Root(), f.field(t, "f"))
	if len(fields) != 3 {
		t.Errorf("Got %d values for field f, want 3", len(fields))
	}

	_, fill := f.fun(t, "fill")

	deref := w.Walk(f.decls.Root(), f.local(t, fill, "p"))
	if len(deref) != 1 || !deref[0].Deref {
		t.Errorf("Expected one assignment through p, got %+v", deref)
	}
}

func TestRecursiveValues(t *testing.T) {
	t.Parallel()

	f := load(t)
	scopes := scope.NewIndex(f.info)

	t.Run("returns", func(t *testing.T) {
		t.Parallel()

		_, decl := f.fun(t, "open")

		r := BorrowRecursive(context.Background(), f.info, f.decls, scopes)
		defer r.Release()

		r.AddReturns(decl, 0)

		values := r.Values()
		if len(values) != 1 || types.ExprString(values[0].Expr) != `os.Open("x")` || values[0].Index != 0 {
			t.Errorf("Unexpected values %v", values)
		}
	})

	t.Run("recursion", func(t *testing.T) {
		t.Parallel()

		_, decl := f.fun(t, "self")

		r := BorrowRecursive(context.Background(), f.info, f.decls, scopes)
		defer r.Release()

		r.AddReturns(decl, 0)

		if values := r.Values(); len(values) != 0 {
			t.Errorf("Unexpected values %v", values)
		}
	})

	t.Run("field", func(t *testing.T) {
		t.Parallel()

		w := BorrowAssigned(context.Background(), f.info)
		defer w.Release()

		r := BorrowRecursive(context.Background(), f.info, f.decls, scopes)
		defer r.Release()

		r.AddAssigned(w.Walk(f.decls.Root(), f.field(t, "f")))

		var open, out bool

		for _, v := range r.Values() {
			switch {
			case v.Out:
				out = true

			case types.ExprString(v.Expr) == `os.Open("x")`:
				open = true
			}
		}

		if !open || !out {
			t.Errorf("Missing values in %v", r.Values())
		}
	})
}

func TestDisposeWalker(t *testing.T) {
	t.Parallel()

	f := load(t)
	fun, _ := f.fun(t, "closes")

	body, ok := query.FuncBody(fun)
	if !ok {
		t.Fatal("No body")
	}

	w := BorrowDispose(context.Background(), f.info)
	defer w.Release()

	sites := w.Walk(body, nil)

	type flags struct{ deferred, binds, closure bool }

	want := []flags{
		{true, true, false},   // defer h.f.Close()
		{true, false, false},  // defer func() { c.Close() }()
		{true, false, false},  // t.Cleanup(func() { c.Close() })
		{true, true, false},   // t.Cleanup(h.f.Close)
		{false, false, true},  // go func() { c.Close() }()
		{false, false, false}, // func() { c.Close() }()
		{false, false, false}, // f.Close() in range
	}

	if len(sites) != len(want) {
		t.Fatalf("Got %d close sites, want %d", len(sites), len(want))
	}

	for i, s := range sites {
		if got := (flags{s.Deferred, s.Binds, s.Closure}); got != want[i] {
			t.Errorf("Site %d (%s) = %+v, want %+v", i, types.ExprString(s.Target), got, want[i])
		}
	}

	if m := sites[0].Member; m.Var == nil || m.Var.Name() != "f" || m.Base == nil || m.Base.Name() != "h" {
		t.Errorf("Unexpected member %+v", m)
	}

	if m := sites[6].Member; m.Var == nil || m.Var.Name() != "files" {
		t.Errorf("Range close resolves to %+v, want files", m)
	}
}

func TestUsageWalker(t *testing.T) {
	t.Parallel()

	f := load(t)
	fun, decl := f.fun(t, "usages")

	w := BorrowUsage(context.Background(), f.info)
	defer w.Release()

	borrow := func(*ast.CallExpr, int) UsageKind { return Borrow }

	var got []UsageKind
	for _, u := range w.Walk(fun, f.local(t, decl, "f"), borrow) {
		got = append(got, u.Kind)
	}

	want := []UsageKind{Assign, NilCheck, Borrow, Escape, Capture, Close, Return}
	if len(got) != len(want) {
		t.Fatalf("Got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Usage %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPoolReuse(t *testing.T) {
	t.Parallel()

	f := load(t)
	fun, decl := f.fun(t, "assigns")
	v := f.local(t, decl, "a")

	for range 3 {
		w := BorrowAssigned(context.Background(), f.info)
		if got := len(w.Walk(fun, v)); got != 3 {
			t.Errorf("Got %d values, want 3", got)
		}

		w.Release()
	}
}

func TestCanceled(t *testing.T) {
	t.Parallel()

	long := "package test\n\nfunc f() {\n\tvar a int\n" + strings.Repeat("\ta = 1\n", 2*256) + "\t_ = a\n}\n"

	p, in := testsource.Load(t, long)
	f := fixture{p.TypesInfo, p.Pkg, in, query.NewDeclarations(p.TypesInfo, in)}
	fun, decl := f.fun(t, "f")
	v := f.local(t, decl, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := BorrowAssigned(ctx, f.info)
	defer w.Release()

	if got := len(w.Walk(fun, v)); !w.Canceled() || got >= 2*256 {
		t.Errorf("Walk on canceled context returned %d values, canceled = %t", got, w.Canceled())
	}

	w2 := BorrowAssigned(context.Background(), f.info)
	defer w2.Release()

	if got := len(w2.Walk(fun, v)); w2.Canceled() || got != 2*256 {
		t.Errorf("Got %d values, want %d", got, 2*256)
	}
}
