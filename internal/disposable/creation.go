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

package disposable

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/scope"
	"fillmore-labs.com/closeguard/internal/walker"
)

// IsDisposable reports whether values of type t must be closed.
//
// Interfaces without a Close method are [result.AssumeNo], they may hold a resource dynamically.
func (o *Oracle) IsDisposable(t types.Type) result.Result {
	if t == nil {
		return result.Unknown
	}

	if _, ok := query.CloseMethod(t); ok {
		return result.Yes
	}

	if types.IsInterface(t) {
		return result.AssumeNo
	}

	return result.No
}

// IsCreation reports whether result index of e is a fresh resource owned by the evaluating code.
func (o *Oracle) IsCreation(e ast.Expr, index int) result.Result {
	if o.canceled() {
		return result.Unknown
	}

	switch n := ast.Unparen(e).(type) {
	case *ast.CompositeLit:
		return o.creationOf(o.info.TypeOf(n))

	case *ast.UnaryExpr:
		if _, ok := ast.Unparen(n.X).(*ast.CompositeLit); ok && n.Op == token.AND {
			return o.creationOf(o.info.TypeOf(n))
		}

		return result.No

	case *ast.TypeAssertExpr:
		if index != 0 {
			return result.No // comma-ok
		}

		return o.IsCreation(n.X, 0)

	case *ast.CallExpr:
		return o.callCreation(n, index)

	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.StarExpr, *ast.BasicLit, *ast.FuncLit:
		return result.No

	default:
		return result.Unknown
	}
}

func (o *Oracle) creationOf(t types.Type) result.Result {
	if o.IsDisposable(t) == result.Yes {
		return result.Yes
	}

	return result.No
}

func (o *Oracle) callCreation(call *ast.CallExpr, index int) result.Result {
	fun := ast.Unparen(call.Fun)

	if tv, ok := o.info.Types[fun]; ok {
		switch {
		case tv.IsType():
			if len(call.Args) != 1 {
				return result.No
			}

			return o.IsCreation(call.Args[0], 0)

		case tv.IsBuiltin():
			if id, ok := fun.(*ast.Ident); ok && id.Name == "new" {
				return o.creationOf(o.info.TypeOf(call))
			}

			return result.No
		}
	}

	if !o.IsDisposable(o.resultType(call, index)).Positive() {
		return result.No
	}

	if lit, ok := fun.(*ast.FuncLit); ok {
		return o.returnsCreation(lit, index)
	}

	fn := query.Callee(o.info, call)
	if fn == nil { // function value
		return factoryName(funcName(fun))
	}

	switch kind := o.reg.Func(fn); {
	case kind.Has(registry.NotCreation), kind.Has(registry.Cached):
		return result.No

	case kind.Has(registry.Factory):
		return result.Yes
	}

	if query.IsInterfaceMethod(fn) {
		return factoryName(fn.Name())
	}

	fact := o.factOf(fn)
	if fact == nil || index >= len(fact.Returns) {
		if fn.Pkg() == o.pass.Pkg {
			return result.Unknown // in progress
		}

		return factoryName(fn.Name())
	}

	return fact.Returns[index]
}

// returnsCreation folds the creation verdicts of all values returned at index by a function.
func (o *Oracle) returnsCreation(fun ast.Node, index int) result.Result {
	r := walker.BorrowRecursive(o.ctx, o.info, o.decls, o.scopes)
	defer r.Release()

	r.AddReturns(fun, index)
	if r.Canceled() {
		return result.Unknown
	}

	return o.anyCreation(r.Values())
}

// IsAnyCreation reports whether e may evaluate to a created resource, following local
// variables to their assigned values and calls of functions in this package to their returns.
func (o *Oracle) IsAnyCreation(e ast.Expr, index int) result.Result {
	r := walker.BorrowRecursive(o.ctx, o.info, o.decls, o.scopes)
	defer r.Release()

	r.Add(e, e, index)
	if r.Canceled() {
		return result.Unknown
	}

	return o.anyCreation(r.Values())
}

// anyCreation folds terminal values with [result.Or], any creating path is a creation.
func (o *Oracle) anyCreation(values []walker.Value) result.Result {
	res := result.No

	for _, v := range values {
		var c result.Result
		if v.Out {
			c = o.outCreation(v.Expr, v.Index)
		} else {
			c = o.IsCreation(v.Expr, v.Index)
		}

		if res = result.Or(res, c); res == result.Yes {
			break
		}
	}

	return res
}

// IsOutCreation reports whether call stores a created resource through its parameter index,
// as in "open(&f)".
func (o *Oracle) IsOutCreation(call *ast.CallExpr, index int) result.Result {
	return o.outCreation(call, index)
}

// outCreation reports whether call stores a created resource through its parameter index.
func (o *Oracle) outCreation(e ast.Expr, index int) result.Result {
	call, ok := e.(*ast.CallExpr)
	if !ok || index < 0 {
		return result.Unknown
	}

	fn := query.Callee(o.info, call)
	if fn == nil {
		return result.Unknown
	}

	fact := o.factOf(fn)
	if fact == nil || index >= len(fact.Assigns) {
		return result.Unknown
	}

	if fact.Assigns[index] {
		return result.Yes
	}

	return result.No
}

func factoryName(name string) result.Result {
	if registry.HasFactoryName(name) {
		return result.AssumeYes
	}

	return result.Unknown
}

func funcName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name

	case *ast.SelectorExpr:
		return f.Sel.Name

	case *ast.IndexExpr:
		return funcName(ast.Unparen(f.X))

	case *ast.IndexListExpr:
		return funcName(ast.Unparen(f.X))

	default:
		return ""
	}
}

// IsAssignedWithCreated reports whether m may hold a created resource when control reaches at.
//
// Earlier assignments in the same function count fully, assignments only reaching at through
// loops count as assumptions. Fields and package variables may have been assigned by other
// functions before, which also counts as an assumption, except for constructors run first.
func (o *Oracle) IsAssignedWithCreated(m query.Member, at inspector.Cursor) result.Result {
	if !m.Valid() || o.canceled() {
		return result.Unknown
	}

	aw := walker.BorrowAssigned(o.ctx, o.info)
	defer aw.Release()

	values := aw.Walk(o.decls.Scope(m.Var), m.Var)
	if aw.Canceled() {
		return result.Unknown
	}

	res := result.No

	for _, av := range values {
		order := o.assignedBefore(m, av, at)
		if order.Negative() {
			continue
		}

		c := o.assignedCreation(av)
		if order == result.AssumeYes {
			c = c.Weaken()
		}

		res = result.Or(res, c)
	}

	return res
}

// assignedBefore reports whether the assignment av of m happens before at.
func (o *Oracle) assignedBefore(m query.Member, av walker.AssignedValue, at inspector.Cursor) result.Result {
	if av.Deref {
		return result.No
	}

	if av.Site == at { // the previous iteration of a loop
		if o.repeats(at) {
			return result.AssumeYes
		}

		return result.No
	}

	fun, ok := query.EnclosingFunc(at)
	if !ok {
		return result.No
	}

	site, sameFunc := av.Site, contains(fun.Node(), av.Site.Node())

	if sameFunc {
		if _, lit := av.Site.Node().(*ast.CompositeLit); !lit && av.Target != nil && m.Base != nil {
			if tm, ok := query.RootMember(o.info, av.Target); ok && !tm.Same(m) {
				return result.No // other instance
			}
		}

		if query.IsBeforeInScope(site, at) == result.Yes {
			return result.Yes
		}

		if reachable, ok := o.reachable(site, at); ok && reachable {
			return result.AssumeYes
		}

		return result.No
	}

	switch o.scopes.KindOf(m.Var) {
	case scope.KindPackage:
		if _, ok := query.EnclosingFunc(site); !ok {
			return result.Yes // initializer
		}

		return result.AssumeYes

	case scope.KindField:
		return o.fieldAssignedBefore(m, site, fun)

	default:
		return result.No
	}
}

// fieldAssignedBefore decides whether an assignment of a field in another function precedes fun.
func (o *Oracle) fieldAssignedBefore(m query.Member, site, fun inspector.Cursor) result.Result {
	other, ok := query.EnclosingFunc(site)
	if !ok {
		return result.No
	}

	switch o.scopes.KindOf(m.Base) {
	case scope.KindReceiver, scope.KindParam:
		return result.AssumeYes // set up by someone else

	case scope.KindLocal: // under construction
		a, b := o.funcOf(other), o.funcOf(fun)
		if a == nil || b == nil {
			return result.No
		}

		return query.IsRunBefore(o.info, o.decls, a, b)

	default:
		return result.No
	}
}

func (o *Oracle) funcOf(fun inspector.Cursor) *types.Func {
	decl, ok := fun.Node().(*ast.FuncDecl)
	if !ok {
		return nil
	}

	fn, _ := o.info.Defs[decl.Name].(*types.Func)

	return fn
}

// assignedCreation reports whether an assignment stores a created resource.
func (o *Oracle) assignedCreation(av walker.AssignedValue) result.Result {
	switch {
	case av.Out:
		return o.outCreation(av.Value, av.Index)

	case av.Value == nil:
		return result.Unknown // range variable
	}

	r := walker.BorrowRecursive(o.ctx, o.info, o.decls, o.scopes)
	defer r.Release()

	r.Add(av.Site.Node(), av.Value, av.Index)
	if r.Canceled() {
		return result.Unknown
	}

	return o.anyCreation(r.Values())
}
