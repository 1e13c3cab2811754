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
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/walker"
)

// Disposal describes how a resource is closed relative to a location.
type Disposal struct {
	Result result.Result // Explicitly closed before the location
	Scoped bool          // A deferred or cleanup close is registered before the location
	Binds  bool          // The scoped close captured the current value at registration, as in "defer f.Close()"
	Looped bool          // A "defer f.Close()" later in the same loop captures the values of earlier iterations
}

// IsDisposedBefore reports whether m is closed before control reaches at.
// Closes in function literals running at an unknown time are ignored.
func (o *Oracle) IsDisposedBefore(m query.Member, at inspector.Cursor) Disposal {
	if !m.Valid() || o.canceled() {
		return Disposal{Result: result.Unknown}
	}

	fun, ok := query.EnclosingFunc(at)
	if !ok {
		return Disposal{Result: result.No}
	}

	body, ok := query.FuncBody(fun)
	if !ok {
		return Disposal{Result: result.No}
	}

	dw := walker.BorrowDispose(o.ctx, o.info)
	defer dw.Release()

	sites := dw.Walk(body, o.closesArg)
	if dw.Canceled() {
		return Disposal{Result: result.Unknown}
	}

	d := Disposal{Result: result.No}

	for _, site := range sites {
		if site.Closure || !site.Member.Same(m) || contains(site.Site.Node(), at.Node()) {
			continue
		}

		if site.Deferred {
			reg := registration(site.Site)

			switch {
			case site.Binds && o.inSameLoop(reg, at):
				d.Looped = true

			case conditional(site.Site):

			case query.IsBeforeInScope(reg, at) == result.Yes:
				d.Scoped = true
				d.Binds = d.Binds || site.Binds
			}

			continue
		}

		if o.reassignedBetween(m, site.Site, at) {
			continue
		}

		before := query.IsBeforeInScope(site.Site, at)

		reachable, ok := o.reachable(site.Site, at)
		if ok && !reachable {
			continue
		}

		switch {
		case before == result.Yes:
			d.Result = result.Or(d.Result, result.Yes)

		case ok && reachable: // through a loop
			d.Result = result.Or(d.Result, result.AssumeYes)
		}
	}

	return d
}

// registration returns the statement or call registering a deferred close.
func registration(c inspector.Cursor) inspector.Cursor {
	if _, ok := c.Node().(*ast.SelectorExpr); ok { // method value passed to a cleanup call
		return c.Parent()
	}

	for e := c; e.Node() != nil; e = e.Parent() {
		switch e.Node().(type) {
		case *ast.DeferStmt:
			return e

		case *ast.FuncLit:
			call := e.Parent()
			if _, ok := call.Parent().Node().(*ast.DeferStmt); ok {
				return call.Parent()
			}

			return call

		case *ast.FuncDecl:
			return c
		}
	}

	return c
}

// conditional reports whether a close in a deferred function literal only runs on some paths.
func conditional(c inspector.Cursor) bool {
	for e := c.Parent(); e.Node() != nil; e = e.Parent() {
		switch e.Node().(type) {
		case *ast.FuncLit, *ast.FuncDecl:
			return false

		case *ast.IfStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt, *ast.ForStmt, *ast.RangeStmt:
			return true
		}
	}

	return false
}

// reassignedBetween reports whether m is assigned after from and before to.
func (o *Oracle) reassignedBetween(m query.Member, from, to inspector.Cursor) bool {
	fun, ok := query.EnclosingFunc(to)
	if !ok {
		return false
	}

	aw := walker.BorrowAssigned(o.ctx, o.info)
	defer aw.Release()

	for _, av := range aw.Walk(fun, m.Var) {
		if av.Deref || av.Target == nil {
			continue
		}

		if tm, ok := query.RootMember(o.info, av.Target); ok && m.Base != nil && !tm.Same(m) {
			continue
		}

		if query.IsBeforeInScope(from, av.Site) == result.Yes && query.IsBeforeInScope(av.Site, to) == result.Yes {
			return true
		}
	}

	return false
}

// IsMemberDisposed reports whether field of the struct type named is closed by the type:
// in its Close method, in methods Close calls on the same receiver, in a finalizer
// or in a test fixture teardown method.
func (o *Oracle) IsMemberDisposed(field *types.Var, named *types.Named) result.Result {
	if field == nil || named == nil || o.canceled() {
		return result.Unknown
	}

	field = field.Origin()

	var roots []*types.Func

	for fn := range o.decls.Methods(named) {
		if name := fn.Name(); name == "Close" || registry.IsTeardown(name) {
			roots = append(roots, fn)
		}
	}

	visited := make(map[ast.Node]struct{})

	for _, fn := range roots {
		c, _, ok := o.decls.Func(fn)
		if ok && o.closesField(c, field, named, visited) {
			return result.Yes
		}
	}

	for fin := range o.finalizers(named) {
		if o.closesField(fin, field, named, visited) {
			return result.Yes
		}
	}

	return result.No
}

// closesField reports whether the function fun, or a method of named it calls, closes field.
func (o *Oracle) closesField(fun inspector.Cursor, field *types.Var, named *types.Named, visited map[ast.Node]struct{}) bool {
	if _, ok := visited[fun.Node()]; ok {
		return false
	}

	visited[fun.Node()] = struct{}{}

	body, ok := query.FuncBody(fun)
	if !ok {
		return false
	}

	dw := walker.BorrowDispose(o.ctx, o.info)
	sites := dw.Walk(body, o.closesArg)

	for _, site := range sites {
		if site.Member.Var != nil && site.Member.Var.Origin() == field {
			dw.Release()
			return true
		}
	}

	dw.Release()

	for call := range body.Preorder((*ast.CallExpr)(nil)) {
		fn := query.Callee(o.info, call.Node().(*ast.CallExpr))
		if fn == nil || !isMethodOf(fn, named) {
			continue
		}

		if c, _, ok := o.decls.Func(fn); ok && o.closesField(c, field, named, visited) {
			return true
		}
	}

	return false
}

func isMethodOf(fn *types.Func, named *types.Named) bool {
	recv := fn.Signature().Recv()
	if recv == nil {
		return false
	}

	n, ok := query.Deref(recv.Type()).(*types.Named)

	return ok && n.Origin() == named.Origin()
}
