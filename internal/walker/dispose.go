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

package walker

import (
	"context"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
)

// CloseSite is a location closing a resource.
type CloseSite struct {
	Site     inspector.Cursor // Close call, Close method value or call of a closing helper
	Target   ast.Expr         // Closed expression
	Member   query.Member     // Root member of Target, invalid when unresolved
	Deferred bool             // Runs when the function returns, via defer or a registered cleanup
	Binds    bool             // Target is evaluated at registration, as in "defer x.Close()"
	Closure  bool             // Inside a function literal that may run at any time
	Helper   bool             // Closed by a called function
}

// ClosesArg reports whether a call closes its argument at index i.
type ClosesArg func(call *ast.CallExpr, i int) bool

// DisposeWalker finds all close sites in a function body.
type DisposeWalker struct {
	base
	sites []CloseSite
}

var disposePool pool[DisposeWalker]

// BorrowDispose borrows a [DisposeWalker] from the pool.
func BorrowDispose(ctx context.Context, info *types.Info) *DisposeWalker {
	w := disposePool.get()
	w.init(ctx, info)

	return w
}

// Release clears the walker and returns it to the pool.
func (w *DisposeWalker) Release() {
	clear(w.sites)
	w.sites = w.sites[:0]
	w.base = base{}

	disposePool.put(w)
}

// Walk returns the close sites below body. closesArg may be nil.
// The result is valid until the next Walk or [DisposeWalker.Release].
func (w *DisposeWalker) Walk(body inspector.Cursor, closesArg ClosesArg) []CloseSite {
	w.sites = w.sites[:0]

	for c := range body.Preorder((*ast.CallExpr)(nil), (*ast.SelectorExpr)(nil)) {
		if !w.step() {
			break
		}

		switch n := c.Node().(type) {
		case *ast.CallExpr:
			if sel, ok := query.IsCloseCall(w.info, n); ok {
				w.add(body, c, sel.X, false)
				continue
			}

			if closesArg == nil {
				continue
			}

			for i, arg := range n.Args {
				if closesArg(n, i) {
					w.add(body, c, arg, true)
				}
			}

		case *ast.SelectorExpr:
			if kind, _ := c.ParentEdge(); kind == edge.CallExpr_Fun {
				continue
			}

			if query.IsCloseMethodValue(w.info, n) {
				w.addMethodValue(body, c, n)
			}
		}
	}

	return w.sites
}

func (w *DisposeWalker) add(body, c inspector.Cursor, target ast.Expr, helper bool) {
	site := CloseSite{Site: c, Target: target, Helper: helper}
	site.Member, _ = w.member(c, target)

	switch kind, _ := c.ParentEdge(); kind {
	case edge.DeferStmt_Call:
		site.Deferred, site.Binds = true, true

	case edge.GoStmt_Call:
		site.Closure = true

	default:
		site.Deferred, site.Closure = w.context(body, c)
	}

	w.sites = append(w.sites, site)
}

// addMethodValue records "x.Close" used as a value, like "t.Cleanup(x.Close)".
func (w *DisposeWalker) addMethodValue(body, c inspector.Cursor, sel *ast.SelectorExpr) {
	site := CloseSite{Site: c, Target: sel.X, Binds: true}
	site.Member, _ = w.member(c, sel.X)

	if kind, _ := c.ParentEdge(); kind == edge.CallExpr_Args && isCleanup(w.info, c.Parent().Node()) {
		site.Deferred = true
	} else {
		site.Closure = true
	}

	if deferred, closure := w.context(body, c); deferred || closure {
		site.Deferred, site.Closure = deferred, closure
	}

	w.sites = append(w.sites, site)
}

// context classifies the innermost function literal between c and body that does not run in place.
func (w *DisposeWalker) context(body, c inspector.Cursor) (deferred, closure bool) {
	for e := c.Parent(); e != body && e.Node() != nil; e = e.Parent() {
		if _, ok := e.Node().(*ast.FuncLit); !ok {
			continue
		}

		switch kind, _ := e.ParentEdge(); kind {
		case edge.CallExpr_Fun:
			switch ck, _ := e.Parent().ParentEdge(); ck {
			case edge.DeferStmt_Call:
				return true, false

			case edge.GoStmt_Call:
				return false, true
			}

			continue // called in place

		case edge.CallExpr_Args:
			if isCleanup(w.info, e.Parent().Node()) {
				return true, false
			}
		}

		return false, true
	}

	return false, false
}

// member resolves the root member of a closed expression.
// Range variables resolve to the ranged container, so closing all elements of a field closes the field.
func (w *DisposeWalker) member(c inspector.Cursor, target ast.Expr) (query.Member, bool) {
	m, ok := query.RootMember(w.info, target)
	if !ok || m.Base != nil {
		return m, ok
	}

	for e := range c.Enclosing((*ast.RangeStmt)(nil)) {
		rs := e.Node().(*ast.RangeStmt)

		for _, x := range [...]ast.Expr{rs.Key, rs.Value} {
			if id, ok := x.(*ast.Ident); ok && w.info.ObjectOf(id) == m.Var {
				if rm, ok := query.RootMember(w.info, rs.X); ok {
					return rm, true
				}
			}
		}
	}

	return m, true
}

// isCleanup reports whether n is a call registering a cleanup function, like [testing.T.Cleanup].
func isCleanup(info *types.Info, n ast.Node) bool {
	call, ok := n.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return false
	}

	fn := query.Callee(info, call)
	if fn == nil || fn.Name() != "Cleanup" {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)

	return ok && sig.Recv() != nil
}
