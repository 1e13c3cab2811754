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

package evaluate

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/rules"
	"fillmore-labs.com/closeguard/internal/scope"
	"fillmore-labs.com/closeguard/internal/walker"
)

// closeCall checks "x.Close()" calls.
func (e *Evaluator) closeCall(c inspector.Cursor, call *ast.CallExpr) {
	sel, ok := query.IsCloseCall(e.info, call)
	if !ok {
		return
	}

	if e.r.Enabled(rules.NoCloseInjected) && e.o.IsCached(sel.X) == result.Yes {
		e.r.Report(rules.NoCloseInjected, call)
	}

	if e.r.Enabled(rules.NoUseClosed) {
		e.useAfterClose(c, sel)
	}
}

// useAfterClose reports the first use of a local variable after an explicit close.
func (e *Evaluator) useAfterClose(c inspector.Cursor, sel *ast.SelectorExpr) {
	if _, deferred := c.Parent().Node().(*ast.DeferStmt); deferred {
		return
	}

	id, ok := ast.Unparen(sel.X).(*ast.Ident)
	if !ok {
		return
	}

	v, ok := e.info.Uses[id].(*types.Var)
	if !ok {
		return
	}

	switch e.o.Scopes().KindOf(v) {
	case scope.KindLocal, scope.KindParam:

	default:
		return
	}

	// closed in a function literal running at an unknown time
	if fun, ok := query.EnclosingFunc(c); ok {
		if lit, ok := fun.Node().(*ast.FuncLit); ok && (v.Pos() < lit.Pos() || v.Pos() >= lit.End()) {
			return
		}
	}

	m := query.Member{Var: v}

	for u := range e.o.Usages(v) {
		switch u.Kind {
		case walker.Read, walker.Borrow, walker.Escape:

		default:
			continue
		}

		if u.Closure || query.IsBeforeInScope(c, u.Site) != result.Yes {
			continue
		}

		if e.o.IsDisposedBefore(m, u.Site).Result != result.Yes {
			continue
		}

		e.r.Report(rules.NoUseClosed, u.Site.Node())

		return
	}
}
