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
	"iter"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/scope"
	"fillmore-labs.com/closeguard/internal/walker"
)

// ShouldDispose reports whether the local variable or parameter v, assigned result index of value,
// owns a resource it never releases: it is not closed, returned, stored or handed to an owner.
func (o *Oracle) ShouldDispose(v *types.Var, value ast.Expr, index int) result.Result {
	switch o.scopes.KindOf(v) {
	case scope.KindLocal, scope.KindParam:

	default:
		return result.No
	}

	creation := o.IsCreation(value, index)
	if !creation.Positive() {
		return result.No
	}

	uw := walker.BorrowUsage(o.ctx, o.info)
	defer uw.Release()

	usages := uw.Walk(o.decls.Scope(v), v, o.argUse)
	if uw.Canceled() {
		return result.Unknown
	}

	res := creation

	for _, u := range usages {
		switch u.Kind {
		case walker.Close, walker.Return, walker.Escape:
			return result.No

		case walker.Capture:
			res = result.Unknown
		}
	}

	return res
}

// Usages returns the references to v in its scope, with arguments classified by the called function.
func (o *Oracle) Usages(v *types.Var) iter.Seq[walker.Usage] {
	return func(yield func(walker.Usage) bool) {
		uw := walker.BorrowUsage(o.ctx, o.info)
		defer uw.Release()

		for _, u := range uw.Walk(o.decls.Scope(v), v, o.argUse) {
			if !yield(u) {
				return
			}
		}
	}
}

// IsNilGuarded reports whether the assignment to target at assign only happens when target is nil,
// as in "if c.conn == nil { c.conn = dial() }", and target is not assigned earlier in the guarded block.
func (o *Oracle) IsNilGuarded(assign inspector.Cursor, target ast.Expr) bool {
	m, ok := query.RootMember(o.info, target)
	if !ok {
		return false
	}

	for c := assign; ; {
		p := c.Parent()

		switch n := p.Node().(type) {
		case nil, *ast.FuncDecl, *ast.FuncLit:
			return false

		case *ast.IfStmt:
			if kind, _ := c.ParentEdge(); kind == edge.IfStmt_Body && o.isNilCheck(n.Cond, target, m) {
				return !o.assignedEarlier(c, assign, m)
			}
		}

		c = p
	}
}

// isNilCheck reports whether cond, or a conjunct of it, compares m with nil.
func (o *Oracle) isNilCheck(cond, target ast.Expr, m query.Member) bool {
	b, ok := ast.Unparen(cond).(*ast.BinaryExpr)
	if !ok {
		return false
	}

	switch b.Op {
	case token.LAND:
		return o.isNilCheck(b.X, target, m) || o.isNilCheck(b.Y, target, m)

	case token.EQL:
		switch {
		case o.isNil(b.Y):
			return o.denotes(b.X, target, m)

		case o.isNil(b.X):
			return o.denotes(b.Y, target, m)
		}
	}

	return false
}

func (o *Oracle) denotes(e, target ast.Expr, m query.Member) bool {
	em, ok := query.RootMember(o.info, e)
	if !ok || !em.Same(m) {
		return false
	}

	return types.ExprString(ast.Unparen(e)) == types.ExprString(ast.Unparen(target))
}

func (o *Oracle) isNil(e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)
	if !ok {
		return false
	}

	_, ok = o.info.Uses[id].(*types.Nil)

	return ok
}

// assignedEarlier reports whether m is assigned in block before assign.
func (o *Oracle) assignedEarlier(block, assign inspector.Cursor, m query.Member) bool {
	for c := range block.Preorder((*ast.AssignStmt)(nil)) {
		if c.Node().End() > assign.Node().Pos() {
			break
		}

		for as := range astutil.AssignStmtAssignments(c.Node().(*ast.AssignStmt)) {
			if am, ok := query.RootMember(o.info, as.Lhs); ok && am.Same(m) {
				return true
			}
		}
	}

	return false
}
