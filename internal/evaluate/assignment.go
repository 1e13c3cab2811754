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
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/rules"
)

func (e *Evaluator) assignStmt(c inspector.Cursor, stmt *ast.AssignStmt) {
	for as := range astutil.AssignStmtAssignments(stmt) {
		e.assignment(c, as, stmt.Tok == token.DEFINE)
	}
}

func (e *Evaluator) valueSpec(c inspector.Cursor, spec *ast.ValueSpec) {
	for as := range astutil.ValueSpecAssignments(spec) {
		if as.Rhs != nil {
			e.assignment(c, as, true)
		}
	}
}

// assignment checks one target-value pair.
// Assignments through pointers or into containers are not tracked.
func (e *Evaluator) assignment(c inspector.Cursor, as astutil.Assignment, define bool) {
	lhs := ast.Unparen(as.Lhs)

	if isBlank(lhs) {
		if e.r.Enabled(rules.NoIgnoreCreated) && e.o.IsCreation(as.Rhs, as.Index).Positive() {
			e.r.Report(rules.NoIgnoreCreated, as.Rhs)
		}

		return
	}

	switch lhs := lhs.(type) {
	case *ast.Ident:
		v, ok := e.info.ObjectOf(lhs).(*types.Var)
		if !ok {
			return
		}

		if e.r.Enabled(rules.CloseCreated) && e.o.ShouldDispose(v, as.Rhs, as.Index).Positive() {
			e.r.Report(rules.CloseCreated, as.Rhs)
		}

		if define && e.info.Defs[lhs] != nil {
			return // new variable
		}

		e.reassign(c, lhs, query.Member{Var: v})

	case *ast.SelectorExpr:
		if m, ok := query.RootMember(e.info, lhs); ok {
			e.reassign(c, lhs, m)
		}
	}
}

// reassign reports overwriting a created resource held by m that is not closed before at.
func (e *Evaluator) reassign(at inspector.Cursor, target ast.Expr, m query.Member) {
	if !e.r.Enabled(rules.CloseBeforeReassign) {
		return
	}

	if !e.o.IsAssignedWithCreated(m, at).Positive() {
		return
	}

	// "defer f.Close()" releases the old value, a deferred closure only the last one
	if d := e.o.IsDisposedBefore(m, at); d.Result.Positive() || d.Scoped && d.Binds || d.Looped {
		return
	}

	if e.o.IsNilGuarded(at, target) {
		return
	}

	e.r.Report(rules.CloseBeforeReassign, target)
}

// arguments checks addresses passed to calls that store a created resource through them.
func (e *Evaluator) arguments(c inspector.Cursor, call *ast.CallExpr) {
	if !e.r.Enabled(rules.CloseBeforeReassign) {
		return
	}

	for _, arg := range call.Args {
		addr, ok := ast.Unparen(arg).(*ast.UnaryExpr)
		if !ok || addr.Op != token.AND {
			continue
		}

		target := ast.Unparen(addr.X)

		switch target.(type) {
		case *ast.Ident, *ast.SelectorExpr:

		default:
			continue
		}

		_, index, ok := query.TryGetMatchingParameter(e.info, call, arg)
		if !ok || !e.o.IsOutCreation(call, index).Positive() {
			continue
		}

		if m, ok := query.RootMember(e.info, target); ok {
			e.reassign(c, target, m)
		}
	}
}
