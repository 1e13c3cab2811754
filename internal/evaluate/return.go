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
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/rules"
)

func (e *Evaluator) returnStmt(c inspector.Cursor, ret *ast.ReturnStmt) {
	fun, ok := query.EnclosingFunc(c)
	if !ok {
		return
	}

	sig, ok := query.Signature(e.info, fun.Node())
	if !ok {
		return
	}

	results := sig.Results()
	accessor := e.isAccessor(fun.Node())

	switch {
	case len(ret.Results) == results.Len():
		for i, res := range ret.Results {
			e.returned(res, 0, results.At(i).Type(), accessor)
			e.returnsClosed(c, res)
		}

	case len(ret.Results) == 1: // return f()
		for i := range results.Len() {
			e.returned(ret.Results[0], i, results.At(i).Type(), accessor)
		}
	}
}

// returned checks the ownership transfer of a returned value.
func (e *Evaluator) returned(res ast.Expr, index int, typ types.Type, accessor bool) {
	check005 := e.r.Enabled(rules.ReturnTypeCloser) && e.o.IsDisposable(typ).Negative()
	check012 := e.r.Enabled(rules.AccessorCreates) && accessor

	if !check005 && !check012 {
		return
	}

	if !e.o.IsAnyCreation(res, index).Positive() {
		return
	}

	if check005 {
		e.r.Report(rules.ReturnTypeCloser, res)
	}

	if check012 {
		e.r.Report(rules.AccessorCreates, res)
	}
}

// returnsClosed reports returning a resource closed before, or scheduled to be closed on return.
func (e *Evaluator) returnsClosed(c inspector.Cursor, res ast.Expr) {
	if !e.r.Enabled(rules.NoReturnClosed) {
		return
	}

	switch ast.Unparen(res).(type) {
	case *ast.Ident, *ast.SelectorExpr:

	default:
		return
	}

	if !e.o.IsDisposable(e.info.TypeOf(res)).Positive() {
		return
	}

	m, ok := query.RootMember(e.info, res)
	if !ok {
		return
	}

	if d := e.o.IsDisposedBefore(m, c); d.Result == result.Yes || d.Scoped {
		e.r.Report(rules.NoReturnClosed, res)
	}
}

// isAccessor reports whether fun is a method without parameters that is not named like a constructor.
func (e *Evaluator) isAccessor(fun ast.Node) bool {
	decl, ok := fun.(*ast.FuncDecl)
	if !ok || decl.Recv == nil || decl.Type.Params.NumFields() != 0 {
		return false
	}

	if registry.HasFactoryName(decl.Name.Name) {
		return false
	}

	fn, ok := e.info.Defs[decl.Name].(*types.Func)

	return ok && !e.reg.Func(fn).Has(registry.Factory)
}
