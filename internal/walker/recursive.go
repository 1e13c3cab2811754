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

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/scope"
)

// Value is a terminal value expression.
type Value struct {
	Expr  ast.Expr // Value expression
	Index int      // Result index of a multi-valued Expr, or parameter index for Out
	Out   bool     // Expr is a call receiving the address of the variable
}

// RecursiveValues resolves value expressions through local variables, calls of functions
// declared in this package and function literals to their terminal expressions.
type RecursiveValues struct {
	base
	decls   *query.Declarations
	scopes  scope.Index
	visited map[visit]struct{}
	values  []Value
}

// visit is keyed by call site, so the same node reached from an independent path is resolved again.
type visit struct {
	site, node ast.Node
	index      int
}

var recursivePool pool[RecursiveValues]

// BorrowRecursive borrows a [RecursiveValues] from the pool.
func BorrowRecursive(ctx context.Context, info *types.Info, decls *query.Declarations, scopes scope.Index) *RecursiveValues {
	r := recursivePool.get()
	r.init(ctx, info)
	r.decls, r.scopes = decls, scopes

	if r.visited == nil {
		r.visited = make(map[visit]struct{})
	}

	return r
}

// Release clears the walker and returns it to the pool.
func (r *RecursiveValues) Release() {
	clear(r.visited)
	clear(r.values)
	r.values = r.values[:0]
	r.decls, r.scopes = nil, nil
	r.base = base{}

	recursivePool.put(r)
}

// Values returns the terminal values found so far.
// The result is valid until [RecursiveValues.Release].
func (r *RecursiveValues) Values() []Value { return r.values }

// AddAssigned resolves assigned values of a variable.
func (r *RecursiveValues) AddAssigned(values []AssignedValue) {
	for _, av := range values {
		switch {
		case av.Deref:

		case av.Out:
			r.values = append(r.values, Value{Expr: av.Value, Index: av.Index, Out: true})

		case av.Value != nil:
			r.Add(av.Site.Node(), av.Value, av.Index)
		}
	}
}

// Add resolves e, reached from site, to its terminal values.
func (r *RecursiveValues) Add(site ast.Node, e ast.Expr, index int) {
	e = ast.Unparen(e)
	if e == nil || !r.step() {
		return
	}

	key := visit{site: site, node: e, index: index}
	if _, ok := r.visited[key]; ok {
		return
	}

	r.visited[key] = struct{}{}

	switch n := e.(type) {
	case *ast.Ident:
		if v, ok := r.info.Uses[n].(*types.Var); ok {
			switch r.scopes.KindOf(v) {
			case scope.KindLocal, scope.KindResult:
				r.addVar(n, v)
				return
			}
		}

	case *ast.TypeAssertExpr:
		if index == 0 && n.Type != nil {
			r.Add(site, n.X, 0)
			return
		}

	case *ast.CallExpr:
		if r.addCall(n, index) {
			return
		}
	}

	r.values = append(r.values, Value{Expr: e, Index: index})
}

// addCall resolves conversions and calls with a body in this package.
func (r *RecursiveValues) addCall(call *ast.CallExpr, index int) bool {
	fun := ast.Unparen(call.Fun)

	if tv, ok := r.info.Types[fun]; ok && tv.IsType() {
		if len(call.Args) != 1 {
			return false
		}

		r.Add(call, call.Args[0], 0)

		return true
	}

	if lit, ok := fun.(*ast.FuncLit); ok {
		r.addReturns(call, lit, lit.Body, index)
		return true
	}

	fn := query.Callee(r.info, call)
	if fn == nil {
		return false
	}

	if _, decl, ok := r.decls.Func(fn); ok {
		r.addReturns(call, decl, decl.Body, index)
		return true
	}

	return false
}

// AddReturns resolves the values returned at index by a function declaration or literal.
func (r *RecursiveValues) AddReturns(fun ast.Node, index int) {
	switch fun := fun.(type) {
	case *ast.FuncDecl:
		if fun.Body != nil {
			r.addReturns(fun, fun, fun.Body, index)
		}

	case *ast.FuncLit:
		r.addReturns(fun, fun, fun.Body, index)
	}
}

func (r *RecursiveValues) addReturns(site ast.Node, fun ast.Node, body *ast.BlockStmt, index int) {
	sig, ok := query.Signature(r.info, fun)
	if !ok || index < 0 || index >= sig.Results().Len() {
		return
	}

	ast.Inspect(body, func(n ast.Node) bool {
		if !r.step() {
			return false
		}

		switch n := n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.ReturnStmt:
			switch results := n.Results; {
			case len(results) == 0: // bare return of named results
				r.addVar(n, sig.Results().At(index))

			case len(results) == 1 && sig.Results().Len() > 1:
				r.Add(site, results[0], index)

			case index < len(results):
				r.Add(site, results[index], 0)
			}
		}

		return true
	})
}

func (r *RecursiveValues) addVar(site ast.Node, v *types.Var) {
	aw := BorrowAssigned(r.ctx, r.info)
	defer aw.Release()

	values := aw.Walk(r.decls.Scope(v), v)
	if aw.Canceled() {
		r.canceled = true
		return
	}

	for _, av := range values {
		switch {
		case av.Deref:

		case av.Out:
			r.values = append(r.values, Value{Expr: av.Value, Index: av.Index, Out: true})

		case av.Value != nil:
			r.Add(site, av.Value, av.Index)
		}
	}
}
