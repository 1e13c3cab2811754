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

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/scope"
	"fillmore-labs.com/closeguard/internal/walker"
)

// IsCachedOrInjected reports whether e is a resource obtained from outside the current ownership
// scope: a parameter, a package variable, a map entry or a cached instance, or a variable
// only ever assigned such values.
func (o *Oracle) IsCachedOrInjected(e ast.Expr) result.Result {
	c := cached{o: o, params: result.Yes, visited: make(map[*types.Var]struct{})}

	return c.expr(e)
}

// IsCached is like [Oracle.IsCachedOrInjected], but only shared instances count.
// Parameters are [result.Unknown], since they may transfer ownership, and user-defined
// package variables are [result.AssumeYes].
func (o *Oracle) IsCached(e ast.Expr) result.Result {
	c := cached{o: o, params: result.Unknown, visited: make(map[*types.Var]struct{})}

	return c.expr(e)
}

type cached struct {
	o       *Oracle
	params  result.Result
	visited map[*types.Var]struct{}
}

func (c cached) expr(e ast.Expr) result.Result {
	o := c.o
	if o.canceled() {
		return result.Unknown
	}

	switch n := ast.Unparen(e).(type) {
	case *ast.IndexExpr:
		if t := o.info.TypeOf(n.X); t != nil {
			if _, ok := t.Underlying().(*types.Map); ok {
				return result.Yes
			}
		}

		return c.expr(n.X)

	case *ast.TypeAssertExpr:
		return c.expr(n.X)

	case *ast.StarExpr:
		return c.expr(n.X)

	case *ast.CallExpr:
		return c.call(n)

	case *ast.Ident, *ast.SelectorExpr:
		m, ok := query.RootMember(o.info, n)
		if !ok {
			return result.Unknown
		}

		return c.variable(m.Var)

	default:
		return result.Unknown
	}
}

func (c cached) call(call *ast.CallExpr) result.Result {
	o := c.o

	if tv, ok := o.info.Types[ast.Unparen(call.Fun)]; ok && tv.IsType() && len(call.Args) == 1 {
		return c.expr(call.Args[0])
	}

	if fn := query.Callee(o.info, call); fn != nil && o.reg.Func(fn).Has(registry.Cached) {
		return result.Yes
	}

	if o.IsCreation(call, 0).Positive() {
		return result.No
	}

	return result.Unknown
}

func (c cached) variable(v *types.Var) result.Result {
	o := c.o

	if o.reg.Var(v).Has(registry.Cached) {
		return result.Yes
	}

	switch o.scopes.KindOf(v) {
	case scope.KindParam, scope.KindReceiver:
		return c.params

	case scope.KindPackage:
		return result.AssumeYes

	case scope.KindLocal, scope.KindField:
		return c.assigned(v)

	default:
		return result.Unknown
	}
}

// assigned folds all values assigned to v with [result.And].
func (c cached) assigned(v *types.Var) result.Result {
	o := c.o

	v = v.Origin()
	if _, ok := c.visited[v]; ok {
		return result.Unknown
	}

	c.visited[v] = struct{}{}

	aw := walker.BorrowAssigned(o.ctx, o.info)
	defer aw.Release()

	values := aw.Walk(o.decls.Scope(v), v)
	if aw.Canceled() || len(values) == 0 {
		return result.Unknown
	}

	res := result.Yes

	for _, av := range values {
		var r result.Result

		switch {
		case av.Deref:
			continue

		case av.Out, av.Value == nil:
			r = result.Unknown

		default:
			r = c.expr(av.Value)
		}

		if res = result.And(res, r); res == result.No {
			break
		}
	}

	return res
}
