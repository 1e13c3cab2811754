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

// Package disposable answers ownership questions about resources: which expressions create one,
// which variables are closed, cached or injected, and which struct fields a type owns.
//
// All answers are [result.Result] verdicts. Missing evidence, cancellation and recursion yield
// [result.Unknown], which never leads to a diagnostic.
package disposable

import (
	"context"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/reachability"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/scope"
)

// Oracle classifies expressions and variables of a single package.
// It memoizes per-function summaries and is not safe for concurrent use.
type Oracle struct {
	ctx    context.Context
	pass   *analysis.Pass
	info   *types.Info
	reg    *registry.Registry
	in     *inspector.Inspector
	scopes scope.Index
	decls  *query.Declarations
	graphs *reachability.Graphs

	summaries map[*types.Func]*FuncFact // nil value marks a summary in progress
	members   map[*types.Var]MemberState
}

// New creates an [Oracle] for the package of pass.
func New(ctx context.Context, pass *analysis.Pass, in *inspector.Inspector, reg *registry.Registry) *Oracle {
	if reg == nil {
		reg = registry.Default()
	}

	return &Oracle{
		ctx:       ctx,
		pass:      pass,
		info:      pass.TypesInfo,
		reg:       reg,
		in:        in,
		scopes:    scope.NewIndex(pass.TypesInfo),
		decls:     query.NewDeclarations(pass.TypesInfo, in),
		graphs:    reachability.NewGraphs(ctx, pass.TypesInfo, reg),
		summaries: make(map[*types.Func]*FuncFact),
		members:   make(map[*types.Var]MemberState),
	}
}

// Declarations returns the declaration index of the package.
func (o *Oracle) Declarations() *query.Declarations { return o.decls }

// Scopes returns the scope index of the package.
func (o *Oracle) Scopes() scope.Index { return o.scopes }

// Registry returns the registry of well-known symbols.
func (o *Oracle) Registry() *registry.Registry { return o.reg }

// canceled reports whether the analysis should stop.
func (o *Oracle) canceled() bool { return o.ctx.Err() != nil }

// graphOf returns the control-flow graph of the function containing c, or nil.
func (o *Oracle) graphOf(c inspector.Cursor) (*reachability.Graph, inspector.Cursor) {
	fun, ok := query.EnclosingFunc(c)
	if !ok {
		return nil, inspector.Cursor{}
	}

	return o.graphs.Of(fun.Node()), fun
}

// reachable reports whether control can flow from a to b within the function containing b.
// ok is false when the graph can't decide.
func (o *Oracle) reachable(a, b inspector.Cursor) (reachable, ok bool) {
	g, fun := o.graphOf(b)
	if g == nil || !contains(fun.Node(), a.Node()) {
		return true, false
	}

	return g.Reachable(a.Node().Pos(), b.Node().Pos())
}

// repeats reports whether c runs again after it completed, in a loop of its function.
func (o *Oracle) repeats(c inspector.Cursor) bool {
	g, _ := o.graphOf(c)
	r, ok := g.Repeats(c.Node().Pos())

	return ok && r
}

// inSameLoop reports whether control can flow from a to b and back.
func (o *Oracle) inSameLoop(a, b inspector.Cursor) bool {
	ab, ok1 := o.reachable(a, b)
	ba, ok2 := o.reachable(b, a)

	return ok1 && ok2 && ab && ba
}

func contains(outer, inner ast.Node) bool {
	return outer.Pos() <= inner.Pos() && inner.End() <= outer.End()
}

// resultType returns the type of result index of e.
func (o *Oracle) resultType(e ast.Expr, index int) types.Type {
	t := o.info.TypeOf(e)

	if tuple, ok := t.(*types.Tuple); ok {
		if index < 0 || index >= tuple.Len() {
			return nil
		}

		return tuple.At(index).Type()
	}

	if index != 0 {
		return nil
	}

	return t
}
