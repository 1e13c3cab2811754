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

// Package evaluate applies the closeguard rules to syntax nodes.
//
// Each node kind has an evaluator that re-derives local facts, asks the [disposable.Oracle]
// and reports zero or more diagnostics. Evaluators never modify the syntax tree.
package evaluate

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/disposable"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/report"
)

// Evaluator dispatches nodes to the rule evaluators.
type Evaluator struct {
	info *types.Info
	o    *disposable.Oracle
	reg  *registry.Registry
	r    *report.Reporter
}

// New creates an [Evaluator] reporting through r.
func New(info *types.Info, o *disposable.Oracle, r *report.Reporter) *Evaluator {
	return &Evaluator{info: info, o: o, reg: o.Registry(), r: r}
}

// NodeTypes returns the node types [Evaluator.Node] handles, for [inspector.Cursor.Preorder].
func NodeTypes() []ast.Node {
	return []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.ExprStmt)(nil),
		(*ast.CompositeLit)(nil),
		(*ast.CallExpr)(nil),
		(*ast.ReturnStmt)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.FuncDecl)(nil),
	}
}

// Node evaluates the node at c.
func (e *Evaluator) Node(c inspector.Cursor) {
	switch n := c.Node().(type) {
	case *ast.AssignStmt:
		e.assignStmt(c, n)

	case *ast.ValueSpec:
		e.valueSpec(c, n)

	case *ast.ExprStmt:
		e.exprStmt(n)

	case *ast.CompositeLit:
		e.singleInstance(c, n, e.info.TypeOf(n))

	case *ast.CallExpr:
		e.call(c, n)

	case *ast.ReturnStmt:
		e.returnStmt(c, n)

	case *ast.TypeSpec:
		e.typeSpec(n)

	case *ast.FuncDecl:
		e.closeMethod(n)
	}
}

func (e *Evaluator) call(c inspector.Cursor, call *ast.CallExpr) {
	if e.isBuiltin(call.Fun, "new") && len(call.Args) == 1 {
		e.singleInstance(c, call, e.info.TypeOf(call.Args[0]))
		return
	}

	e.arguments(c, call)
	e.closeCall(c, call)
}

func (e *Evaluator) isBuiltin(fun ast.Expr, name string) bool {
	id, ok := ast.Unparen(fun).(*ast.Ident)
	if !ok || id.Name != name {
		return false
	}

	_, ok = e.info.Uses[id].(*types.Builtin)

	return ok
}

func isBlank(e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)
	return ok && id.Name == "_"
}
