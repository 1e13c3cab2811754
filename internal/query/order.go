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

package query

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/result"
)

// IsBeforeInScope approximates whether a executes before b.
//
// The verdict is [result.Yes] when the statement containing a precedes the statement
// containing b in a block enclosing both, [result.AssumeNo] when they sit in different arms
// of an if, switch or select statement, or when a runs deferred or in a function literal,
// and [result.No] otherwise.
func IsBeforeInScope(a, b inspector.Cursor) result.Result {
	pa, pb := ancestry(a), ancestry(b)

	i, j := len(pa)-1, len(pb)-1
	if i < 0 || j < 0 || pa[i] != pb[j] {
		return result.No // different files
	}

	for i >= 0 && j >= 0 && pa[i] == pb[j] {
		i--
		j--
	}

	if i < 0 || j < 0 {
		return result.No // one contains the other
	}

	lca, ca, cb := pa[i+1], pa[i], pb[j]

	if _, ok := lca.Node().(*ast.File); ok {
		return result.No // different functions
	}

	// a runs later than its position suggests
	for _, e := range pa[1 : i+1] {
		switch e.Node().(type) {
		case *ast.FuncLit, *ast.DeferStmt, *ast.GoStmt:
			return result.AssumeNo
		}
	}

	switch lca.Node().(type) {
	case *ast.BlockStmt:
		switch lca.Parent().Node().(type) {
		case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			return result.AssumeNo // different clauses
		}

	case *ast.IfStmt:
		ka, _ := ca.ParentEdge()
		kb, _ := cb.ParentEdge()

		if (ka == edge.IfStmt_Body && kb == edge.IfStmt_Else) || (ka == edge.IfStmt_Else && kb == edge.IfStmt_Body) {
			return result.AssumeNo
		}
	}

	if ca.Node().End() <= cb.Node().Pos() {
		return result.Yes
	}

	return result.No
}

// ancestry returns c and its ancestors, innermost first, excluding the root.
func ancestry(c inspector.Cursor) []inspector.Cursor {
	var path []inspector.Cursor
	for e := range c.Enclosing() {
		path = append(path, e)
	}

	return path
}

// IsRunBefore reports whether function a is guaranteed to run before the rest of the body of b,
// because b calls a, directly or transitively, from its top-level statement list.
// Calls nested in control flow are [result.AssumeYes].
func IsRunBefore(info *types.Info, decls *Declarations, a, b *types.Func) result.Result {
	return isRunBefore(info, decls, a, b, make(map[*types.Func]struct{}))
}

func isRunBefore(info *types.Info, decls *Declarations, a, b *types.Func, visited map[*types.Func]struct{}) result.Result {
	if a == nil || b == nil || a == b {
		return result.No
	}

	if _, ok := visited[b]; ok {
		return result.No
	}

	visited[b] = struct{}{}

	_, decl, ok := decls.Func(b)
	if !ok {
		return result.Unknown
	}

	best := result.No

	for _, stmt := range decl.Body.List {
		var nested bool

		switch stmt.(type) {
		case *ast.DeferStmt, *ast.GoStmt:
			continue // runs later, if at all

		case *ast.ExprStmt, *ast.AssignStmt, *ast.DeclStmt, *ast.ReturnStmt, *ast.IncDecStmt, *ast.SendStmt:

		default:
			nested = true
		}

		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncLit:
				return false

			case *ast.CallExpr:
				r := result.No

				switch callee := Callee(info, n); {
				case callee == nil:

				case callee.Origin() == a.Origin():
					r = result.Yes

				case callee.Pkg() == b.Pkg():
					if r = isRunBefore(info, decls, a, callee, visited); r == result.Unknown {
						r = result.No
					}
				}

				if nested && r == result.Yes {
					r = result.AssumeYes
				}

				best = result.Or(best, r)
			}

			return true
		})

		if best == result.Yes {
			break
		}
	}

	return best
}
