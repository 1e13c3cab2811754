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
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
)

// UsageKind classifies a reference to a variable.
type UsageKind uint8

//go:generate go tool stringer -type UsageKind
const (
	// Read is any other use of the value.
	Read UsageKind = iota

	// Assign is a definition or assignment of the variable.
	Assign

	// Close releases the resource.
	Close

	// Return hands the resource to the caller.
	Return

	// Escape stores the resource elsewhere, or passes it to a call taking ownership.
	Escape

	// Borrow passes the resource to a call using it without taking ownership.
	Borrow

	// NilCheck compares the variable with nil.
	NilCheck

	// Capture reads the variable in a function literal.
	Capture
)

// Usage is one reference to a variable.
type Usage struct {
	Site    inspector.Cursor // The identifier
	Kind    UsageKind
	Closure bool // Inside a function literal not declaring the variable
}

// ArgUse classifies passing a variable as argument i of a call.
type ArgUse func(call *ast.CallExpr, i int) UsageKind

// UsageWalker finds all references to a variable.
type UsageWalker struct {
	base
	usages []Usage
}

var usagePool pool[UsageWalker]

// BorrowUsage borrows a [UsageWalker] from the pool.
func BorrowUsage(ctx context.Context, info *types.Info) *UsageWalker {
	w := usagePool.get()
	w.init(ctx, info)

	return w
}

// Release clears the walker and returns it to the pool.
func (w *UsageWalker) Release() {
	clear(w.usages)
	w.usages = w.usages[:0]
	w.base = base{}

	usagePool.put(w)
}

// Walk returns the references to v below root in source order.
// Arguments are classified by argUse, or as [Escape] when argUse is nil.
// The result is valid until the next Walk or [UsageWalker.Release].
func (w *UsageWalker) Walk(root inspector.Cursor, v *types.Var, argUse ArgUse) []Usage {
	w.usages = w.usages[:0]
	if v == nil {
		return nil
	}

	v = v.Origin()

	for c := range root.Preorder((*ast.Ident)(nil)) {
		if !w.step() {
			break
		}

		id := c.Node().(*ast.Ident)

		obj, ok := w.info.ObjectOf(id).(*types.Var)
		if !ok || obj.Origin() != v {
			continue
		}

		u := Usage{Site: c, Kind: w.classify(c, argUse)}

		if lit, ok := innermostLit(c); ok {
			u.Closure = v.Pos() < lit.Pos() || lit.End() <= v.Pos()
		}

		if u.Closure && u.Kind == Read {
			u.Kind = Capture
		}

		w.usages = append(w.usages, u)
	}

	return w.usages
}

func (w *UsageWalker) classify(c inspector.Cursor, argUse ArgUse) UsageKind {
	c = w.climb(c)

	kind, i := c.ParentEdge()
	parent := c.Parent().Node()

	switch kind {
	case edge.AssignStmt_Lhs, edge.ValueSpec_Names, edge.RangeStmt_Key, edge.RangeStmt_Value, edge.Field_Names:
		return Assign

	case edge.AssignStmt_Rhs:
		as := parent.(*ast.AssignStmt)
		if len(as.Lhs) == len(as.Rhs) && isBlank(as.Lhs[i]) {
			return Read
		}

		return Escape

	case edge.ValueSpec_Values:
		spec := parent.(*ast.ValueSpec)
		if len(spec.Names) == len(spec.Values) && spec.Names[i].Name == "_" {
			return Read
		}

		return Escape

	case edge.SelectorExpr_X:
		if query.IsCloseMethodValue(w.info, parent.(*ast.SelectorExpr)) {
			return Close
		}

		return Read

	case edge.ReturnStmt_Results:
		return Return

	case edge.CallExpr_Args:
		call := parent.(*ast.CallExpr)

		if tv, ok := w.info.Types[ast.Unparen(call.Fun)]; ok && tv.IsBuiltin() {
			if id, ok := ast.Unparen(call.Fun).(*ast.Ident); ok && id.Name == "append" {
				return Escape
			}

			return Read
		}

		if argUse == nil {
			return Escape
		}

		return argUse(call, i)

	case edge.BinaryExpr_X, edge.BinaryExpr_Y:
		b := parent.(*ast.BinaryExpr)
		if b.Op != token.EQL && b.Op != token.NEQ {
			return Read
		}

		other := b.Y
		if kind == edge.BinaryExpr_Y {
			other = b.X
		}

		if w.isNil(other) {
			return NilCheck
		}

		return Read

	case edge.CompositeLit_Elts, edge.KeyValueExpr_Value, edge.SendStmt_Value:
		return Escape

	case edge.UnaryExpr_X:
		if parent.(*ast.UnaryExpr).Op == token.AND {
			return Escape
		}

		return Read

	default:
		return Read
	}
}

// climb moves up through parentheses, type assertions and conversions.
func (w *UsageWalker) climb(c inspector.Cursor) inspector.Cursor {
	for {
		switch kind, _ := c.ParentEdge(); kind {
		case edge.ParenExpr_X, edge.TypeAssertExpr_X:
			c = c.Parent()

		case edge.CallExpr_Args:
			call := c.Parent().Node().(*ast.CallExpr)
			if tv, ok := w.info.Types[ast.Unparen(call.Fun)]; !ok || !tv.IsType() {
				return c
			}

			c = c.Parent()

		default:
			return c
		}
	}
}

func (w *UsageWalker) isNil(e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)
	if !ok {
		return false
	}

	_, ok = w.info.Uses[id].(*types.Nil)

	return ok
}

// innermostLit returns the innermost function literal containing c.
func innermostLit(c inspector.Cursor) (*ast.FuncLit, bool) {
	for e := c; e.Node() != nil; e = e.Parent() {
		switch n := e.Node().(type) {
		case *ast.FuncLit:
			return n, true

		case *ast.FuncDecl:
			return nil, false
		}
	}

	return nil, false
}

func isBlank(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)

	return ok && id.Name == "_"
}
