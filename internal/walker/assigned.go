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

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/query"
)

// AssignedValue is one location assigning a value to a variable.
type AssignedValue struct {
	Site   inspector.Cursor // Assignment, value spec, composite literal, range statement or call
	Target ast.Expr         // Assigned expression, nil for positional composite literal fields
	Value  ast.Expr         // Assigned value, nil for range variables
	Index  int              // Result index of a multi-valued Value, or parameter index for Out
	Out    bool             // Address passed to the call Value, which may assign through it
	Deref  bool             // Assigned through the pointer, as in "*v = x"
}

// AssignedValueWalker finds all locations assigning to a variable.
type AssignedValueWalker struct {
	base
	v      *types.Var
	values []AssignedValue
}

var assignedPool pool[AssignedValueWalker]

// BorrowAssigned borrows an [AssignedValueWalker] from the pool.
func BorrowAssigned(ctx context.Context, info *types.Info) *AssignedValueWalker {
	w := assignedPool.get()
	w.init(ctx, info)

	return w
}

// Release clears the walker and returns it to the pool.
func (w *AssignedValueWalker) Release() {
	clear(w.values)
	w.values = w.values[:0]
	w.v = nil
	w.base = base{}

	assignedPool.put(w)
}

// Walk returns the locations below root assigning to v.
// The result is valid until the next Walk or [AssignedValueWalker.Release].
func (w *AssignedValueWalker) Walk(root inspector.Cursor, v *types.Var) []AssignedValue {
	w.values = w.values[:0]
	if v == nil {
		return nil
	}

	w.v = v.Origin()

	nodeTypes := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.CompositeLit)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.UnaryExpr)(nil),
	}

	for c := range root.Preorder(nodeTypes...) {
		if !w.step() {
			break
		}

		switch n := c.Node().(type) {
		case *ast.AssignStmt:
			for as := range astutil.AssignStmtAssignments(n) {
				w.assignment(c, as)
			}

		case *ast.ValueSpec:
			for as := range astutil.ValueSpecAssignments(n) {
				if as.Rhs != nil {
					w.assignment(c, as)
				}
			}

		case *ast.CompositeLit:
			w.literal(c, n)

		case *ast.RangeStmt:
			for _, e := range [...]ast.Expr{n.Key, n.Value} {
				if e != nil && w.denotes(e) {
					w.values = append(w.values, AssignedValue{Site: c, Target: e})
				}
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND && w.denotes(n.X) {
				w.address(c, n)
			}
		}
	}

	return w.values
}

func (w *AssignedValueWalker) assignment(c inspector.Cursor, as astutil.Assignment) {
	lhs := ast.Unparen(as.Lhs)

	if star, ok := lhs.(*ast.StarExpr); ok {
		if w.denotes(star.X) {
			w.values = append(w.values, AssignedValue{Site: c, Target: lhs, Value: as.Rhs, Index: as.Index, Deref: true})
		}

		return
	}

	if w.denotes(lhs) {
		w.values = append(w.values, AssignedValue{Site: c, Target: lhs, Value: as.Rhs, Index: as.Index})
	}
}

func (w *AssignedValueWalker) literal(c inspector.Cursor, lit *ast.CompositeLit) {
	if !w.v.IsField() {
		return
	}

	t := query.Deref(w.info.TypeOf(lit))
	if t == nil {
		return
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return
	}

	for i, elt := range lit.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			if id, ok := kv.Key.(*ast.Ident); ok && w.denotes(id) {
				w.values = append(w.values, AssignedValue{Site: c, Target: id, Value: kv.Value})
			}

			continue
		}

		if i < st.NumFields() && st.Field(i).Origin() == w.v {
			w.values = append(w.values, AssignedValue{Site: c, Value: elt})
		}
	}
}

// address records &v passed to a call, which may assign a value through the pointer.
func (w *AssignedValueWalker) address(c inspector.Cursor, addr *ast.UnaryExpr) {
	parent := c.Parent()

	call, ok := parent.Node().(*ast.CallExpr)
	if !ok {
		return
	}

	_, index, ok := query.TryGetMatchingParameter(w.info, call, addr)
	if !ok {
		return
	}

	w.values = append(w.values, AssignedValue{Site: parent, Target: addr, Value: call, Index: index, Out: true})
}

// denotes reports whether e is the walked variable.
func (w *AssignedValueWalker) denotes(e ast.Expr) bool {
	var obj types.Object

	switch e := ast.Unparen(e).(type) {
	case *ast.Ident:
		obj = w.info.ObjectOf(e)

	case *ast.SelectorExpr:
		if sel, ok := w.info.Selections[e]; ok {
			if sel.Kind() != types.FieldVal {
				return false
			}

			obj = sel.Obj()
		} else {
			obj = w.info.Uses[e.Sel]
		}

	default:
		return false
	}

	v, ok := obj.(*types.Var)

	return ok && v.Origin() == w.v
}
