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
)

// Member is the variable an expression ultimately denotes.
//
// For "c.f.g" the member is the field f, selected from the base variable c.
// For a plain identifier the member is the variable itself and Base is nil.
type Member struct {
	Var  *types.Var // Local, parameter, package variable or field
	Base *types.Var // Variable the field is selected from, nil for non-fields
}

// Valid reports whether the member is resolved.
func (m Member) Valid() bool { return m.Var != nil }

// Same reports whether both members denote the same variable through the same base.
func (m Member) Same(o Member) bool {
	return m.Valid() && o.Valid() && m.Var.Origin() == o.Var.Origin() && m.Base == o.Base
}

// RootMember returns the [Member] expr denotes. Dereferences and index expressions
// resolve to the container, so "c.conns[i]" denotes the field conns.
func RootMember(info *types.Info, expr ast.Expr) (Member, bool) {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		v, ok := info.ObjectOf(e).(*types.Var)
		if !ok {
			return Member{}, false
		}

		return Member{Var: v}, true

	case *ast.SelectorExpr:
		selection, ok := info.Selections[e]
		if !ok { // qualified identifier
			v, ok := info.Uses[e.Sel].(*types.Var)
			if !ok {
				return Member{}, false
			}

			return Member{Var: v}, true
		}

		if selection.Kind() != types.FieldVal {
			return Member{}, false
		}

		field, ok := selection.Obj().(*types.Var)
		if !ok {
			return Member{}, false
		}

		base, ok := RootMember(info, e.X)
		switch {
		case !ok:
			return Member{Var: field}, true

		case base.Base != nil: // deeper selector, attribute to the outer field
			return base, true

		case base.Var.IsField():
			return base, true

		default:
			return Member{Var: field, Base: base.Var}, true
		}

	case *ast.StarExpr:
		return RootMember(info, e.X)

	case *ast.IndexExpr:
		return RootMember(info, e.X)

	default:
		return Member{}, false
	}
}
