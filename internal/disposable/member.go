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
	"iter"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/walker"
)

// MemberState is the ownership classification of a struct field.
type MemberState uint8

//go:generate go tool stringer -type MemberState
const (
	// Unclassified fields are never assigned a resource.
	Unclassified MemberState = iota

	// CreatedOnly fields are only assigned created resources.
	CreatedOnly

	// InjectedOnly fields are only assigned resources owned elsewhere.
	InjectedOnly

	// Mixed fields are assigned created and injected resources.
	Mixed

	// Unrelated fields can't hold a resource.
	Unrelated

	// Disposed fields are created and closed by the owning type.
	Disposed

	// NotDisposed fields are created, but never closed by the owning type.
	NotDisposed
)

// ClassifyMember classifies field of the struct type named.
//
// The verdict does not depend on the order of assignments. An exported field of an exported
// type created by the package can also be assigned by importers, which makes it [Mixed].
func (o *Oracle) ClassifyMember(field *types.Var, named *types.Named) MemberState {
	if field == nil || named == nil {
		return Unclassified
	}

	field = field.Origin()

	if st, ok := o.members[field]; ok {
		return st
	}

	st := o.classifyMember(field, named)
	if !o.canceled() {
		o.members[field] = st
	}

	return st
}

func (o *Oracle) classifyMember(field *types.Var, named *types.Named) MemberState {
	if o.IsDisposable(field.Type()).IsEither(result.No, result.Unknown) {
		return Unrelated
	}

	aw := walker.BorrowAssigned(o.ctx, o.info)
	defer aw.Release()

	r := walker.BorrowRecursive(o.ctx, o.info, o.decls, o.scopes)
	defer r.Release()

	r.AddAssigned(aw.Walk(o.decls.Root(), field))
	if aw.Canceled() || r.Canceled() {
		return Unclassified
	}

	var created, injected bool

	for _, v := range r.Values() {
		if v.Out {
			created = created || o.outCreation(v.Expr, v.Index).Positive()
			continue
		}

		switch {
		case o.IsCreation(v.Expr, v.Index).Positive():
			created = true

		case o.IsCachedOrInjected(v.Expr).Positive():
			injected = true
		}
	}

	if created && field.Exported() && named.Obj().Exported() {
		injected = true // assignable by importers
	}

	switch {
	case created && injected:
		return Mixed

	case injected:
		return InjectedOnly

	case !created:
		return Unclassified

	case o.IsMemberDisposed(field, named).Positive():
		return Disposed

	default:
		return NotDisposed
	}
}

// finalizers returns the functions registered with [runtime.SetFinalizer] for values of type named.
func (o *Oracle) finalizers(named *types.Named) iter.Seq[inspector.Cursor] {
	return func(yield func(inspector.Cursor) bool) {
		for c := range o.decls.Root().Preorder((*ast.CallExpr)(nil)) {
			call := c.Node().(*ast.CallExpr)
			if len(call.Args) != 2 {
				continue
			}

			fn := query.Callee(o.info, call)
			if fn == nil || registry.FuncNameOf(fn) != registry.Func("runtime", "SetFinalizer") {
				continue
			}

			if n, ok := query.Deref(o.info.TypeOf(call.Args[0])).(*types.Named); !ok || n.Origin() != named.Origin() {
				continue
			}

			switch fin := ast.Unparen(call.Args[1]).(type) {
			case *ast.FuncLit:
				if lit, ok := c.FindNode(fin); ok && !yield(lit) {
					return
				}

			case *ast.Ident, *ast.SelectorExpr:
				fn, ok := o.info.ObjectOf(identOf(fin)).(*types.Func)
				if !ok {
					continue
				}

				if decl, _, ok := o.decls.Func(fn); ok && !yield(decl) {
					return
				}
			}
		}
	}
}

func identOf(e ast.Expr) *ast.Ident {
	switch e := e.(type) {
	case *ast.Ident:
		return e

	case *ast.SelectorExpr:
		return e.Sel

	default:
		return nil
	}
}
