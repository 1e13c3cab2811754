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
	"iter"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// Declarations indexes the function and struct type declarations of a package.
type Declarations struct {
	in    *inspector.Inspector
	funcs map[*types.Func]inspector.Cursor
	types map[*types.TypeName]inspector.Cursor
}

// NewDeclarations builds the index with a single traversal.
func NewDeclarations(info *types.Info, in *inspector.Inspector) *Declarations {
	d := &Declarations{
		in:    in,
		funcs: make(map[*types.Func]inspector.Cursor),
		types: make(map[*types.TypeName]inspector.Cursor),
	}

	for c := range in.Root().Preorder((*ast.FuncDecl)(nil), (*ast.TypeSpec)(nil)) {
		switch n := c.Node().(type) {
		case *ast.FuncDecl:
			if fn, ok := info.Defs[n.Name].(*types.Func); ok {
				d.funcs[fn] = c
			}

		case *ast.TypeSpec:
			if tn, ok := info.Defs[n.Name].(*types.TypeName); ok {
				d.types[tn] = c
			}
		}
	}

	return d
}

// Func returns the declaration of fn, when it is declared with a body in this package.
func (d *Declarations) Func(fn *types.Func) (inspector.Cursor, *ast.FuncDecl, bool) {
	if fn == nil {
		return inspector.Cursor{}, nil, false
	}

	c, ok := d.funcs[fn.Origin()]
	if !ok {
		return inspector.Cursor{}, nil, false
	}

	decl, ok := c.Node().(*ast.FuncDecl)
	if !ok || decl.Body == nil {
		return inspector.Cursor{}, nil, false
	}

	return c, decl, true
}

// Funcs yields all declared functions and methods.
func (d *Declarations) Funcs() iter.Seq2[*types.Func, inspector.Cursor] {
	return func(yield func(*types.Func, inspector.Cursor) bool) {
		for fn, c := range d.funcs {
			if !yield(fn, c) {
				return
			}
		}
	}
}

// Type returns the declaration of a type name.
func (d *Declarations) Type(tn *types.TypeName) (inspector.Cursor, *ast.TypeSpec, bool) {
	if tn == nil {
		return inspector.Cursor{}, nil, false
	}

	c, ok := d.types[tn]
	if !ok {
		return inspector.Cursor{}, nil, false
	}

	spec, ok := c.Node().(*ast.TypeSpec)

	return c, spec, ok
}

// Methods yields the methods declared on the named type t with a body in this package.
func (d *Declarations) Methods(t *types.Named) iter.Seq2[*types.Func, *ast.FuncDecl] {
	return func(yield func(*types.Func, *ast.FuncDecl) bool) {
		if t == nil {
			return
		}

		t = t.Origin()
		for i := range t.NumMethods() {
			fn := t.Method(i)
			if _, decl, ok := d.Func(fn); ok && !yield(fn, decl) {
				return
			}
		}
	}
}

// Root returns the cursor of the whole package.
func (d *Declarations) Root() inspector.Cursor {
	return d.in.Root()
}

// Scope returns the cursor of the subtree holding all assignments of v:
// the declaring function for local variables and parameters, the whole package otherwise.
func (d *Declarations) Scope(v *types.Var) inspector.Cursor {
	root := d.in.Root()

	if v == nil || v.IsField() || v.Parent() == nil || v.Pkg() == nil || v.Parent() == v.Pkg().Scope() {
		return root
	}

	c, ok := root.FindByPos(v.Pos(), v.Pos())
	if !ok {
		return root
	}

	if fun, ok := EnclosingFunc(c); ok {
		return fun
	}

	return root
}

// EnclosingFunc returns the innermost *[ast.FuncDecl] or *[ast.FuncLit] containing c, c included.
func EnclosingFunc(c inspector.Cursor) (inspector.Cursor, bool) {
	for e := c; ; e = e.Parent() {
		switch e.Node().(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return e, true

		case nil: // root
			return inspector.Cursor{}, false
		}
	}
}

// FuncBody returns the cursor of the body of a function declaration or literal.
func FuncBody(fun inspector.Cursor) (inspector.Cursor, bool) {
	switch n := fun.Node().(type) {
	case *ast.FuncDecl:
		if n.Body == nil {
			return inspector.Cursor{}, false
		}

		return fun.ChildAt(edge.FuncDecl_Body, -1), true

	case *ast.FuncLit:
		return fun.ChildAt(edge.FuncLit_Body, -1), true

	default:
		return inspector.Cursor{}, false
	}
}

// Signature returns the type of a function declaration or literal.
func Signature(info *types.Info, fun ast.Node) (*types.Signature, bool) {
	var t types.Type

	switch n := fun.(type) {
	case *ast.FuncDecl:
		if obj := info.Defs[n.Name]; obj != nil {
			t = obj.Type()
		}

	case *ast.FuncLit:
		t = info.TypeOf(n)
	}

	if t == nil {
		return nil, false
	}

	sig, ok := t.Underlying().(*types.Signature)

	return sig, ok
}
