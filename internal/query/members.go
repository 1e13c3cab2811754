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

// Package query holds total lookup helpers over syntax trees and type information.
//
// Helpers never panic on incomplete input. Not-found, ambiguous and malformed
// cases are reported with a boolean or an [result.Unknown] verdict.
package query

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// closeName is the method releasing a resource.
const closeName = "Close"

var errorType = types.Universe.Lookup("error").Type()

// TryFindMember finds the field or method name declared directly on t, or on the type t points to.
// Embedded fields are not searched. More than one match is ambiguous and fails.
func TryFindMember(t types.Type, name string) (types.Object, bool) {
	t = Deref(t)
	if t == nil {
		return nil, false
	}

	var found []types.Object

	if named, ok := t.(*types.Named); ok {
		for i := range named.NumMethods() {
			if m := named.Method(i); m.Name() == name {
				found = append(found, m)
			}
		}
	}

	switch u := t.Underlying().(type) {
	case *types.Struct:
		for i := range u.NumFields() {
			if f := u.Field(i); f.Name() == name {
				found = append(found, f)
			}
		}

	case *types.Interface:
		for i := range u.NumMethods() {
			if m := u.Method(i); m.Name() == name {
				found = append(found, m)
			}
		}
	}

	if len(found) != 1 {
		return nil, false
	}

	return found[0], true
}

// TryFindMemberRecursive finds the field or method name of t, including those promoted from embedded fields.
// An ambiguous selector fails.
func TryFindMemberRecursive(t types.Type, pkg *types.Package, name string) (types.Object, bool) {
	if t == nil {
		return nil, false
	}

	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, name)
	if obj == nil { // not found, or ambiguous
		return nil, false
	}

	return obj, true
}

// TryFindMethod finds the single method of t satisfying pred.
func TryFindMethod(t types.Type, pred func(*types.Func) bool) (*types.Func, bool) {
	if t == nil {
		return nil, false
	}

	var found *types.Func

	for _, sel := range typeutil.IntuitiveMethodSet(t, nil) {
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !pred(fn) {
			continue
		}

		if found != nil {
			return nil, false
		}

		found = fn
	}

	return found, found != nil
}

// CloseMethod returns the Close method of t, when it has the shape of a release operation.
func CloseMethod(t types.Type) (*types.Func, bool) {
	obj, ok := TryFindMemberRecursive(t, nil, closeName)
	if !ok {
		return nil, false
	}

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || !IsCloseSignature(sig) {
		return nil, false
	}

	return fn, true
}

// IsCloseSignature reports whether sig is "func()" or "func() error".
func IsCloseSignature(sig *types.Signature) bool {
	if sig == nil || sig.Params().Len() != 0 {
		return false
	}

	switch res := sig.Results(); res.Len() {
	case 0:
		return true

	case 1:
		return types.Identical(res.At(0).Type(), errorType)

	default:
		return false
	}
}

// IsCloserSignature reports whether sig is exactly the signature of [io.Closer.Close].
func IsCloserSignature(sig *types.Signature) bool {
	return sig != nil && sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
		types.Identical(sig.Results().At(0).Type(), errorType)
}

// DeclaredClose returns the Close method declared on the named type t itself, not a promoted one.
func DeclaredClose(t types.Type) (*types.Func, bool) {
	obj, ok := TryFindMember(t, closeName)
	if !ok {
		return nil, false
	}

	fn, ok := obj.(*types.Func)

	return fn, ok
}

// IsCloseCall reports whether call is "x.Close()" for a resource x and returns the selector.
func IsCloseCall(info *types.Info, call *ast.CallExpr) (*ast.SelectorExpr, bool) {
	if call == nil || len(call.Args) != 0 {
		return nil, false
	}

	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || !IsCloseMethodValue(info, sel) {
		return nil, false
	}

	return sel, true
}

// IsCloseMethodValue reports whether sel selects the Close method of a resource.
func IsCloseMethodValue(info *types.Info, sel *ast.SelectorExpr) bool {
	if sel == nil || sel.Sel.Name != closeName {
		return false
	}

	selection, ok := info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return false
	}

	sig, ok := selection.Obj().Type().(*types.Signature)

	return ok && IsCloseSignature(sig)
}

// Deref unwraps aliases and one level of pointer.
func Deref(t types.Type) types.Type {
	if t == nil {
		return nil
	}

	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		return types.Unalias(ptr.Elem())
	}

	return t
}
