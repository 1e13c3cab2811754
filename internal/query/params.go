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
	"slices"

	"golang.org/x/tools/go/types/typeutil"
)

// TryGetMatchingParameter resolves the formal parameter a call argument binds to.
//
// A trailing variadic parameter absorbs extra arguments unless the call spreads a slice.
// For method expressions like T.M(recv, ...) the receiver is the first parameter,
// and the returned index counts declared parameters, so it is -1 for the receiver.
func TryGetMatchingParameter(info *types.Info, call *ast.CallExpr, arg ast.Expr) (param *types.Var, index int, ok bool) {
	if call == nil || arg == nil {
		return nil, 0, false
	}

	i := slices.Index(call.Args, arg)
	if i < 0 {
		return nil, 0, false
	}

	fun := ast.Unparen(call.Fun)

	if tv, ok := info.Types[fun]; ok && (tv.IsType() || tv.IsBuiltin()) {
		return nil, 0, false // conversion or builtin
	}

	t := info.TypeOf(fun)
	if t == nil {
		return nil, 0, false
	}

	sig, ok := t.Underlying().(*types.Signature)
	if !ok {
		return nil, 0, false
	}

	shift := 0
	if sel, ok := fun.(*ast.SelectorExpr); ok {
		if s, ok := info.Selections[sel]; ok && s.Kind() == types.MethodExpr {
			shift = 1
		}
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return nil, 0, false
	}

	if sig.Variadic() && !call.Ellipsis.IsValid() && i >= n-1 {
		i = n - 1
	}

	if i >= n {
		return nil, 0, false
	}

	return params.At(i), i - shift, true
}

// Callee returns the function or method called, including interface methods, or nil.
func Callee(info *types.Info, call *ast.CallExpr) *types.Func {
	if call == nil {
		return nil
	}

	fn, _ := typeutil.Callee(info, call).(*types.Func)

	return fn
}

// IsInterfaceMethod reports whether fn is an abstract method without a body.
func IsInterfaceMethod(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)

	return ok && sig.Recv() != nil && types.IsInterface(sig.Recv().Type())
}
