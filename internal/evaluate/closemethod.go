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

package evaluate

import (
	"go/ast"
	"go/types"

	"fillmore-labs.com/closeguard/internal/disposable"
	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/rules"
)

// closeMethod checks the shape of declared Close methods and that they close embedded resources.
func (e *Evaluator) closeMethod(decl *ast.FuncDecl) {
	if decl.Recv == nil || decl.Name.Name != "Close" || decl.Body == nil {
		return
	}

	fn, ok := e.info.Defs[decl.Name].(*types.Func)
	if !ok {
		return
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return
	}

	if e.r.Enabled(rules.CloseSignature) && sig.Params().Len() == 0 && !query.IsCloserSignature(sig) {
		e.r.Report(rules.CloseSignature, decl.Name)
	}

	if !e.r.Enabled(rules.CloseEmbedded) {
		return
	}

	named, ok := query.Deref(sig.Recv().Type()).(*types.Named)
	if !ok {
		return
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return
	}

	for i := range st.NumFields() {
		if field := st.Field(i); field.Embedded() && e.ownsEmbedded(field, named) {
			e.r.Report(rules.CloseEmbedded, decl.Name)
			return
		}
	}
}

// ownsEmbedded reports whether the embedded field is a resource owned by named that is not closed.
func (e *Evaluator) ownsEmbedded(field *types.Var, named *types.Named) bool {
	if !e.o.IsDisposable(field.Type()).Positive() {
		return false
	}

	switch e.o.ClassifyMember(field, named) {
	case disposable.NotDisposed:
		return true

	case disposable.Unclassified: // embedded by value
		if _, ptr := types.Unalias(field.Type()).(*types.Pointer); ptr {
			return false
		}

		return e.o.IsMemberDisposed(field, named).Negative()

	default:
		return false
	}
}
