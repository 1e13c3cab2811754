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

// typeSpec checks the ownership of the fields of a struct type.
func (e *Evaluator) typeSpec(spec *ast.TypeSpec) {
	if !e.r.Enabled(rules.NoMixedOwnership) && !e.r.Enabled(rules.CloseMember) && !e.r.Enabled(rules.ImplementCloser) {
		return
	}

	fields, ok := spec.Type.(*ast.StructType)
	if !ok || spec.Assign.IsValid() {
		return
	}

	tn, ok := e.info.Defs[spec.Name].(*types.TypeName)
	if !ok {
		return
	}

	named, ok := tn.Type().(*types.Named)
	if !ok {
		return
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return
	}

	_, hasClose := query.DeclaredClose(named)

	i := 0

	for _, field := range fields.Fields.List {
		if len(field.Names) == 0 { // embedded
			if i < st.NumFields() {
				e.member(st.Field(i), named, field.Type, hasClose)
			}

			i++

			continue
		}

		for _, name := range field.Names {
			if i < st.NumFields() {
				e.member(st.Field(i), named, name, hasClose)
			}

			i++
		}
	}
}

func (e *Evaluator) member(field *types.Var, named *types.Named, at ast.Node, hasClose bool) {
	switch state := e.o.ClassifyMember(field, named); {
	case state == disposable.Mixed:
		e.r.Report(rules.NoMixedOwnership, at)

	case state != disposable.NotDisposed:

	case field.Embedded(): // promoted Close, or checked with the declared Close method

	case hasClose:
		e.r.Report(rules.CloseMember, at)

	default:
		e.r.Report(rules.ImplementCloser, at)
	}
}
