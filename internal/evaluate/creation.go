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

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/rules"
)

// exprStmt reports created resources discarded as statements, like "os.Open(name)".
func (e *Evaluator) exprStmt(stmt *ast.ExprStmt) {
	if !e.r.Enabled(rules.NoIgnoreCreated) {
		return
	}

	call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
	if !ok {
		return
	}

	if e.o.IsCreation(call, 0).Positive() {
		e.r.Report(rules.NoIgnoreCreated, call)
	}
}

// singleInstance reports construction of types that should be shared, outside
// of package variable initializers and init functions.
func (e *Evaluator) singleInstance(c inspector.Cursor, n ast.Node, t types.Type) {
	if !e.r.Enabled(rules.SingleHTTPClient) || t == nil || !e.reg.Type(t).Has(registry.SingleInstance) {
		return
	}

	if _, ok := types.Unalias(t).(*types.Pointer); ok {
		return // new(*http.Client)
	}

	for fun := range c.Enclosing((*ast.FuncDecl)(nil)) {
		if decl := fun.Node().(*ast.FuncDecl); decl.Recv == nil && decl.Name.Name == "init" {
			return
		}

		e.r.Report(rules.SingleHTTPClient, n)

		return
	}
}
