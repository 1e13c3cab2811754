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

package astutil

import (
	"go/ast"
	"go/token"
	"iter"
)

// Assignment is one target receiving one value of an assignment or declaration.
type Assignment struct {
	Lhs   ast.Expr // Target expression, an *[ast.Ident] for declarations
	Rhs   ast.Expr // Assigned expression, nil for declarations without values
	Index int      // Result index when Rhs is a multi-valued expression
}

// AllAssignments yields the target-value pairs of parallel lists,
// like the left- and right-hand sides of an assignment.
func AllAssignments(lhs, rhs []ast.Expr) iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		switch {
		case len(lhs) == len(rhs):
			for i, l := range lhs {
				if !yield(Assignment{Lhs: l, Rhs: rhs[i]}) {
					return
				}
			}

		case len(rhs) == 1:
			for i, l := range lhs {
				if !yield(Assignment{Lhs: l, Rhs: rhs[0], Index: i}) {
					return
				}
			}

		default: // len(rhs) == 0, or malformed
			for _, l := range lhs {
				if !yield(Assignment{Lhs: l}) {
					return
				}
			}
		}
	}
}

// AssignStmtAssignments yields the target-value pairs of an assignment statement.
// Operator assignments like "+=" are skipped.
func AssignStmtAssignments(stmt *ast.AssignStmt) iter.Seq[Assignment] {
	if stmt.Tok != token.ASSIGN && stmt.Tok != token.DEFINE {
		return func(func(Assignment) bool) {}
	}

	return AllAssignments(stmt.Lhs, stmt.Rhs)
}

// ValueSpecAssignments yields the name-value pairs of a variable declaration.
func ValueSpecAssignments(spec *ast.ValueSpec) iter.Seq[Assignment] {
	lhs := make([]ast.Expr, len(spec.Names))
	for i, id := range spec.Names {
		lhs[i] = id
	}

	return AllAssignments(lhs, spec.Values)
}
