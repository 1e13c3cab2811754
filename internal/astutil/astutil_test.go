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

package astutil_test

import (
	"go/ast"
	"testing"

	. "fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/testsource"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		ids  []string
		want bool
	}{
		{"//nolint:closeguard", nil, true},
		{"// nolint:all", nil, true},
		{"//nolint:errcheck,CloseGuard", nil, true},
		{"//nolint:idisp001", []string{"IDISP001"}, true},
		{"//nolint:idisp001", []string{"IDISP002"}, false},
		{"//nolint:errcheck", nil, false},
		{"// closeguard", nil, false},
	}

	for _, tt := range tests {
		if got := CommentHasNoLint(&ast.Comment{Text: tt.text}, tt.ids...); got != tt.want {
			t.Errorf("CommentHasNoLint(%q, %v) = %t, want %t", tt.text, tt.ids, got, tt.want)
		}
	}
}

const src = `// Code generated by hand. DO NOT EDIT.

package test

func f() {
	a := 1 //nolint:idisp003
	_ = a
}
`

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	fset, f := testsource.ParseFile(t, src)

	c := NewCurrentFile(fset, f)
	if !c.Valid() || !c.Generated() {
		t.Fatalf("Expected valid generated file")
	}

	var assign *ast.AssignStmt

	ast.Inspect(f, func(n ast.Node) bool {
		if a, ok := n.(*ast.AssignStmt); ok && assign == nil {
			assign = a
		}

		return assign == nil
	})

	if assign == nil {
		t.Fatal("No assignment found")
	}

	if !c.Contains(assign.Pos()) {
		t.Error("Assignment outside of file")
	}

	if !c.NoLintComment(assign.Pos(), "IDISP003") {
		t.Error("Expected nolint for IDISP003")
	}

	if c.NoLintComment(assign.Pos(), "IDISP001") {
		t.Error("Unexpected nolint for IDISP001")
	}

	if NewCurrentFile(fset, nil).Valid() {
		t.Error("Expected invalid file for nil")
	}
}

func TestAllAssignments(t *testing.T) {
	t.Parallel()

	a, b, c := ast.NewIdent("a"), ast.NewIdent("b"), ast.NewIdent("c")

	tests := [...]struct {
		name     string
		lhs, rhs []ast.Expr
		want     []Assignment
	}{
		{"parallel", []ast.Expr{a, b}, []ast.Expr{c, c}, []Assignment{{a, c, 0}, {b, c, 0}}},
		{"tuple", []ast.Expr{a, b}, []ast.Expr{c}, []Assignment{{a, c, 0}, {b, c, 1}}},
		{"declaration", []ast.Expr{a}, nil, []Assignment{{a, nil, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []Assignment
			for as := range AllAssignments(tt.lhs, tt.rhs) {
				got = append(got, as)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Got %d assignments, want %d", len(got), len(tt.want))
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Assignment %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
