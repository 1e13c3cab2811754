// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package scope

import (
	"go/ast"
	"go/token"
	"go/types"
	"iter"
)

// Index maps scopes to their corresponding AST nodes.
//
// It is used to answer where a variable lives: in a function body, a
// parameter list, or at package level.
type Index map[*types.Scope]ast.Node

// NewIndex creates a scope index from the type checker's scope map.
func NewIndex(info *types.Info) Index {
	s := make(Index, len(info.Scopes))
	for node, scope := range info.Scopes {
		s[scope] = node
	}

	return s
}

// VarKind classifies the declaration of a variable.
type VarKind uint8

//go:generate go tool stringer -type VarKind -trimprefix Kind
const (
	// KindUnresolved is a variable with unknown declaration.
	KindUnresolved VarKind = iota

	// KindLocal is a variable declared in a function body.
	KindLocal

	// KindParam is a function parameter.
	KindParam

	// KindResult is a named function result.
	KindResult

	// KindReceiver is a method receiver.
	KindReceiver

	// KindPackage is a package level variable.
	KindPackage

	// KindField is a struct field.
	KindField
)

// KindOf classifies the declaration of v.
func (s Index) KindOf(v *types.Var) VarKind {
	switch {
	case v == nil:
		return KindUnresolved

	case v.IsField():
		return KindField

	case v.Parent() == nil:
		return KindUnresolved

	case v.Pkg() != nil && v.Parent() == v.Pkg().Scope():
		return KindPackage
	}

	typ, ok := s[v.Parent()].(*ast.FuncType)
	if !ok {
		return KindLocal
	}

	switch pos := v.Pos(); {
	case typ.Params != nil && typ.Params.Pos() <= pos && pos < typ.Params.End():
		return KindParam

	case typ.Results != nil && typ.Results.Pos() <= pos && pos < typ.Results.End():
		return KindResult

	case typ.Params != nil && pos < typ.Params.Pos():
		return KindReceiver

	default:
		return KindLocal
	}
}

// FuncType returns the signature of the innermost function declaring v,
// nil for package level variables and fields.
func (s Index) FuncType(v *types.Var) *ast.FuncType {
	if v == nil || v.IsField() {
		return nil
	}

	for scope := range s.ParentScopes(v.Parent()) {
		if typ, ok := s[scope].(*ast.FuncType); ok {
			return typ
		}
	}

	return nil
}

// Innermost finds the innermost scope containing pos, starting at the declaration scope.
func (s Index) Innermost(declScope *types.Scope, pos token.Pos) *types.Scope {
	if declScope == nil {
		return nil
	}

	return declScope.Innermost(pos)
}

// ParentScopes yields a sequence of scopes from start up to the package scope.
func (s Index) ParentScopes(start *types.Scope) iter.Seq[*types.Scope] {
	return func(yield func(*types.Scope) bool) {
		for scope := start; scope != nil && scope != types.Universe; scope = scope.Parent() {
			if !yield(scope) {
				break
			}
		}
	}
}
