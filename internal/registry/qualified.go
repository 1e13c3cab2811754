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

package registry

import (
	"errors"
	"fmt"
	"go/types"
	"strings"
)

// QualifiedType identifies a named type by package path and name.
// Values are compared by value, two independently constructed instances naming
// the same type are equal.
type QualifiedType struct {
	Path  string // Package path, empty for predeclared types
	Name  string // Type name
	Alias string // Predeclared spelling, like "error" or "any"
}

// Type returns the [QualifiedType] for the type path.name.
func Type(path, name string) QualifiedType {
	return QualifiedType{Path: path, Name: name}
}

// Universe returns the [QualifiedType] of a predeclared type.
func Universe(name string) QualifiedType {
	return QualifiedType{Name: name, Alias: name}
}

// TypeOf returns the [QualifiedType] of a named type, unwrapping pointers and aliases.
func TypeOf(t types.Type) (QualifiedType, bool) {
	if alias, ok := t.(*types.Alias); ok && alias.Obj().Pkg() == nil {
		return Universe(alias.Obj().Name()), true
	}

	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return QualifiedType{}, false
	}

	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return Universe(obj.Name()), true
	}

	return QualifiedType{Path: obj.Pkg().Path(), Name: obj.Name()}, true
}

// Matches reports whether t, or the type t points to, is the named type q.
func (q QualifiedType) Matches(t types.Type) bool {
	if t == nil {
		return false
	}

	o, ok := TypeOf(t)

	return ok && o == q
}

// Method returns the identity of a method of q, optionally restricted to a parameter list.
func (q QualifiedType) Method(name string, params ...string) QualifiedMethod {
	return QualifiedMethod{Path: q.Path, Receiver: q.Name, Name: name, Params: strings.Join(params, ",")}
}

func (q QualifiedType) String() string {
	if q.Path == "" {
		return q.Name
	}

	return q.Path + "." + q.Name
}

// QualifiedMethod identifies a package level function or a method.
type QualifiedMethod struct {
	Path     string // Package path
	Receiver string // Receiver type name, empty for functions
	Name     string // Function or method name
	Params   string // Optional comma separated parameter types, to select between signatures
}

// Func returns the identity of a package level function.
func Func(path, name string, params ...string) QualifiedMethod {
	return QualifiedMethod{Path: path, Name: name, Params: strings.Join(params, ",")}
}

// FuncNameOf returns the identity of a type-checked function or method,
// without parameter restriction.
func FuncNameOf(fn *types.Func) QualifiedMethod {
	var path string
	if pkg := fn.Pkg(); pkg != nil {
		path = pkg.Path()
	}

	name := QualifiedMethod{Path: path, Name: fn.Name()}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return name
	}

	recv := types.Unalias(sig.Recv().Type())
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = types.Unalias(ptr.Elem())
	}

	switch recv := recv.(type) {
	case *types.Named:
		obj := recv.Origin().Obj()
		name.Receiver = obj.Name()

		if pkg := obj.Pkg(); pkg != nil {
			name.Path = pkg.Path()
		} else {
			name.Path = ""
		}

	case *types.Interface:
		name.Path, name.Receiver = "", "interface"

	default:
		name.Path, name.Receiver = "", "<invalid>"
	}

	return name
}

// Unrestricted returns q without a parameter restriction.
func (q QualifiedMethod) Unrestricted() QualifiedMethod {
	q.Params = ""
	return q
}

func (q QualifiedMethod) String() string {
	var b strings.Builder

	if q.Receiver != "" {
		b.WriteByte('(')

		if q.Path != "" {
			b.WriteString(q.Path)
			b.WriteByte('.')
		}

		b.WriteString(q.Receiver)
		b.WriteString(").")
	} else if q.Path != "" {
		b.WriteString(q.Path)
		b.WriteByte('.')
	}

	b.WriteString(q.Name)

	if q.Params != "" {
		b.WriteByte('(')
		b.WriteString(q.Params)
		b.WriteByte(')')
	}

	return b.String()
}

// ErrInvalidName is returned for function names that can't be parsed.
var ErrInvalidName = errors.New("invalid function name")

// ParseFuncName parses "path.Func", "(path.Type).Method" or "(*path.Type).Method".
func ParseFuncName(s string) (QualifiedMethod, error) {
	if rest, ok := strings.CutPrefix(s, "("); ok {
		recv, name, ok := strings.Cut(rest, ").")
		if !ok || !isIdentifier(name) {
			return QualifiedMethod{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}

		recv = strings.TrimPrefix(recv, "*")

		i := strings.LastIndexByte(recv, '.')
		if i <= 0 || !isIdentifier(recv[i+1:]) {
			return QualifiedMethod{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}

		return QualifiedMethod{Path: recv[:i], Receiver: recv[i+1:], Name: name}, nil
	}

	i := strings.LastIndexByte(s, '.')
	if i <= 0 || !isIdentifier(s[i+1:]) || strings.HasSuffix(s[:i], "/") {
		return QualifiedMethod{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}

	return QualifiedMethod{Path: s[:i], Name: s[i+1:]}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}

	return true
}

// paramsOf renders the parameter types of sig like [QualifiedMethod.Params].
func paramsOf(sig *types.Signature) string {
	params := sig.Params()

	list := make([]string, params.Len())
	for i := range params.Len() {
		list[i] = types.TypeString(params.At(i).Type(), nil)
	}

	return strings.Join(list, ",")
}
