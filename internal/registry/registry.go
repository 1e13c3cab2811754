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

// Package registry is a catalog of well-known library functions, methods, types and variables
// with a known relationship to resources.
//
// A [Registry] is immutable after construction and can be shared between concurrent passes.
package registry

import (
	"errors"
	"go/types"
	"strings"
	"sync"
)

// Kind describes what is known about a function, type or variable.
type Kind uint16

const (
	// Factory returns a fresh resource owned by the caller.
	Factory Kind = 1 << iota

	// NotCreation returns a resource the caller must not close.
	NotCreation

	// Borrows uses resource arguments without taking ownership.
	Borrows

	// TakesOwnership closes or retains its resource arguments.
	TakesOwnership

	// Cached returns or is a shared instance.
	Cached

	// NoReturn never returns to the caller.
	NoReturn

	// SingleInstance types should be created once and reused.
	SingleInstance
)

// Has reports whether all flags of f are set in k.
func (k Kind) Has(f Kind) bool { return k&f == f }

type signatureKind struct {
	params string
	kind   Kind
}

// Registry holds the known symbols.
type Registry struct {
	funcs map[QualifiedMethod][]signatureKind
	types map[QualifiedType]Kind
	vars  map[QualifiedType]Kind
}

// ErrEmptyName is returned when an empty factory name is configured.
var ErrEmptyName = errors.New("empty function name")

// New creates a [Registry] with the well-known symbols and additional factory functions
// given as "path.Func" or "(path.Type).Method".
func New(factories ...string) (*Registry, error) {
	r := build()

	for _, f := range factories {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, ErrEmptyName
		}

		name, err := ParseFuncName(f)
		if err != nil {
			return nil, err
		}

		r.addFunc(name, Factory)
	}

	return r, nil
}

// Default is the process-wide [Registry] of well-known symbols.
var Default = sync.OnceValue(build)

func build() *Registry {
	r := &Registry{
		funcs: make(map[QualifiedMethod][]signatureKind, len(knownFuncs)),
		types: make(map[QualifiedType]Kind, len(knownTypes)),
		vars:  make(map[QualifiedType]Kind, len(knownVars)),
	}

	for _, f := range knownFuncs {
		r.addFunc(f.name, f.kind)
	}

	for t, k := range knownTypes {
		r.types[t] |= k
	}

	for v, k := range knownVars {
		r.vars[v] |= k
	}

	return r
}

func (r *Registry) addFunc(name QualifiedMethod, kind Kind) {
	key := name.Unrestricted()
	r.funcs[key] = append(r.funcs[key], signatureKind{params: name.Params, kind: kind})
}

// Func returns what is known about fn.
func (r *Registry) Func(fn *types.Func) Kind {
	if r == nil || fn == nil {
		return 0
	}

	entries := r.funcs[FuncNameOf(fn.Origin())]
	if len(entries) == 0 {
		return 0
	}

	var (
		kind     Kind
		params   string
		computed bool
	)

	for _, e := range entries {
		if e.params != "" {
			if !computed {
				if sig, ok := fn.Type().(*types.Signature); ok {
					params = paramsOf(sig)
				}

				computed = true
			}

			if e.params != params {
				continue
			}
		}

		kind |= e.kind
	}

	return kind
}

// Type returns what is known about a named type (or a pointer to it).
func (r *Registry) Type(t types.Type) Kind {
	if r == nil {
		return 0
	}

	q, ok := TypeOf(t)
	if !ok {
		return 0
	}

	return r.types[q]
}

// Var returns what is known about a package level variable.
func (r *Registry) Var(v *types.Var) Kind {
	if r == nil || v == nil || v.Pkg() == nil || v.IsField() {
		return 0
	}

	return r.vars[Type(v.Pkg().Path(), v.Name())]
}

// CantReturn reports whether fn is known to never return.
func (r *Registry) CantReturn(fn *types.Func) bool {
	return r.Func(fn).Has(NoReturn)
}

// HasFactoryName reports whether a function name suggests it returns a new resource.
func HasFactoryName(name string) bool {
	if name == "" {
		return false
	}

	// unexported constructors
	if c := name[0]; 'a' <= c && c <= 'z' {
		name = string(c-'a'+'A') + name[1:]
	}

	for _, verb := range factoryVerbs {
		rest, ok := strings.CutPrefix(name, verb)
		if !ok {
			continue
		}

		// "Opener" and "Newline" don't count, "Open" and "OpenFile" do.
		if rest == "" || rest[0] < 'a' || rest[0] > 'z' {
			return true
		}
	}

	return false
}

// TeardownFor returns the name of the test fixture method that releases what
// the setup method name acquires.
func TeardownFor(setup string) (teardown string, ok bool) {
	teardown, ok = fixtures[setup]
	return teardown, ok
}

// IsTeardown reports whether name is a test fixture teardown method.
func IsTeardown(name string) bool {
	for _, teardown := range fixtures {
		if teardown == name {
			return true
		}
	}

	return false
}
