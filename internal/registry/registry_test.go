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

package registry_test

import (
	"errors"
	"go/ast"
	"go/types"
	"testing"

	"golang.org/x/tools/go/types/typeutil"

	. "fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/testsource"
)

const src = `package test

import (
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
)

var _ = func() {
	os.Open("")
	net.Dial("", "")
	io.Copy(nil, nil)
	io.NopCloser(nil)
	log.Fatal()
	new(sync.Pool).Get()
	strings.NewReader("")
	newConn()
}

func newConn() {}
`

func TestFunc(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)

	want := map[string]Kind{
		"os.Open":           Factory,
		"net.Dial":          Factory,
		"io.Copy":           Borrows,
		"io.NopCloser":      NotCreation | Borrows,
		"log.Fatal":         NoReturn,
		"(sync.Pool).Get":   Cached,
		"strings.NewReader": 0,
		"test.newConn":      0,
	}

	r, err := New("test.newConn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	seen := 0

	for c := range in.Root().Preorder((*ast.CallExpr)(nil)) {
		fn, ok := typeutil.Callee(p.TypesInfo, c.Node().(*ast.CallExpr)).(*types.Func)
		if !ok {
			continue
		}

		name := FuncNameOf(fn).String()

		k, ok := want[name]
		if !ok {
			t.Errorf("Unexpected call of %s", name)
			continue
		}

		seen++

		if name == "test.newConn" {
			k = Factory
		}

		if got := r.Func(fn); got != k {
			t.Errorf("Func(%s) = %b, want %b", name, got, k)
		}

		if got, want := Default().Func(fn), want[name]; got != want {
			t.Errorf("Default().Func(%s) = %b, want %b", name, got, want)
		}
	}

	if seen != len(want) {
		t.Errorf("Saw %d calls, want %d", seen, len(want))
	}

	for _, imp := range p.Pkg.Imports() {
		if imp.Path() != "os" {
			continue
		}

		if v, ok := imp.Scope().Lookup("Stdout").(*types.Var); !ok || !Default().Var(v).Has(Cached) {
			t.Errorf("os.Stdout is not cached")
		}
	}
}

func TestParseFuncName(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		want QualifiedMethod
		err  error
	}{
		{"os.Open", Func("os", "Open"), nil},
		{"example.com/pkg/v2.NewConn", Func("example.com/pkg/v2", "NewConn"), nil},
		{"(*database/sql.DB).Query", Type("database/sql", "DB").Method("Query"), nil},
		{"(net.Listener).Accept", Type("net", "Listener").Method("Accept"), nil},
		{"Open", QualifiedMethod{}, ErrInvalidName},
		{"os.", QualifiedMethod{}, ErrInvalidName},
		{"(os.File.Close", QualifiedMethod{}, ErrInvalidName},
		{"(File).Close", QualifiedMethod{}, ErrInvalidName},
		{"os.1Open", QualifiedMethod{}, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFuncName(tt.name)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseFuncName(%q) error = %v, want %v", tt.name, err, tt.err)
			}

			if got != tt.want {
				t.Errorf("ParseFuncName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	if _, err := New(" "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("New(\" \") error = %v, want %v", err, ErrEmptyName)
	}

	if _, err := New("NewConn"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("New(\"NewConn\") error = %v, want %v", err, ErrInvalidName)
	}
}

func TestQualified(t *testing.T) {
	t.Parallel()

	if a, b := Type("os", "File"), Type("os", "File"); a != b {
		t.Errorf("%v != %v", a, b)
	}

	if got, want := Type("os", "File").Method("ReadAt", "[]byte", "int64").String(), "(os.File).ReadAt([]byte,int64)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got, want := Universe("error").String(), "error"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if !Universe("error").Matches(types.Universe.Lookup("error").Type()) {
		t.Error("error does not match")
	}
}

func TestHasFactoryName(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		want bool
	}{
		{"New", true},
		{"NewReader", true},
		{"newConn", true},
		{"OpenFile", true},
		{"dial", true},
		{"Newline", false},
		{"Opener", false},
		{"Get", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasFactoryName(tt.name); got != tt.want {
			t.Errorf("HasFactoryName(%q) = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestFixtures(t *testing.T) {
	t.Parallel()

	if teardown, ok := TeardownFor("SetupTest"); !ok || teardown != "TearDownTest" {
		t.Errorf("TeardownFor(SetupTest) = %q, %t", teardown, ok)
	}

	if !IsTeardown("AfterTest") || IsTeardown("Close") {
		t.Error("Unexpected teardown classification")
	}
}
