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

package evaluate_test

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/disposable"
	. "fillmore-labs.com/closeguard/internal/evaluate"
	"fillmore-labs.com/closeguard/internal/report"
	"fillmore-labs.com/closeguard/internal/rules"
	"fillmore-labs.com/closeguard/internal/testsource"
)

const src = `package test

import (
	"net/http"
	"os"
)

var shared = &http.Client{}

func leak() {
	f, _ := os.Open("a") // IDISP001
	f.Name()
}

func discard() {
	os.Open("b") // IDISP004
	_, _ = os.Open("c") // IDISP004
}

func reassign() {
	f, _ := os.Create("a")
	f, _ = os.Create("b") // IDISP003
	f.Close()
}

func client() *http.Client {
	return &http.Client{} // IDISP014
}

type conn struct{}

func (*conn) Close() error { return nil }

func anyConn() any {
	return &conn{} // IDISP005
}

func closed() *os.File {
	f, _ := os.Open("a")
	f.Close()
	return f // IDISP011
}

func useClosed() {
	f, _ := os.Open("a")
	f.Close()
	f.Name() // IDISP016
}

func closeStdout() {
	os.Stdout.Close() // IDISP007
}

type holder struct {
	f *os.File // IDISP006
}

func newHolder() *holder {
	f, _ := os.Open("a")
	return &holder{f: f}
}

type owner struct {
	f *os.File // IDISP002
}

func (*owner) Close() error { return nil }

func newOwner() *owner {
	f, _ := os.Open("a")
	return &owner{f: f}
}

type shut struct{}

func (shut) Close() {} // IDISP009

type base struct{}

func (*base) Close() error { return nil }

type derived struct{ base }

func (*derived) Close() error { return nil } // IDISP010

type lazy struct{ f *os.File }

func (l *lazy) get() *os.File {
	if l.f == nil {
		l.f, _ = os.Open("a")
	}

	return l.f
}

func (l *lazy) Close() error { return l.f.Close() }
`

var marker = regexp.MustCompile(`IDISP\d{3}`)

func TestEvaluator(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)

	var got []string
	p.Report = func(d analysis.Diagnostic) {
		got = append(got, fmt.Sprintf("%d:%s", p.Fset.Position(d.Pos).Line, d.Category))
	}

	var want []string

	for _, g := range p.Files[0].Comments {
		for _, c := range g.List {
			for _, id := range marker.FindAllString(c.Text, -1) {
				want = append(want, fmt.Sprintf("%d:%s", p.Fset.Position(c.Pos()).Line, id))
			}
		}
	}

	o := disposable.New(context.Background(), p, in, nil)

	r := report.New(p, config.DefaultRules(), rules.Info)
	r.SetFile(astutil.NewCurrentFile(p.Fset, p.Files[0]))

	e := New(p.TypesInfo, o, r)
	for c := range in.Root().Preorder(NodeTypes()...) {
		e.Node(c)
	}

	slices.Sort(got)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("Got diagnostics %v, want %v", got, want)
	}
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	p, in := testsource.Load(t, src)

	n := 0
	p.Report = func(analysis.Diagnostic) { n++ }

	o := disposable.New(context.Background(), p, in, nil)
	r := report.New(p, config.Rules{}, rules.Info)

	e := New(p.TypesInfo, o, r)
	for c := range in.Root().Preorder(NodeTypes()...) {
		e.Node(c)
	}

	if n != 0 {
		t.Errorf("Got %d diagnostics with all rules disabled", n)
	}
}
