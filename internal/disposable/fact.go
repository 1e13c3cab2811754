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

package disposable

import (
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"fillmore-labs.com/closeguard/internal/query"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/result"
	"fillmore-labs.com/closeguard/internal/walker"
)

// FuncFact summarizes the resource behavior of a function for its callers.
// Parameter slices are indexed by declared parameter, excluding the receiver.
type FuncFact struct {
	Returns []result.Result // Creation verdict per result
	Closes  []bool          // Parameter is closed
	Stores  []bool          // Parameter is retained, returned or handed to an owner
	Assigns []bool          // Pointer parameter receives a created resource

	borrows bool // A resource parameter is only used during the call
}

// AFact implements [analysis.Fact].
func (*FuncFact) AFact() {}

func (f *FuncFact) String() string {
	var b strings.Builder

	b.WriteString("returns=[")

	for i, r := range f.Returns {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(r.String())
	}

	b.WriteByte(']')

	for _, p := range [...]struct {
		name  string
		flags []bool
	}{{"closes", f.Closes}, {"stores", f.Stores}, {"assigns", f.Assigns}} {
		first := true

		for i, set := range p.flags {
			if !set {
				continue
			}

			if first {
				b.WriteString(" " + p.name + "=")

				first = false
			} else {
				b.WriteByte(',')
			}

			b.WriteString(strconv.Itoa(i))
		}
	}

	return b.String()
}

// Relevant reports whether the fact carries information worth exporting.
func (f *FuncFact) Relevant() bool {
	if f.borrows {
		return true
	}

	for _, r := range f.Returns {
		if r != result.No {
			return true
		}
	}

	for i := range f.Closes {
		if f.Closes[i] || f.Assigns[i] {
			return true
		}
	}

	return false
}

// Summary computes the [FuncFact] of a function declared in this package.
// It returns nil for functions without a body, while the summary of fn is being computed
// and when the analysis is canceled.
func (o *Oracle) Summary(fn *types.Func) *FuncFact {
	if fn == nil {
		return nil
	}

	fn = fn.Origin()

	if fact, ok := o.summaries[fn]; ok {
		return fact
	}

	if o.canceled() {
		return nil
	}

	o.summaries[fn] = nil // in progress

	c, decl, ok := o.decls.Func(fn)
	if !ok {
		return nil
	}

	sig := fn.Signature()
	params, results := sig.Params(), sig.Results()

	fact := &FuncFact{
		Returns: make([]result.Result, results.Len()),
		Closes:  make([]bool, params.Len()),
		Stores:  make([]bool, params.Len()),
		Assigns: make([]bool, params.Len()),
	}

	for i := range results.Len() {
		if !o.IsDisposable(results.At(i).Type()).Positive() {
			fact.Returns[i] = result.No
			continue
		}

		fact.Returns[i] = o.returnsCreation(decl, i)
	}

	index := make(map[*types.Var]int, params.Len())
	for i := range params.Len() {
		index[params.At(i)] = i
	}

	if body, ok := query.FuncBody(c); ok {
		dw := walker.BorrowDispose(o.ctx, o.info)
		for _, site := range dw.Walk(body, o.closesArg) {
			if i, ok := index[site.Member.Var]; ok && site.Member.Base == nil {
				fact.Closes[i] = true
			}
		}
		dw.Release()
	}

	uw := walker.BorrowUsage(o.ctx, o.info)
	defer uw.Release()

	aw := walker.BorrowAssigned(o.ctx, o.info)
	defer aw.Release()

	for i := range params.Len() {
		p := params.At(i)

		if !o.IsDisposable(p.Type()).IsEither(result.No, result.Unknown) {
			for _, u := range uw.Walk(c, p, o.argUse) {
				switch u.Kind {
				case walker.Escape, walker.Return:
					fact.Stores[i] = true
				}
			}

			if !fact.Stores[i] && !fact.Closes[i] {
				fact.borrows = true
			}
		}

		if _, ok := types.Unalias(p.Type()).(*types.Pointer); ok {
			for _, av := range aw.Walk(c, p) {
				if av.Deref && o.IsCreation(av.Value, av.Index).Positive() {
					fact.Assigns[i] = true
				}
			}
		}
	}

	if o.canceled() { // walks may have stopped early
		delete(o.summaries, fn)
		return nil
	}

	o.summaries[fn] = fact

	return fact
}

// factOf returns the summary of fn, computed for this package or imported from its package.
func (o *Oracle) factOf(fn *types.Func) *FuncFact {
	fn = fn.Origin()

	if fn.Pkg() == o.pass.Pkg {
		return o.Summary(fn)
	}

	var fact FuncFact
	if fn.Pkg() == nil || !o.pass.ImportObjectFact(fn, &fact) {
		return nil
	}

	return &fact
}

// ArgUse classifies passing a resource as argument i of call.
func (o *Oracle) ArgUse(call *ast.CallExpr, i int) walker.UsageKind {
	return o.argUse(call, i)
}

func (o *Oracle) argUse(call *ast.CallExpr, i int) walker.UsageKind {
	fn := query.Callee(o.info, call)
	if fn == nil {
		return walker.Escape
	}

	switch kind := o.reg.Func(fn); {
	case kind.Has(registry.TakesOwnership):
		return walker.Escape

	case kind.Has(registry.Borrows):
		return walker.Borrow
	}

	if i < 0 || i >= len(call.Args) {
		return walker.Escape
	}

	_, index, ok := query.TryGetMatchingParameter(o.info, call, call.Args[i])
	if !ok {
		return walker.Escape
	}

	if index < 0 {
		return walker.Borrow // receiver of a method expression
	}

	fact := o.factOf(fn)
	if fact == nil || index >= len(fact.Closes) {
		return walker.Escape
	}

	switch {
	case fact.Closes[index]:
		return walker.Close

	case fact.Stores[index]:
		return walker.Escape

	default:
		return walker.Borrow
	}
}

// closesArg reports whether call closes its argument i.
func (o *Oracle) closesArg(call *ast.CallExpr, i int) bool {
	return o.argUse(call, i) == walker.Close
}
