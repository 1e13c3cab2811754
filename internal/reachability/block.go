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

package reachability

import (
	"cmp"
	"go/ast"
	"go/token"
	"slices"
)

// block is a basic block under construction: a source range executed without
// interruption, and the blocks control can continue to.
type block struct {
	pos, end token.Pos
	succs    []*block
	index    int // position in the finished graph, -1 for empty blocks
}

// empty blocks carry no source and are removed from the finished graph.
func (b *block) empty() bool { return !b.end.IsValid() }

// add extends the range of b to cover n.
func (b *block) add(n ast.Node) {
	if n == nil {
		return
	}

	if pos := n.Pos(); !b.pos.IsValid() || pos < b.pos {
		b.pos = pos
	}

	if end := n.End(); end > b.end {
		b.end = end
	}
}

func (b *block) addExprs(list []ast.Expr) {
	for _, e := range list {
		b.add(e)
	}
}

func (b *block) addFields(fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, f := range fields.List {
		for _, name := range f.Names {
			b.add(name)
		}
	}
}

// jump adds control flow edges from b.
func (b *block) jump(to ...*block) {
	for _, t := range to {
		if t != nil {
			b.succs = append(b.succs, t)
		}
	}
}

// node is a finished basic block.
type node struct {
	start, end token.Pos
	succs      []int
}

// compare orders the node relative to p, for binary search.
func (n node) compare(p token.Pos) int {
	switch {
	case n.end <= p:
		return -1

	case n.start > p:
		return 1

	default:
		return 0
	}
}

// flatten orders the non-empty blocks by source position and routes edges
// through empty blocks to their non-empty successors.
func flatten(blocks []*block) []node {
	live := make([]*block, 0, len(blocks))

	for _, b := range blocks {
		if !b.empty() {
			live = append(live, b)
		}
	}

	slices.SortFunc(live, func(x, y *block) int { return cmp.Compare(x.pos, y.pos) })

	for i, b := range live {
		b.index = i
	}

	nodes := make([]node, len(live))
	seen := make(map[*block]struct{})

	for i, b := range live {
		nodes[i] = node{start: b.pos, end: b.end, succs: successors(nil, b.succs, seen)}

		clear(seen)
	}

	return nodes
}

func successors(out []int, succs []*block, seen map[*block]struct{}) []int {
	for _, s := range succs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		if s.index >= 0 {
			out = append(out, s.index)
			continue
		}

		out = successors(out, s.succs, seen)
	}

	return out
}
