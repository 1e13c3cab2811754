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

// Package reachability answers whether control can flow from one position of a function
// body to another.
package reachability

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/closeguard/internal/registry"
)

// Graph is the control-flow graph of a function body, built on first use.
type Graph struct {
	build func() []node
	nodes []node
	built bool

	// search state, reused between queries
	visited []bool
	stack   []int
}

// Reachable reports whether control can flow from position from to position to.
// ok is false when either position is not part of a basic block.
func (g *Graph) Reachable(from, to token.Pos) (reachable, ok bool) {
	if g == nil {
		return true, false
	}

	g.init()

	src, ok := g.find(from)
	if !ok {
		return true, false
	}

	dst, ok := g.find(to)
	if !ok {
		return true, false
	}

	if src == dst && from <= to {
		return true, true
	}

	return g.search(src, dst), true
}

// Repeats reports whether control can return to pos after passing it, as in a loop body.
// ok is false when pos is not part of a basic block.
func (g *Graph) Repeats(pos token.Pos) (repeats, ok bool) {
	if g == nil {
		return false, false
	}

	g.init()

	n, ok := g.find(pos)
	if !ok {
		return false, false
	}

	return g.search(n, n), true
}

func (g *Graph) init() {
	if g.built {
		return
	}

	g.nodes = g.build()
	g.visited = make([]bool, len(g.nodes))
	g.built = true
}

// search reports whether dst is a successor of src, directly or transitively.
func (g *Graph) search(src, dst int) bool {
	clear(g.visited)

	stack := append(g.stack[:0], g.nodes[src].succs...)
	defer func() { g.stack = stack[:0] }()

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n == dst {
			return true
		}

		if g.visited[n] {
			continue
		}
		g.visited[n] = true

		stack = append(stack, g.nodes[n].succs...)
	}

	return false
}

func (g *Graph) find(pos token.Pos) (int, bool) {
	return slices.BinarySearchFunc(g.nodes, pos, node.compare)
}

// Graphs lazily builds and caches the control-flow graphs of the functions in a package.
// It is not safe for concurrent use.
type Graphs struct {
	ctx    context.Context
	info   *types.Info
	reg    *registry.Registry
	graphs map[ast.Node]*Graph
}

// NewGraphs creates an empty graph cache. Calls the registry knows to never return end
// a basic block without successors.
func NewGraphs(ctx context.Context, info *types.Info, reg *registry.Registry) *Graphs {
	return &Graphs{ctx: ctx, info: info, reg: reg, graphs: make(map[ast.Node]*Graph)}
}

// Of returns the control-flow graph of a *[ast.FuncDecl] or *[ast.FuncLit].
// It returns nil for other nodes and functions without body, which [Graph.Reachable] treats as unknown.
func (g *Graphs) Of(fun ast.Node) *Graph {
	if graph, ok := g.graphs[fun]; ok {
		return graph
	}

	var (
		recv *ast.FieldList
		typ  *ast.FuncType
		body *ast.BlockStmt
	)

	switch fun := fun.(type) {
	case *ast.FuncDecl:
		recv, typ, body = fun.Recv, fun.Type, fun.Body

	case *ast.FuncLit:
		typ, body = fun.Type, fun.Body
	}

	var graph *Graph

	if typ != nil && body != nil {
		graph = &Graph{build: func() []node {
			defer trace.StartRegion(g.ctx, "Graph").End()

			return build(g.info, g.reg, recv, typ, body)
		}}
	}

	g.graphs[fun] = graph

	return graph
}
