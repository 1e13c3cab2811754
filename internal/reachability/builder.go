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
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/closeguard/internal/registry"
)

// builder splits a function body into basic blocks.
//
// The statement methods take the block control enters with and return the block
// control leaves with, which has no predecessors after a terminating statement.
type builder struct {
	info   *types.Info
	reg    *registry.Registry
	blocks []*block
	labels map[string]*label
	scopes []jumps
}

// jumps are the targets of unlabeled branch statements inside a statement.
type jumps struct {
	brk, cont, fall *block
}

// label holds the targets of a labeled statement.
type label struct {
	target, brk, cont *block
}

func build(info *types.Info, reg *registry.Registry, recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt) []node {
	b := builder{info: info, reg: reg, labels: make(map[string]*label)}

	entry := b.newBlock(typ.Pos())
	entry.addFields(recv)
	entry.addFields(typ.Params)
	entry.addFields(typ.Results)

	b.stmts(entry, body.List)

	return flatten(b.blocks)
}

func (b *builder) newBlock(pos token.Pos) *block {
	bl := &block{pos: pos, index: -1}
	b.blocks = append(b.blocks, bl)

	return bl
}

func (b *builder) stmts(cur *block, list []ast.Stmt) *block {
	for _, s := range list {
		cur = b.stmt(cur, s, nil)
	}

	return cur
}

func (b *builder) stmt(cur *block, s ast.Stmt, lbl *label) *block {
	switch s := s.(type) {
	case *ast.BlockStmt:
		return b.stmts(cur, s.List)

	case *ast.ExprStmt:
		cur.add(s)

		if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && NoReturn(b.info, b.reg, call) {
			return b.newBlock(s.End())
		}

		return cur

	case *ast.ReturnStmt:
		cur.add(s)
		return b.newBlock(s.End())

	case *ast.DeclStmt:
		if d, ok := s.Decl.(*ast.GenDecl); ok && d.Tok == token.VAR {
			cur.add(s)
		}

		return cur

	case *ast.BranchStmt:
		return b.branch(cur, s)

	case *ast.LabeledStmt:
		l := b.label(s.Label.Name)
		l.target.pos = s.Stmt.Pos()
		cur.jump(l.target)

		return b.stmt(l.target, s.Stmt, l)

	case *ast.IfStmt:
		return b.ifStmt(cur, s)

	case *ast.ForStmt:
		return b.forStmt(cur, s, lbl)

	case *ast.RangeStmt:
		return b.rangeStmt(cur, s, lbl)

	case *ast.SwitchStmt:
		cur.add(s.Init)
		cur.add(s.Tag)

		return b.switchBody(cur, s.Body, lbl, true)

	case *ast.TypeSwitchStmt:
		cur.add(s.Init)
		cur.add(s.Assign)

		return b.switchBody(cur, s.Body, lbl, false)

	case *ast.SelectStmt:
		return b.selectStmt(cur, s, lbl)

	default: // simple statements
		cur.add(s)
		return cur
	}
}

func (b *builder) label(name string) *label {
	if l, ok := b.labels[name]; ok {
		return l
	}

	l := &label{target: b.newBlock(token.NoPos)}
	b.labels[name] = l

	return l
}

func (b *builder) branch(cur *block, s *ast.BranchStmt) *block {
	cur.add(s)

	if s.Label != nil {
		l := b.label(s.Label.Name)

		switch s.Tok {
		case token.BREAK:
			cur.jump(l.brk)

		case token.CONTINUE:
			cur.jump(l.cont)

		case token.GOTO:
			cur.jump(l.target)
		}

		return b.newBlock(s.End())
	}

	for i := len(b.scopes) - 1; i >= 0; i-- {
		j := b.scopes[i]

		var target *block

		switch s.Tok {
		case token.BREAK:
			target = j.brk

		case token.CONTINUE:
			target = j.cont

		case token.FALLTHROUGH:
			target = j.fall
		}

		if target != nil {
			cur.jump(target)
			break
		}
	}

	return b.newBlock(s.End())
}

func (b *builder) push(j jumps, lbl *label) {
	if lbl != nil {
		lbl.brk, lbl.cont = j.brk, j.cont
	}

	b.scopes = append(b.scopes, j)
}

func (b *builder) pop() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *builder) ifStmt(cur *block, s *ast.IfStmt) *block {
	cur.add(s.Init)
	cur.add(s.Cond)

	after := b.newBlock(s.End())

	then := b.newBlock(s.Body.Pos())
	b.stmts(then, s.Body.List).jump(after)

	els := after
	if s.Else != nil {
		els = b.newBlock(s.Else.Pos())
		b.stmt(els, s.Else, nil).jump(after)
	}

	cur.jump(then, els)

	return after
}

func (b *builder) forStmt(cur *block, s *ast.ForStmt, lbl *label) *block {
	cur.add(s.Init)

	after := b.newBlock(s.End())
	body := b.newBlock(s.Body.Lbrace + 1)

	head := body
	if s.Cond != nil {
		head = b.newBlock(s.Cond.Pos())
		head.add(s.Cond)
		head.jump(body, after)
	}

	cur.jump(head)

	next := head
	if s.Post != nil {
		next = b.newBlock(s.Post.Pos())
		next.add(s.Post)
		next.jump(head)
	}

	b.push(jumps{brk: after, cont: next}, lbl)
	b.stmts(body, s.Body.List).jump(next)
	b.pop()

	return after
}

func (b *builder) rangeStmt(cur *block, s *ast.RangeStmt, lbl *label) *block {
	cur.add(s.Key)
	cur.add(s.Value)
	cur.add(s.X)

	after := b.newBlock(s.End())
	body := b.newBlock(s.Body.Lbrace + 1)

	head := b.newBlock(token.NoPos)
	head.jump(body, after)
	cur.jump(head)

	b.push(jumps{brk: after, cont: head}, lbl)
	b.stmts(body, s.Body.List).jump(head)
	b.pop()

	return after
}

// switchBody tests the case expressions in order, falling back to the default clause.
func (b *builder) switchBody(cur *block, body *ast.BlockStmt, lbl *label, exprs bool) *block {
	var clauses []*ast.CaseClause

	for _, s := range body.List {
		if c, ok := s.(*ast.CaseClause); ok {
			clauses = append(clauses, c)
		}
	}

	after := b.newBlock(body.End())

	bodies := make([]*block, len(clauses))
	for i, c := range clauses {
		bodies[i] = b.newBlock(c.Colon + 1)
	}

	test, dflt := cur, after

	for i, c := range clauses {
		if c.List == nil {
			dflt = bodies[i]
			continue
		}

		guard := b.newBlock(c.Case)
		if exprs {
			guard.addExprs(c.List)
		}

		test.jump(guard)
		guard.jump(bodies[i])
		test = guard
	}

	test.jump(dflt)

	b.push(jumps{brk: after}, lbl)

	for i, c := range clauses {
		var fall *block
		if exprs && i+1 < len(clauses) {
			fall = bodies[i+1]
		}

		b.scopes = append(b.scopes, jumps{fall: fall})
		b.stmts(bodies[i], c.Body).jump(after)
		b.pop()
	}

	b.pop()

	return after
}

// selectStmt evaluates all channel operands before one of the clauses runs.
func (b *builder) selectStmt(cur *block, s *ast.SelectStmt, lbl *label) *block {
	var clauses []*ast.CommClause

	for _, st := range s.Body.List {
		if c, ok := st.(*ast.CommClause); ok {
			clauses = append(clauses, c)
		}
	}

	after := b.newBlock(s.End())

	ops := cur
	for _, c := range clauses {
		if c.Comm == nil {
			continue
		}

		op := b.newBlock(c.Comm.Pos())
		op.add(c.Comm)
		ops.jump(op)
		ops = op
	}

	b.push(jumps{brk: after}, lbl)

	for _, c := range clauses {
		body := b.newBlock(c.Colon + 1)
		ops.jump(body)
		b.stmts(body, c.Body).jump(after)
	}

	b.pop()

	return after
}
