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

// Package run executes the closeguard analysis of a package.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/closeguard/internal/astutil"
	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/disposable"
	"fillmore-labs.com/closeguard/internal/evaluate"
	"fillmore-labs.com/closeguard/internal/registry"
	"fillmore-labs.com/closeguard/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// ErrInvalidFactory is returned when a configured factory function can't be parsed.
var ErrInvalidFactory = errors.New("invalid factory")

// Run executes the closeguard analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("closeguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	reg, err := r.registry()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)

		defer cancel()
	}

	ctx, task := trace.NewTask(ctx, "CloseGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	o := disposable.New(ctx, p, in, reg)

	exportFacts(ctx, p, o)

	rep := report.New(p, r.Rules, r.MinSeverity)
	e := evaluate.New(p.TypesInfo, o, rep)

	includeGenerated := r.Behavior.Enabled(config.IncludeGenerated)

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !includeGenerated {
			continue
		}

		// Skip files with nolint comment
		if astutil.DocHasNoLint(file.Doc) {
			continue
		}

		rep.SetFile(currentFile)

		region := trace.StartRegion(ctx, "Evaluate")

		for d := range f.Children() {
			if ctx.Err() != nil {
				break
			}

			if suppressed(d.Node()) {
				continue
			}

			for c := range d.Preorder(evaluate.NodeTypes()...) {
				e.Node(c)
			}
		}

		region.End()
	}

	return nil, nil
}

// registry returns the symbol registry, extended by the configured factories.
func (r *Options) registry() (*registry.Registry, error) {
	if len(r.Factories) == 0 {
		return registry.Default(), nil
	}

	reg, err := registry.New(r.Factories...)
	if err != nil {
		return nil, fmt.Errorf("closeguard: %w: %w", ErrInvalidFactory, err)
	}

	return reg, nil
}

// suppressed reports whether a top level declaration has a nolint directive in its documentation.
func suppressed(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.FuncDecl:
		return astutil.DocHasNoLint(n.Doc)

	case *ast.GenDecl:
		if astutil.DocHasNoLint(n.Doc) {
			return true
		}

		if len(n.Specs) == 1 {
			if ts, ok := n.Specs[0].(*ast.TypeSpec); ok {
				return astutil.DocHasNoLint(ts.Doc)
			}
		}
	}

	return false
}

// exportFacts summarizes the resource behavior of the package functions for importers.
func exportFacts(ctx context.Context, p *analysis.Pass, o *disposable.Oracle) {
	defer trace.StartRegion(ctx, "ExportFacts").End()

	for fn := range o.Declarations().Funcs() {
		if ctx.Err() != nil {
			return
		}

		if fact := o.Summary(fn); fact != nil && fact.Relevant() {
			p.ExportObjectFact(fn, fact)
		}
	}
}
