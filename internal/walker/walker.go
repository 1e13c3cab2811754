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

// Package walker enumerates value flow of variables: assignments, transitively resolved values,
// close sites and usages.
//
// Walkers are pooled. A borrowed walker is single-threaded; it must be released on every
// exit path, and slices returned by it must not be retained after [Release].
package walker

import (
	"context"
	"go/types"
	"sync"
)

// checkInterval is the number of visited nodes between cancellation checks.
const checkInterval = 256

// base holds state common to all walkers.
type base struct {
	ctx      context.Context
	info     *types.Info
	steps    int
	canceled bool
}

func (b *base) init(ctx context.Context, info *types.Info) {
	b.ctx, b.info, b.steps, b.canceled = ctx, info, 0, false
}

// step counts a visited node and reports whether the walk should continue.
func (b *base) step() bool {
	b.steps++
	if b.steps%checkInterval == 0 && b.ctx != nil && b.ctx.Err() != nil {
		b.canceled = true
	}

	return !b.canceled
}

// Canceled reports whether the last walk was aborted.
func (b *base) Canceled() bool { return b.canceled }

// pool is a typed [sync.Pool].
type pool[T any] struct{ p sync.Pool }

func (p *pool[T]) get() *T {
	if w, ok := p.p.Get().(*T); ok {
		return w
	}

	return new(T)
}

func (p *pool[T]) put(w *T) { p.p.Put(w) }
