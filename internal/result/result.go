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

// Package result defines the verdict lattice shared by all resource queries.
package result

// Result is the verdict of a resource query.
//
// Yes and No are backed by direct evidence. AssumeYes and AssumeNo are heuristic
// verdicts, used when the analysis had to cross a boundary it can't see through.
// Unknown never creates an obligation.
type Result uint8

//go:generate go tool stringer -type Result
const (
	// Unknown means the question can't be decided.
	Unknown Result = iota

	// Yes is proven by direct evidence.
	Yes

	// AssumeYes is likely, but not proven.
	AssumeYes

	// No is disproven by direct evidence.
	No

	// AssumeNo is unlikely, but not disproven.
	AssumeNo
)

// IsEither reports whether r equals a or b.
func (r Result) IsEither(a, b Result) bool {
	return r == a || r == b
}

// Positive reports whether r is Yes or AssumeYes.
func (r Result) Positive() bool {
	return r.IsEither(Yes, AssumeYes)
}

// Negative reports whether r should not lead to a diagnostic.
func (r Result) Negative() bool {
	return !r.Positive()
}

// Definite reports whether r is backed by direct evidence.
func (r Result) Definite() bool {
	return r.IsEither(Yes, No)
}

// Weaken degrades a definite verdict into an assumption.
func (r Result) Weaken() Result {
	switch r {
	case Yes:
		return AssumeYes

	case No:
		return AssumeNo

	default:
		return r
	}
}

// Not swaps positive and negative verdicts.
func (r Result) Not() Result {
	switch r {
	case Yes:
		return No

	case AssumeYes:
		return AssumeNo

	case No:
		return Yes

	case AssumeNo:
		return AssumeYes

	default:
		return Unknown
	}
}

// strength orders the verdicts from strongest negative to strongest positive evidence.
func (r Result) strength() int {
	switch r {
	case No:
		return 0

	case AssumeNo:
		return 1

	case AssumeYes:
		return 3

	case Yes:
		return 4

	default:
		return 2
	}
}

// Or combines alternatives: the strongest positive evidence wins.
func Or(a, b Result) Result {
	if a.strength() >= b.strength() {
		return a
	}

	return b
}

// And combines requirements: the weakest evidence wins.
func And(a, b Result) Result {
	if a.strength() <= b.strength() {
		return a
	}

	return b
}

// Any folds results with [Or]. An empty list is No.
func Any(results ...Result) Result {
	acc := No
	for _, r := range results {
		acc = Or(acc, r)
	}

	return acc
}
