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

package result_test

import (
	"testing"

	. "fillmore-labs.com/closeguard/internal/result"
)

func TestCombinators(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		a, b    Result
		or, and Result
	}{
		{"yes or no", Yes, No, Yes, No},
		{"assume yes or unknown", AssumeYes, Unknown, AssumeYes, Unknown},
		{"unknown or assume no", Unknown, AssumeNo, Unknown, AssumeNo},
		{"yes or assume yes", Yes, AssumeYes, Yes, AssumeYes},
		{"no or assume no", No, AssumeNo, AssumeNo, No},
		{"unknown or unknown", Unknown, Unknown, Unknown, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Or(tt.a, tt.b); got != tt.or {
				t.Errorf("Or(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.or)
			}

			if got := Or(tt.b, tt.a); got != tt.or {
				t.Errorf("Or(%s, %s) = %s, want %s", tt.b, tt.a, got, tt.or)
			}

			if got := And(tt.a, tt.b); got != tt.and {
				t.Errorf("And(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.and)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		r                  Result
		positive, definite bool
		weak, not          Result
	}{
		{Yes, true, true, AssumeYes, No},
		{AssumeYes, true, false, AssumeYes, AssumeNo},
		{No, false, true, AssumeNo, Yes},
		{AssumeNo, false, false, AssumeNo, AssumeYes},
		{Unknown, false, false, Unknown, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Positive(); got != tt.positive {
				t.Errorf("Positive() = %t, want %t", got, tt.positive)
			}

			if got := tt.r.Negative(); got == tt.positive {
				t.Errorf("Negative() = %t, want %t", got, !tt.positive)
			}

			if got := tt.r.Definite(); got != tt.definite {
				t.Errorf("Definite() = %t, want %t", got, tt.definite)
			}

			if got := tt.r.Weaken(); got != tt.weak {
				t.Errorf("Weaken() = %s, want %s", got, tt.weak)
			}

			if got := tt.r.Not(); got != tt.not {
				t.Errorf("Not() = %s, want %s", got, tt.not)
			}
		})
	}
}

func TestAny(t *testing.T) {
	t.Parallel()

	if got := Any(); got != No {
		t.Errorf("Any() = %s, want %s", got, No)
	}

	if got := Any(No, Unknown, AssumeYes); got != AssumeYes {
		t.Errorf("Any(...) = %s, want %s", got, AssumeYes)
	}

	if got := Result(17).String(); got != "Result(17)" {
		t.Errorf("String() = %q, want %q", got, "Result(17)")
	}
}
