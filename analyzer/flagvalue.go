// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyzer

import (
	"strconv"
	"strings"
)

// boolFlag is a set of boolean options, like the enabled rules.
type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// boolValue is a [flag.Value] for one option of a set.
type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

func newBoolValue[F any, B boolFlag[F]](flags B, value F) boolValue[F, B] {
	return boolValue[F, B]{flags: flags, value: value}
}

// Set implements [flag.Value].
func (f boolValue[_, _]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, _]) String() string { return strconv.FormatBool(f.enabled()) }

// Get implements [flag.Getter].
func (f boolValue[_, _]) Get() any { return f.enabled() }

// IsBoolFlag allows the flag to be given without value.
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// enabled is false for the zero value, which [flag.PrintDefaults] uses.
func (f boolValue[_, B]) enabled() bool {
	var null B

	return f.flags != null && f.flags.Enabled(f.value)
}

// parseBool accepts the values of [strconv.ParseBool] and "on", "off", "yes", "no".
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil

	case "off", "no":
		return false, nil

	default:
		return strconv.ParseBool(s)
	}
}
