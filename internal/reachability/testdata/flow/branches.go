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

package flow

import (
	"errors"
	"log"
	"os"
	"testing"
)

func open()  {}
func check() {}

func sequence() {
	check() // want "unreachable"
	open()
	check() // want "reachable"
}

func returnEarly(fail bool) error {
	open()
	if fail {
		return errors.New("failed")
		check() // want "unreachable"
	}
	check() // want "reachable"

	return nil
}

func elseBranch(ok bool) {
	if ok {
		open()
	} else {
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func fatal(name string) {
	open()
	if _, err := os.Stat(name); err != nil {
		log.Fatal(err)
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func panics() {
	open()
	panic("closed")
	check() // want "unreachable"
}

func testFatal(t *testing.T) {
	open()
	t.Fatal("closed")
	check() // want "unreachable"
}
