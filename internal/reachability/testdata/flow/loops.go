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

func loopBack(n int) {
	for range n {
		check() // want "reachable"
		open()
	}
}

func loopCond(n int) {
	for i := 0; i < n; i++ {
		check() // want "reachable"
		open()
	}
	check() // want "reachable"
}

func endless() {
	open()
	for {
	}
	check() // want "unreachable"
}

func retry(ch <-chan error) {
	for {
		open()
		if err := <-ch; err == nil {
			break
		}
		check() // want "reachable"
	}
	check() // want "reachable"
}

func labeledBreak(rows [][]int) {
outer:
	for _, row := range rows {
		for range row {
			open()
			break outer
		}
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func labeledContinue(rows [][]int) {
outer:
	for _, row := range rows {
		check() // want "reachable"
		for _, v := range row {
			open()
			if v < 0 {
				continue outer
			}
		}
	}
}

func gotoSkip() {
	open()
	goto done
	check() // want "unreachable"
done:
	check() // want "reachable"
}

func gotoBack(n int) {
again:
	check() // want "reachable"
	open()
	if n--; n > 0 {
		goto again
	}
}
