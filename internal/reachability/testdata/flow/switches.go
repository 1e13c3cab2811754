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

func switchCases(mode int) {
	switch mode {
	case 0:
		open()
		fallthrough
	case 1:
		check() // want "reachable"
	case 2:
		check() // want "unreachable"
	default:
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func switchDefault(mode int) {
	switch {
	case mode > 0:
		check() // want "unreachable"
	default:
		open()
	}
	check() // want "reachable"
}

func typeSwitch(v any) {
	switch v.(type) {
	case error:
		open()
	case interface{ Close() error }:
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func selects(a, b chan int) {
	select {
	case <-a:
		open()
	case v := <-b:
		_ = v
		check() // want "unreachable"
	}
	check() // want "reachable"
}

func selectBreak(a chan int) {
	for {
		select {
		case <-a:
			open()
			break
		}
		check() // want "reachable"
	}
}

func blockForever() {
	open()
	select {}
	check() // want "unreachable"
}
