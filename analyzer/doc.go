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

// Package analyzer implements the closeguard static analysis pass.
//
// # Overview
//
// CloseGuard tracks ownership of [io.Closer] resources: who creates a resource,
// who holds it and who is responsible for closing it.
//
// # Example
//
//	func size(name string) (int64, error) {
//	    f, err := os.Open(name) // Close created resource (IDISP001)
//	    if err != nil {
//	        return 0, err
//	    }
//
//	    fi, err := f.Stat()
//	    if err != nil {
//	        return 0, err
//	    }
//
//	    return fi.Size(), nil
//	}
//
// # Rules
//
//   - IDISP001: Close created resource
//   - IDISP002: Close member
//   - IDISP003: Close previous resource before re-assigning
//   - IDISP004: Don't ignore created resource
//   - IDISP005: Return type should indicate io.Closer
//   - IDISP006: Implement io.Closer
//   - IDISP007: Don't close injected resource
//   - IDISP008: Don't assign member with injected and created resources
//   - IDISP009: Close method should implement io.Closer
//   - IDISP010: Call Close of embedded resource
//   - IDISP011: Don't return closed resource
//   - IDISP012: Accessor method should not return created resource
//   - IDISP014: Use a single instance of http.Client
//   - IDISP016: Don't use closed resource
//
// Each rule can be disabled with a flag like -idisp005=false, or on a single line
// with a //nolint:idisp005 comment.
package analyzer
