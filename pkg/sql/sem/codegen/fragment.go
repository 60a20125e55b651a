// Copyright 2026 The Quarry Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package codegen supports the compile path of expression evaluation:
// each expression node emits a Fragment of Go source, and a compiling
// backend splices the fragments into a single generated evaluation
// routine. Identifier allocation, import tracking, and input bindings
// live on a per-routine Context so that sibling fragments never
// collide.
package codegen

// Fragment is the compile-path product of an expression node: a block
// of statements plus the identifiers the statements leave the node's
// result in. A fragment is immutable once returned; the caller splices
// Code verbatim ahead of any code that reads Val or IsNull.
type Fragment struct {
	// Code holds zero or more Go statements computing the node's value.
	Code string
	// Val is the expression holding the node's value after Code runs.
	// Usually an identifier; literal nodes may use a Go literal.
	Val string
	// IsNull is the expression reporting whether the node's value is
	// absent. Nodes that can never be null use the literal "false";
	// parents use that to drop the null guard entirely.
	IsNull string
}
