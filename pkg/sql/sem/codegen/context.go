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

package codegen

import (
	"fmt"
	"sort"
)

// Binding is the parameter pair through which a generated routine
// receives one input column: a value parameter and an is-null
// parameter. Binding the same ordinal twice returns the same pair, so
// an input referenced by several sub-expressions is passed once.
type Binding struct {
	// Idx is the input column ordinal the binding carries.
	Idx int
	// Val and IsNull are the parameter names ("a2", "a2Null").
	Val    string
	IsNull string
	// GoType is the Go type of the value parameter.
	GoType string
}

// Context accumulates per-routine codegen state: fresh identifiers,
// required imports, and input bindings. One Context builds exactly one
// generated routine; it is not safe for concurrent use.
type Context struct {
	varID    int
	identIDs map[string]int
	imports  map[string]struct{}
	bindings map[int]Binding
}

// NewContext returns an empty Context for one generated routine.
func NewContext() *Context {
	return &Context{
		identIDs: make(map[string]int),
		imports:  make(map[string]struct{}),
		bindings: make(map[int]Binding),
	}
}

// NewVar allocates a fresh value/is-null identifier pair for a node's
// result. The names are never reused within the Context.
func (ctx *Context) NewVar() (val, isNull string) {
	id := ctx.varID
	ctx.varID++
	return fmt.Sprintf("v%d", id), fmt.Sprintf("n%d", id)
}

// Ident allocates a fresh scratch identifier with the given prefix.
func (ctx *Context) Ident(prefix string) string {
	id := ctx.identIDs[prefix]
	ctx.identIDs[prefix]++
	return fmt.Sprintf("%s%d", prefix, id)
}

// Import records an import path the emitted code requires.
func (ctx *Context) Import(path string) {
	ctx.imports[path] = struct{}{}
}

// Imports returns the recorded import paths, sorted.
func (ctx *Context) Imports() []string {
	paths := make([]string, 0, len(ctx.imports))
	for p := range ctx.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Bind returns the parameter binding for input column idx, allocating
// it on first use. The parameter names are derived from the ordinal,
// so they are stable across calls and across Contexts.
func (ctx *Context) Bind(idx int, goType string) Binding {
	if b, ok := ctx.bindings[idx]; ok {
		return b
	}
	b := Binding{
		Idx:    idx,
		Val:    fmt.Sprintf("a%d", idx),
		IsNull: fmt.Sprintf("a%dNull", idx),
		GoType: goType,
	}
	ctx.bindings[idx] = b
	return b
}

// Params returns the input bindings ordered by column ordinal. The
// order fixes the generated routine's parameter list.
func (ctx *Context) Params() []Binding {
	params := make([]Binding, 0, len(ctx.bindings))
	for _, b := range ctx.bindings {
		params = append(params, b)
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Idx < params[j].Idx })
	return params
}
