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

// Package tree implements the scalar expression nodes of the hash
// expression layer and their dual evaluation contract: every node can
// be interpreted directly against a row of datums, or asked to emit a
// source fragment that a compiling backend splices into a generated
// evaluation routine. Both paths must agree bit-for-bit for every
// input, including their null behavior.
package tree

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/quarrydb/quarry/pkg/sql/sem/codegen"
	"github.com/quarrydb/quarry/pkg/sql/types"
)

// TypedExpr is a type-resolved expression node. Nodes are immutable
// after construction: the result type, nullability, and child list are
// fixed before the first evaluation and never change. A node therefore
// may be shared read-only across goroutines evaluating different rows.
type TypedExpr interface {
	fmt.Stringer

	// ResolvedType returns the node's result type.
	ResolvedType() *types.T

	// Nullable reports whether evaluation can yield DNull.
	Nullable() bool

	// Foldable reports whether the node's value is computable from
	// constant children alone, independent of any row.
	Foldable() bool

	// Children returns the node's child expressions in declared order.
	Children() []TypedExpr

	// Eval is the interpreted path: it evaluates the node against row,
	// evaluating children bottom-up as needed.
	Eval(ctx *EvalContext, row Row) (Datum, error)

	// Codegen is the compile path: it emits a source fragment whose
	// semantics match Eval exactly, with child fragments requested
	// through the same Context.
	Codegen(ctx *codegen.Context) (codegen.Fragment, error)
}

// Row is the per-evaluation input vector addressed by IndexedVar.
type Row []Datum

// EvalContext carries the per-goroutine state of interpreted
// evaluation. It owns scratch buffers that amortize allocation across
// rows, so a single EvalContext must not be used from two goroutines
// at once; engine callers allocate one per evaluation goroutine. A nil
// EvalContext is legal and simply forgoes scratch reuse.
type EvalContext struct {
	scratch []byte
}

// takeScratch detaches the scratch buffer so nested evaluations cannot
// clobber it; the caller returns it via putScratch when done.
func (ctx *EvalContext) takeScratch() []byte {
	if ctx == nil {
		return nil
	}
	b := ctx.scratch[:0]
	ctx.scratch = nil
	return b
}

func (ctx *EvalContext) putScratch(b []byte) {
	if ctx != nil {
		ctx.scratch = b
	}
}

// IndexedVar is a leaf expression referencing one positional input
// column; it evaluates to row[Idx]. On the compile path it binds an
// input parameter pair in the generated routine's signature instead of
// emitting code.
type IndexedVar struct {
	Idx int
	Typ *types.T
}

// NewIndexedVar returns an IndexedVar referencing column idx of type
// typ.
func NewIndexedVar(idx int, typ *types.T) *IndexedVar {
	return &IndexedVar{Idx: idx, Typ: typ}
}

var _ TypedExpr = &IndexedVar{}

// ResolvedType implements the TypedExpr interface.
func (v *IndexedVar) ResolvedType() *types.T { return v.Typ }

// Nullable implements the TypedExpr interface.
func (v *IndexedVar) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (v *IndexedVar) Foldable() bool { return false }

// Children implements the TypedExpr interface.
func (v *IndexedVar) Children() []TypedExpr { return nil }

// Eval implements the TypedExpr interface.
func (v *IndexedVar) Eval(_ *EvalContext, row Row) (Datum, error) {
	if v.Idx < 0 || v.Idx >= len(row) {
		return nil, errors.AssertionFailedf(
			"variable @%d out of range in %d-column row", v.Idx+1, len(row))
	}
	return row[v.Idx], nil
}

// Codegen implements the TypedExpr interface.
func (v *IndexedVar) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	goType, err := codegen.GoType(v.Typ)
	if err != nil {
		return codegen.Fragment{}, err
	}
	b := ctx.Bind(v.Idx, goType)
	return codegen.Fragment{Val: b.Val, IsNull: b.IsNull}, nil
}

// String implements the fmt.Stringer interface.
func (v *IndexedVar) String() string { return fmt.Sprintf("@%d", v.Idx+1) }
