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

package tree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/quarrydb/quarry/pkg/sql/rowenc"
	"github.com/quarrydb/quarry/pkg/sql/sem/codegen"
	"github.com/quarrydb/quarry/pkg/sql/types"
)

// DefaultHashSeed seeds RowHash nodes constructed without an explicit
// seed choice.
const DefaultHashSeed uint32 = 42

// rowencPkg is the import path generated RowHash code calls back into.
const rowencPkg = "github.com/quarrydb/quarry/pkg/sql/rowenc"

// RowHash computes a seeded 32-bit hash over an ordered list of typed
// child values: the children are packed into a rowenc buffer in
// declared order and the buffer is hashed. Downstream consumers route
// data by the result (e.g. for partitioning), so equal inputs under an
// equal seed must hash identically across the interpreted and
// generated paths and across process runs.
//
// RowHash deliberately sits outside the null-safe dispatch contract:
// it is never null. A null child is packed as the NULL encoding, just
// another value to hash, not a reason to short-circuit.
type RowHash struct {
	children []TypedExpr
	seed     uint32
	// plan holds one packing step per child, fixed at construction by
	// the child's declared type. Read-only after construction, so the
	// node stays shareable across evaluation goroutines.
	plan []rowHashEncoder
}

// NewRowHash returns a RowHash node over the given children with the
// given seed. The seed is configuration, bound for the node's
// lifetime, never re-evaluated per row. Constructing a RowHash with
// zero children is a configuration error that aborts analysis.
func NewRowHash(seed uint32, children ...TypedExpr) (*RowHash, error) {
	if len(children) == 0 {
		return nil, errors.New("row hash requires at least one input")
	}
	plan := make([]rowHashEncoder, len(children))
	for i, child := range children {
		enc, err := rowHashEncoderFor(child.ResolvedType())
		if err != nil {
			return nil, err
		}
		plan[i] = enc
	}
	return &RowHash{children: children, seed: seed, plan: plan}, nil
}

var _ TypedExpr = &RowHash{}

// rowHashEncoder packs one child's current value onto a rowenc buffer.
type rowHashEncoder func(b []byte, d Datum) ([]byte, error)

// rowHashEncoderFor selects the packing step for a child's declared
// type. The declared type, not the datum's Go representation, decides
// the encoding; in particular an untyped-NULL child packs as NULL on
// every row.
func rowHashEncoderFor(t *types.T) (rowHashEncoder, error) {
	switch t.Family() {
	case types.UnknownFamily:
		return func(b []byte, _ Datum) ([]byte, error) {
			return rowenc.EncodeNull(b), nil
		}, nil
	case types.BytesFamily:
		return func(b []byte, d Datum) ([]byte, error) {
			if d == DNull {
				return rowenc.EncodeNull(b), nil
			}
			v, err := MustBeDBytes(d)
			if err != nil {
				return nil, err
			}
			return rowenc.EncodeBytes(b, []byte(v)), nil
		}, nil
	case types.StringFamily:
		return func(b []byte, d Datum) ([]byte, error) {
			if d == DNull {
				return rowenc.EncodeNull(b), nil
			}
			v, err := MustBeDString(d)
			if err != nil {
				return nil, err
			}
			return rowenc.EncodeString(b, string(v)), nil
		}, nil
	case types.IntFamily:
		if t.Width() == 32 {
			return func(b []byte, d Datum) ([]byte, error) {
				if d == DNull {
					return rowenc.EncodeNull(b), nil
				}
				v, err := MustBeDInt(d)
				if err != nil {
					return nil, err
				}
				return rowenc.EncodeInt32(b, int32(v)), nil
			}, nil
		}
		return func(b []byte, d Datum) ([]byte, error) {
			if d == DNull {
				return rowenc.EncodeNull(b), nil
			}
			v, err := MustBeDInt(d)
			if err != nil {
				return nil, err
			}
			return rowenc.EncodeInt64(b, int64(v)), nil
		}, nil
	default:
		return nil, errors.AssertionFailedf("cannot hash type %s", t)
	}
}

// Seed returns the node's configured seed.
func (e *RowHash) Seed() uint32 { return e.seed }

// ResolvedType implements the TypedExpr interface.
func (*RowHash) ResolvedType() *types.T { return types.Int4 }

// Nullable implements the TypedExpr interface.
func (*RowHash) Nullable() bool { return false }

// Foldable implements the TypedExpr interface.
func (e *RowHash) Foldable() bool {
	for _, child := range e.children {
		if !child.Foldable() {
			return false
		}
	}
	return true
}

// Children implements the TypedExpr interface.
func (e *RowHash) Children() []TypedExpr { return e.children }

// Eval implements the TypedExpr interface. The packed buffer lives in
// the EvalContext's scratch space, detached for the duration of the
// call so that a nested RowHash child packs into its own buffer.
func (e *RowHash) Eval(ctx *EvalContext, row Row) (Datum, error) {
	buf := ctx.takeScratch()
	for i, child := range e.children {
		d, err := child.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if buf, err = e.plan[i](buf, d); err != nil {
			return nil, err
		}
	}
	h := rowenc.Hash(buf, e.seed)
	ctx.putScratch(buf)
	return NewDInt(int64(int32(h))), nil
}

// Codegen implements the TypedExpr interface. The emitted code packs
// the children inline through the same rowenc entry points the
// interpreted path uses, so the two paths share one layout contract.
func (e *RowHash) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	ctx.Import(rowencPkg)
	var sb strings.Builder
	buf := ctx.Ident("h")
	fmt.Fprintf(&sb, "var %s []byte\n", buf)
	for _, child := range e.children {
		typ := child.ResolvedType()
		if typ.Family() == types.UnknownFamily {
			// Untyped NULL packs as NULL without evaluating the child.
			fmt.Fprintf(&sb, "%s = rowenc.EncodeNull(%s)\n", buf, buf)
			continue
		}
		frag, err := child.Codegen(ctx)
		if err != nil {
			return codegen.Fragment{}, err
		}
		if frag.Code != "" {
			sb.WriteString(frag.Code)
			sb.WriteString("\n")
		}
		encode, err := rowHashEncodeCall(typ, buf, frag.Val)
		if err != nil {
			return codegen.Fragment{}, err
		}
		switch frag.IsNull {
		case "false":
			fmt.Fprintf(&sb, "%s = %s\n", buf, encode)
		case "true":
			fmt.Fprintf(&sb, "%s = rowenc.EncodeNull(%s)\n", buf, buf)
		default:
			fmt.Fprintf(&sb, "if %s {\n%s = rowenc.EncodeNull(%s)\n} else {\n%s = %s\n}\n",
				frag.IsNull, buf, buf, buf, encode)
		}
	}
	resVal, _ := ctx.NewVar()
	fmt.Fprintf(&sb, "%s := int64(int32(rowenc.Hash(%s, %d)))", resVal, buf, e.seed)
	return codegen.Fragment{Code: sb.String(), Val: resVal, IsNull: "false"}, nil
}

// rowHashEncodeCall renders the packing call for one non-null child
// value expression.
func rowHashEncodeCall(t *types.T, buf, val string) (string, error) {
	switch t.Family() {
	case types.BytesFamily:
		return fmt.Sprintf("rowenc.EncodeBytes(%s, %s)", buf, val), nil
	case types.StringFamily:
		return fmt.Sprintf("rowenc.EncodeString(%s, %s)", buf, val), nil
	case types.IntFamily:
		if t.Width() == 32 {
			return fmt.Sprintf("rowenc.EncodeInt32(%s, int32(%s))", buf, val), nil
		}
		return fmt.Sprintf("rowenc.EncodeInt64(%s, %s)", buf, val), nil
	default:
		return "", errors.AssertionFailedf("cannot hash type %s", t)
	}
}

// String implements the fmt.Stringer interface.
func (e *RowHash) String() string {
	var sb strings.Builder
	sb.WriteString("hash(")
	for i, child := range e.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(child.String())
	}
	sb.WriteString(")")
	return sb.String()
}
