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
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/quarrydb/quarry/pkg/sql/sem/codegen"
	"github.com/quarrydb/quarry/pkg/sql/types"
)

// A Datum is a runtime value. Datums are themselves constant
// expressions: Eval returns the receiver and Codegen emits a Go
// literal, which lets literals appear directly as expression children.
type Datum interface {
	TypedExpr

	// datum restricts implementations to this package.
	datum()
}

// DNull is the NULL Datum.
var DNull Datum = dNull{}

// DBytes is the byte-sequence Datum. The backing string is an
// immutable container here, not text.
type DBytes string

// NewDBytes returns a DBytes Datum holding b.
func NewDBytes(b []byte) Datum { return DBytes(b) }

// MustBeDBytes returns d as a DBytes, or an assertion failure if d has
// another dynamic type.
func MustBeDBytes(d Datum) (DBytes, error) {
	v, ok := d.(DBytes)
	if !ok {
		return "", errors.AssertionFailedf("expected bytes, found %T", d)
	}
	return v, nil
}

func (DBytes) datum() {}

// ResolvedType implements the TypedExpr interface.
func (DBytes) ResolvedType() *types.T { return types.Bytes }

// Nullable implements the TypedExpr interface.
func (DBytes) Nullable() bool { return false }

// Foldable implements the TypedExpr interface.
func (DBytes) Foldable() bool { return true }

// Children implements the TypedExpr interface.
func (DBytes) Children() []TypedExpr { return nil }

// Eval implements the TypedExpr interface.
func (d DBytes) Eval(_ *EvalContext, _ Row) (Datum, error) { return d, nil }

// Codegen implements the TypedExpr interface.
func (d DBytes) Codegen(_ *codegen.Context) (codegen.Fragment, error) {
	return codegen.Fragment{Val: fmt.Sprintf("[]byte(%q)", string(d)), IsNull: "false"}, nil
}

// String implements the fmt.Stringer interface.
func (d DBytes) String() string { return strconv.Quote(string(d)) }

// DString is the text Datum.
type DString string

// NewDString returns a DString Datum holding s.
func NewDString(s string) Datum { return DString(s) }

// MustBeDString returns d as a DString, or an assertion failure if d
// has another dynamic type.
func MustBeDString(d Datum) (DString, error) {
	v, ok := d.(DString)
	if !ok {
		return "", errors.AssertionFailedf("expected string, found %T", d)
	}
	return v, nil
}

func (DString) datum() {}

// ResolvedType implements the TypedExpr interface.
func (DString) ResolvedType() *types.T { return types.String }

// Nullable implements the TypedExpr interface.
func (DString) Nullable() bool { return false }

// Foldable implements the TypedExpr interface.
func (DString) Foldable() bool { return true }

// Children implements the TypedExpr interface.
func (DString) Children() []TypedExpr { return nil }

// Eval implements the TypedExpr interface.
func (d DString) Eval(_ *EvalContext, _ Row) (Datum, error) { return d, nil }

// Codegen implements the TypedExpr interface.
func (d DString) Codegen(_ *codegen.Context) (codegen.Fragment, error) {
	return codegen.Fragment{Val: strconv.Quote(string(d)), IsNull: "false"}, nil
}

// String implements the fmt.Stringer interface.
func (d DString) String() string { return strconv.Quote(string(d)) }

// DInt is the 64-bit integer Datum. A 32-bit input is a DInt whose
// expression declares types.Int4; the declared type, not the Go
// representation, selects its packed encoding.
type DInt int64

// NewDInt returns a DInt Datum holding v.
func NewDInt(v int64) Datum { return DInt(v) }

// MustBeDInt returns d as a DInt, or an assertion failure if d has
// another dynamic type.
func MustBeDInt(d Datum) (DInt, error) {
	v, ok := d.(DInt)
	if !ok {
		return 0, errors.AssertionFailedf("expected int, found %T", d)
	}
	return v, nil
}

func (DInt) datum() {}

// ResolvedType implements the TypedExpr interface.
func (DInt) ResolvedType() *types.T { return types.Int }

// Nullable implements the TypedExpr interface.
func (DInt) Nullable() bool { return false }

// Foldable implements the TypedExpr interface.
func (DInt) Foldable() bool { return true }

// Children implements the TypedExpr interface.
func (DInt) Children() []TypedExpr { return nil }

// Eval implements the TypedExpr interface.
func (d DInt) Eval(_ *EvalContext, _ Row) (Datum, error) { return d, nil }

// Codegen implements the TypedExpr interface.
func (d DInt) Codegen(_ *codegen.Context) (codegen.Fragment, error) {
	return codegen.Fragment{Val: fmt.Sprintf("int64(%d)", int64(d)), IsNull: "false"}, nil
}

// String implements the fmt.Stringer interface.
func (d DInt) String() string { return strconv.FormatInt(int64(d), 10) }

// dNull is the singleton behind DNull, the untyped NULL.
type dNull struct{}

func (dNull) datum() {}

// ResolvedType implements the TypedExpr interface.
func (dNull) ResolvedType() *types.T { return types.Unknown }

// Nullable implements the TypedExpr interface.
func (dNull) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (dNull) Foldable() bool { return true }

// Children implements the TypedExpr interface.
func (dNull) Children() []TypedExpr { return nil }

// Eval implements the TypedExpr interface.
func (d dNull) Eval(_ *EvalContext, _ Row) (Datum, error) { return d, nil }

// Codegen implements the TypedExpr interface. The literal "true"
// is-null expression makes parents drop the guarded code path at
// generation time, so Val is never read by generated code.
func (dNull) Codegen(_ *codegen.Context) (codegen.Fragment, error) {
	return codegen.Fragment{Val: "nil", IsNull: "true"}, nil
}

// String implements the fmt.Stringer interface.
func (dNull) String() string { return "NULL" }
