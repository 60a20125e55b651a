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
	"crypto"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash/crc32"

	"github.com/quarrydb/quarry/pkg/sql/sem/codegen"
	"github.com/quarrydb/quarry/pkg/sql/types"
)

// The digest nodes wrap external digest/checksum primitives. They are
// pure, total over all byte sequences including the empty one, and
// follow the null-safe dispatch contract: a null input makes the node
// null without the primitive running.

// MD5 computes the MD5 digest of a byte-sequence input, as lowercase
// hexadecimal text.
type MD5 struct {
	Input TypedExpr
}

// NewMD5 returns an MD5 node over input.
func NewMD5(input TypedExpr) *MD5 { return &MD5{Input: input} }

var _ TypedExpr = &MD5{}

// ResolvedType implements the TypedExpr interface.
func (*MD5) ResolvedType() *types.T { return types.String }

// Nullable implements the TypedExpr interface.
func (*MD5) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (e *MD5) Foldable() bool { return e.Input.Foldable() }

// Children implements the TypedExpr interface.
func (e *MD5) Children() []TypedExpr { return []TypedExpr{e.Input} }

// Eval implements the TypedExpr interface.
func (e *MD5) Eval(ctx *EvalContext, row Row) (Datum, error) {
	return evalNullSafe(ctx, row, e.Children(), func(vals []Datum) (Datum, error) {
		data, err := MustBeDBytes(vals[0])
		if err != nil {
			return nil, err
		}
		sum := md5.Sum([]byte(data))
		return NewDString(hex.EncodeToString(sum[:])), nil
	})
}

// Codegen implements the TypedExpr interface.
func (e *MD5) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	ctx.Import("crypto/md5")
	ctx.Import("encoding/hex")
	return codegenNullSafe(ctx, "string", e.Children(),
		func(vals []string, resVal, resIsNull string) string {
			sum := ctx.Ident("sum")
			return fmt.Sprintf("%s := md5.Sum(%s)\n%s = hex.EncodeToString(%s[:])\n%s = false",
				sum, vals[0], resVal, sum, resIsNull)
		})
}

// String implements the fmt.Stringer interface.
func (e *MD5) String() string { return fmt.Sprintf("md5(%s)", e.Input) }

// SHA1 computes the SHA-1 digest of a byte-sequence input, as
// lowercase hexadecimal text.
type SHA1 struct {
	Input TypedExpr
}

// NewSHA1 returns a SHA1 node over input.
func NewSHA1(input TypedExpr) *SHA1 { return &SHA1{Input: input} }

var _ TypedExpr = &SHA1{}

// ResolvedType implements the TypedExpr interface.
func (*SHA1) ResolvedType() *types.T { return types.String }

// Nullable implements the TypedExpr interface.
func (*SHA1) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (e *SHA1) Foldable() bool { return e.Input.Foldable() }

// Children implements the TypedExpr interface.
func (e *SHA1) Children() []TypedExpr { return []TypedExpr{e.Input} }

// Eval implements the TypedExpr interface.
func (e *SHA1) Eval(ctx *EvalContext, row Row) (Datum, error) {
	return evalNullSafe(ctx, row, e.Children(), func(vals []Datum) (Datum, error) {
		data, err := MustBeDBytes(vals[0])
		if err != nil {
			return nil, err
		}
		sum := sha1.Sum([]byte(data))
		return NewDString(hex.EncodeToString(sum[:])), nil
	})
}

// Codegen implements the TypedExpr interface.
func (e *SHA1) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	ctx.Import("crypto/sha1")
	ctx.Import("encoding/hex")
	return codegenNullSafe(ctx, "string", e.Children(),
		func(vals []string, resVal, resIsNull string) string {
			sum := ctx.Ident("sum")
			return fmt.Sprintf("%s := sha1.Sum(%s)\n%s = hex.EncodeToString(%s[:])\n%s = false",
				sum, vals[0], resVal, sum, resIsNull)
		})
}

// String implements the fmt.Stringer interface.
func (e *SHA1) String() string { return fmt.Sprintf("sha1(%s)", e.Input) }

// sha224Available caches the capability probe for SHA-224. The probe
// outcome is encoded as an absent result at evaluation time, never as
// an error.
var sha224Available = crypto.SHA224.Available()

// SHA2 computes a SHA-2 family digest of a byte-sequence input, as
// lowercase hexadecimal text. The family member is selected by the
// BitLength child: 224, 256 (or 0, an alias for 256), 384, or 512.
// Unlike the other digest nodes, SHA2's own computation can yield
// NULL: an unsupported bit length, or bit length 224 on a runtime
// without SHA-224, produces NULL rather than an error, so one bad row
// cannot abort a batch.
type SHA2 struct {
	Input     TypedExpr
	BitLength TypedExpr
}

// NewSHA2 returns a SHA2 node over input with the given bit-length
// expression.
func NewSHA2(input, bitLength TypedExpr) *SHA2 {
	return &SHA2{Input: input, BitLength: bitLength}
}

var _ TypedExpr = &SHA2{}

// ResolvedType implements the TypedExpr interface.
func (*SHA2) ResolvedType() *types.T { return types.String }

// Nullable implements the TypedExpr interface.
func (*SHA2) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (e *SHA2) Foldable() bool { return e.Input.Foldable() && e.BitLength.Foldable() }

// Children implements the TypedExpr interface.
func (e *SHA2) Children() []TypedExpr { return []TypedExpr{e.Input, e.BitLength} }

// Eval implements the TypedExpr interface.
func (e *SHA2) Eval(ctx *EvalContext, row Row) (Datum, error) {
	return evalNullSafe(ctx, row, e.Children(), func(vals []Datum) (Datum, error) {
		data, err := MustBeDBytes(vals[0])
		if err != nil {
			return nil, err
		}
		bits, err := MustBeDInt(vals[1])
		if err != nil {
			return nil, err
		}
		switch bits {
		case 224:
			if !sha224Available {
				return DNull, nil
			}
			sum := sha256.Sum224([]byte(data))
			return NewDString(hex.EncodeToString(sum[:])), nil
		case 0, 256:
			sum := sha256.Sum256([]byte(data))
			return NewDString(hex.EncodeToString(sum[:])), nil
		case 384:
			sum := sha512.Sum384([]byte(data))
			return NewDString(hex.EncodeToString(sum[:])), nil
		case 512:
			sum := sha512.Sum512([]byte(data))
			return NewDString(hex.EncodeToString(sum[:])), nil
		default:
			return DNull, nil
		}
	})
}

// Codegen implements the TypedExpr interface. The emitted switch
// assigns the result only in supported branches; the default branch
// leaves the result null, matching Eval.
func (e *SHA2) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	ctx.Import("crypto")
	ctx.Import("crypto/sha256")
	ctx.Import("crypto/sha512")
	ctx.Import("encoding/hex")
	return codegenNullSafe(ctx, "string", e.Children(),
		func(vals []string, resVal, resIsNull string) string {
			sum := ctx.Ident("sum")
			assign := func(sumCall string) string {
				return fmt.Sprintf("%s := %s\n%s = hex.EncodeToString(%s[:])\n%s = false",
					sum, sumCall, resVal, sum, resIsNull)
			}
			return fmt.Sprintf(`switch %[1]s {
case 224:
if crypto.SHA224.Available() {
%[2]s
}
case 0, 256:
%[3]s
case 384:
%[4]s
case 512:
%[5]s
}`,
				vals[1],
				assign(fmt.Sprintf("sha256.Sum224(%s)", vals[0])),
				assign(fmt.Sprintf("sha256.Sum256(%s)", vals[0])),
				assign(fmt.Sprintf("sha512.Sum384(%s)", vals[0])),
				assign(fmt.Sprintf("sha512.Sum512(%s)", vals[0])))
		})
}

// String implements the fmt.Stringer interface.
func (e *SHA2) String() string { return fmt.Sprintf("sha2(%s, %s)", e.Input, e.BitLength) }

// CRC32 computes the IEEE CRC-32 checksum of a byte-sequence input,
// widened to a non-negative 64-bit integer.
type CRC32 struct {
	Input TypedExpr
}

// NewCRC32 returns a CRC32 node over input.
func NewCRC32(input TypedExpr) *CRC32 { return &CRC32{Input: input} }

var _ TypedExpr = &CRC32{}

// ResolvedType implements the TypedExpr interface.
func (*CRC32) ResolvedType() *types.T { return types.Int }

// Nullable implements the TypedExpr interface.
func (*CRC32) Nullable() bool { return true }

// Foldable implements the TypedExpr interface.
func (e *CRC32) Foldable() bool { return e.Input.Foldable() }

// Children implements the TypedExpr interface.
func (e *CRC32) Children() []TypedExpr { return []TypedExpr{e.Input} }

// Eval implements the TypedExpr interface.
func (e *CRC32) Eval(ctx *EvalContext, row Row) (Datum, error) {
	return evalNullSafe(ctx, row, e.Children(), func(vals []Datum) (Datum, error) {
		data, err := MustBeDBytes(vals[0])
		if err != nil {
			return nil, err
		}
		return NewDInt(int64(crc32.ChecksumIEEE([]byte(data)))), nil
	})
}

// Codegen implements the TypedExpr interface.
func (e *CRC32) Codegen(ctx *codegen.Context) (codegen.Fragment, error) {
	ctx.Import("hash/crc32")
	return codegenNullSafe(ctx, "int64", e.Children(),
		func(vals []string, resVal, resIsNull string) string {
			return fmt.Sprintf("%s = int64(crc32.ChecksumIEEE(%s))\n%s = false",
				resVal, vals[0], resIsNull)
		})
}

// String implements the fmt.Stringer interface.
func (e *CRC32) String() string { return fmt.Sprintf("crc32(%s)", e.Input) }
