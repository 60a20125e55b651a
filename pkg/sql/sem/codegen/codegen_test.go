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
	"go/parser"
	"testing"

	"github.com/quarrydb/quarry/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func TestContextNewVar(t *testing.T) {
	ctx := NewContext()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		val, isNull := ctx.NewVar()
		require.False(t, seen[val], "reused identifier %s", val)
		require.False(t, seen[isNull], "reused identifier %s", isNull)
		seen[val], seen[isNull] = true, true
	}
}

func TestContextIdent(t *testing.T) {
	ctx := NewContext()
	require.NotEqual(t, ctx.Ident("sum"), ctx.Ident("sum"))
	// Prefixes are namespaced independently.
	require.Equal(t, "h0", ctx.Ident("h"))
	require.Equal(t, "h1", ctx.Ident("h"))
}

func TestContextImports(t *testing.T) {
	ctx := NewContext()
	ctx.Import("encoding/hex")
	ctx.Import("crypto/md5")
	ctx.Import("encoding/hex")
	require.Equal(t, []string{"crypto/md5", "encoding/hex"}, ctx.Imports())
}

func TestContextBind(t *testing.T) {
	ctx := NewContext()
	b2 := ctx.Bind(2, "int64")
	b0 := ctx.Bind(0, "[]byte")
	require.Equal(t, "a2", b2.Val)
	require.Equal(t, "a2Null", b2.IsNull)
	// Rebinding the same ordinal returns the same parameter pair.
	require.Equal(t, b2, ctx.Bind(2, "int64"))
	// Params come back in ordinal order regardless of binding order.
	require.Equal(t, []Binding{b0, b2}, ctx.Params())
}

func TestGoType(t *testing.T) {
	for typ, expected := range map[*types.T]string{
		types.Bytes:  "[]byte",
		types.String: "string",
		types.Int:    "int64",
		types.Int4:   "int64",
	} {
		s, err := GoType(typ)
		require.NoError(t, err)
		require.Equal(t, expected, s)
	}
	_, err := GoType(types.Unknown)
	require.Error(t, err)
}

// TestFuncSource checks that assembled sources are syntactically valid
// Go function literals.
func TestFuncSource(t *testing.T) {
	ctx := NewContext()
	in := ctx.Bind(0, "[]byte")
	val, isNull := ctx.NewVar()
	frag := Fragment{
		Code:   "var " + val + " string\n" + isNull + " := " + in.IsNull,
		Val:    val,
		IsNull: isNull,
	}
	src := FuncSource(ctx, frag, "string")
	_, err := parser.ParseExpr(src)
	require.NoError(t, err, "generated source does not parse:\n%s", src)
}

// TestFuncSourceNoParams covers routines over constant expressions
// only: the parameter list is empty and the fragment may use literal
// result expressions.
func TestFuncSourceNoParams(t *testing.T) {
	ctx := NewContext()
	src := FuncSource(ctx, Fragment{Val: `"abc"`, IsNull: "false"}, "string")
	_, err := parser.ParseExpr(src)
	require.NoError(t, err, "generated source does not parse:\n%s", src)
}
