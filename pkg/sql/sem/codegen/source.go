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
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/quarrydb/quarry/pkg/sql/types"
	"github.com/quarrydb/quarry/pkg/util/log"
	"go.uber.org/zap"
)

// GoType maps a type descriptor to the Go type generated code uses for
// its values. 32-bit integers still travel as int64; the declared
// descriptor only selects their packed encoding.
func GoType(t *types.T) (string, error) {
	switch t.Family() {
	case types.BytesFamily:
		return "[]byte", nil
	case types.StringFamily:
		return "string", nil
	case types.IntFamily:
		return "int64", nil
	default:
		return "", errors.AssertionFailedf("type %s has no generated representation", t)
	}
}

// FuncSource assembles a fragment into a complete Go function literal
// for the compiling backend:
//
//	func(a0 []byte, a0Null bool, ...) (T, bool) { <code>; return val, isNull }
//
// The parameter list is the Context's bindings in ordinal order; the
// backend is responsible for making the Context's Imports available.
func FuncSource(ctx *Context, frag Fragment, resultGoType string) string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range ctx.Params() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %s, %s bool", p.Val, p.GoType, p.IsNull)
	}
	fmt.Fprintf(&sb, ") (%s, bool) {\n", resultGoType)
	if frag.Code != "" {
		sb.WriteString(frag.Code)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "return %s, %s\n}", frag.Val, frag.IsNull)
	src := sb.String()
	log.Logger().Debug("assembled generated evaluator",
		zap.Strings("imports", ctx.Imports()), zap.String("src", src))
	return src
}
