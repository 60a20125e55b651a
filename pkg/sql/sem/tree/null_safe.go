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

	"github.com/quarrydb/quarry/pkg/sql/sem/codegen"
)

// The null-safe dispatch contract: a nullable node whose required
// input is absent is itself absent, and its core computation is never
// invoked. The two helpers below implement the contract once for each
// evaluation path; nodes supply only the core computation, so the
// interpreted and generated guards cannot drift apart.

// evalNullSafe evaluates args in declared order and short-circuits to
// DNull on the first null, without evaluating later args or invoking
// fn. Otherwise fn receives the concrete values.
func evalNullSafe(
	ctx *EvalContext, row Row, args []TypedExpr, fn func(vals []Datum) (Datum, error),
) (Datum, error) {
	vals := make([]Datum, len(args))
	for i, arg := range args {
		d, err := arg.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if d == DNull {
			return DNull, nil
		}
		vals[i] = d
	}
	return fn(vals)
}

// codegenNullSafe emits the generated-path equivalent of evalNullSafe:
// the result variables start out null, and the body runs behind a
// guard over every child that can be null at runtime. Children whose
// is-null expression is the literal "false" are dropped from the
// guard; a child that is the literal "true" (a NULL literal) elides
// the body entirely, leaving the result null.
//
// The body callback receives the child value expressions and the
// result identifiers, and returns statements assigning both. A body
// that leaves them unassigned on some path yields null on that path.
func codegenNullSafe(
	ctx *codegen.Context,
	resultGoType string,
	args []TypedExpr,
	body func(vals []string, resVal, resIsNull string) string,
) (codegen.Fragment, error) {
	var sb strings.Builder
	vals := make([]string, len(args))
	var guards []string
	alwaysNull := false
	for i, arg := range args {
		frag, err := arg.Codegen(ctx)
		if err != nil {
			return codegen.Fragment{}, err
		}
		if frag.Code != "" {
			sb.WriteString(frag.Code)
			sb.WriteString("\n")
		}
		vals[i] = frag.Val
		switch frag.IsNull {
		case "false":
		case "true":
			alwaysNull = true
		default:
			guards = append(guards, "!"+frag.IsNull)
		}
	}
	resVal, resIsNull := ctx.NewVar()
	fmt.Fprintf(&sb, "var %s %s\n", resVal, resultGoType)
	fmt.Fprintf(&sb, "%s := true\n", resIsNull)
	switch {
	case alwaysNull:
	case len(guards) == 0:
		sb.WriteString(body(vals, resVal, resIsNull))
	default:
		fmt.Fprintf(&sb, "if %s {\n%s\n}", strings.Join(guards, " && "),
			body(vals, resVal, resIsNull))
	}
	return codegen.Fragment{Code: sb.String(), Val: resVal, IsNull: resIsNull}, nil
}
