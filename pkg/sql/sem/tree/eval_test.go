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
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/quarrydb/quarry/pkg/sql/types"
)

// TestEvalDataDriven drives the interpreted path from vector files.
//
// Directives:
//
//	md5 / sha1 / crc32 [null]   digest of the input block's bytes
//	sha2 bits=<n|null> [null]   SHA-2 digest with the given bit length
//	hash [seed=<n>]             row hash; one value per input line:
//	                            null, int:<v>, int4:<v>, str:<s>,
//	                            bytes:<s>, or <kind>:null for a typed
//	                            null
func TestEvalDataDriven(t *testing.T) {
	ctx := &EvalContext{}
	datadriven.RunTest(t, "testdata/eval", func(t *testing.T, d *datadriven.TestData) string {
		expr, row, err := parseTestExpr(t, d)
		if err != nil {
			t.Fatalf("%s: %v", d.Pos, err)
		}
		res, err := expr.Eval(ctx, row)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return renderDatum(res)
	})
}

func parseTestExpr(t *testing.T, d *datadriven.TestData) (TypedExpr, Row, error) {
	input := func() TypedExpr {
		if d.HasArg("null") {
			return DNull
		}
		return NewDBytes([]byte(d.Input))
	}
	switch d.Cmd {
	case "md5":
		return NewMD5(input()), nil, nil
	case "sha1":
		return NewSHA1(input()), nil, nil
	case "crc32":
		return NewCRC32(input()), nil, nil
	case "sha2":
		var bitsArg string
		d.ScanArgs(t, "bits", &bitsArg)
		bits := TypedExpr(DNull)
		if bitsArg != "null" {
			n, err := strconv.ParseInt(bitsArg, 10, 64)
			if err != nil {
				return nil, nil, err
			}
			bits = NewDInt(n)
		}
		return NewSHA2(input(), bits), nil, nil
	case "hash":
		seed := DefaultHashSeed
		if d.HasArg("seed") {
			var s int
			d.ScanArgs(t, "seed", &s)
			seed = uint32(s)
		}
		var children []TypedExpr
		var row Row
		for _, line := range strings.Split(d.Input, "\n") {
			child, val, err := parseTestValue(line, len(row))
			if err != nil {
				return nil, nil, err
			}
			children = append(children, child)
			if val != nil {
				row = append(row, val)
			}
		}
		h, err := NewRowHash(seed, children...)
		return h, row, err
	default:
		return nil, nil, fmt.Errorf("unknown directive %q", d.Cmd)
	}
}

// parseTestValue parses one "kind:payload" input line. Typed values
// become IndexedVars over the test row so that the vectors also cover
// variable binding; a bare "null" is the untyped NULL literal.
func parseTestValue(line string, idx int) (TypedExpr, Datum, error) {
	if line == "null" {
		return DNull, nil, nil
	}
	kind, payload, ok := strings.Cut(line, ":")
	if !ok {
		return nil, nil, fmt.Errorf("malformed value %q", line)
	}
	var typ *types.T
	var d Datum
	switch kind {
	case "int":
		typ = types.Int
	case "int4":
		typ = types.Int4
	case "str":
		typ = types.String
		d = NewDString(payload)
	case "bytes":
		typ = types.Bytes
		d = NewDBytes([]byte(payload))
	default:
		return nil, nil, fmt.Errorf("unknown value kind %q", kind)
	}
	if typ.Family() == types.IntFamily && payload != "null" {
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		d = NewDInt(n)
	}
	if payload == "null" {
		d = DNull
	}
	return NewIndexedVar(idx, typ), d, nil
}

func renderDatum(d Datum) string {
	switch v := d.(type) {
	case dNull:
		return "NULL"
	case DString:
		return string(v)
	case DInt:
		return strconv.FormatInt(int64(v), 10)
	case DBytes:
		return fmt.Sprintf("%x", string(v))
	default:
		return d.String()
	}
}
