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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	testCases := []struct {
		typ      *T
		family   Family
		width    int32
		expected string
	}{
		{Unknown, UnknownFamily, 0, "unknown"},
		{Bytes, BytesFamily, 0, "bytes"},
		{String, StringFamily, 0, "string"},
		{Int, IntFamily, 64, "int"},
		{Int4, IntFamily, 32, "int4"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.family, tc.typ.Family())
			require.Equal(t, tc.width, tc.typ.Width())
			require.Equal(t, tc.expected, tc.typ.String())
		})
	}
}

func TestIdentical(t *testing.T) {
	require.True(t, Int.Identical(Int))
	require.False(t, Int.Identical(Int4))
	require.False(t, Bytes.Identical(String))
}
