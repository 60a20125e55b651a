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

// Package rowenc implements the packed-row encoding used as the hashing
// input by the row-hash expression node, along with the seeded 32-bit
// hash computed over packed buffers.
//
// The encoding is append-style over a caller-supplied buffer, injective
// and order-sensitive: each value starts with a distinct type marker,
// variable-length payloads carry an explicit big-endian length prefix,
// integers are fixed-width big-endian, and NULL is a marker with no
// payload. The exact byte layout and the hash function are a frozen
// compatibility contract: downstream consumers route data (e.g. for
// partitioning) by hashes of packed rows, so any change here reshuffles
// existing data placement.
package rowenc

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/twmb/murmur3"
)

const (
	nullMarker   byte = 0x00
	bytesMarker  byte = 0x01
	stringMarker byte = 0x02
	int32Marker  byte = 0x03
	int64Marker  byte = 0x04
)

// Type represents the type of a value encoded at the start of a packed
// buffer.
type Type int

// Type values.
const (
	Unknown Type = iota
	Null
	Bytes
	String
	Int32
	Int64
)

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case Null:
		return "NULL"
	case Bytes:
		return "BYTES"
	case String:
		return "STRING"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	default:
		return "UNKNOWN"
	}
}

// EncodeNull appends the NULL marker to b.
func EncodeNull(b []byte) []byte {
	return append(b, nullMarker)
}

// EncodeBytes appends a marked, length-prefixed byte sequence to b.
func EncodeBytes(b []byte, data []byte) []byte {
	b = append(b, bytesMarker)
	b = binary.BigEndian.AppendUint32(b, uint32(len(data)))
	return append(b, data...)
}

// EncodeString appends a marked, length-prefixed text value to b. The
// marker differs from EncodeBytes so that equal payloads of different
// declared types pack differently.
func EncodeString(b []byte, s string) []byte {
	b = append(b, stringMarker)
	b = binary.BigEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// EncodeInt32 appends a marked 32-bit big-endian integer to b.
func EncodeInt32(b []byte, v int32) []byte {
	b = append(b, int32Marker)
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

// EncodeInt64 appends a marked 64-bit big-endian integer to b.
func EncodeInt64(b []byte, v int64) []byte {
	b = append(b, int64Marker)
	return binary.BigEndian.AppendUint64(b, uint64(v))
}

// Hash computes the seeded 32-bit Murmur3 hash of a packed buffer.
func Hash(b []byte, seed uint32) uint32 {
	return murmur3.SeedSum32(seed, b)
}

// PeekType returns the type of the value encoded at the start of b.
func PeekType(b []byte) Type {
	if len(b) == 0 {
		return Unknown
	}
	switch b[0] {
	case nullMarker:
		return Null
	case bytesMarker:
		return Bytes
	case stringMarker:
		return String
	case int32Marker:
		return Int32
	case int64Marker:
		return Int64
	default:
		return Unknown
	}
}

// PrettyPrint renders a packed buffer for debugging, one "/"-separated
// component per encoded value. It is not part of the layout contract.
func PrettyPrint(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		rest, s, err := prettyPrintFirst(b)
		if err != nil {
			fmt.Fprintf(&sb, "/<%v>", err)
			break
		}
		sb.WriteString("/")
		sb.WriteString(s)
		b = rest
	}
	return sb.String()
}

func prettyPrintFirst(b []byte) (rest []byte, s string, err error) {
	switch PeekType(b) {
	case Null:
		return b[1:], "NULL", nil
	case Bytes, String:
		if len(b) < 5 {
			return nil, "", errors.Errorf("truncated length prefix: % x", b)
		}
		n := binary.BigEndian.Uint32(b[1:5])
		if uint32(len(b)-5) < n {
			return nil, "", errors.Errorf("%d-byte payload in %d-byte buffer", n, len(b)-5)
		}
		payload := b[5 : 5+n]
		if PeekType(b) == String {
			return b[5+n:], fmt.Sprintf("%q", payload), nil
		}
		return b[5+n:], fmt.Sprintf("0x%x", payload), nil
	case Int32:
		if len(b) < 5 {
			return nil, "", errors.Errorf("truncated int32: % x", b)
		}
		return b[5:], fmt.Sprint(int32(binary.BigEndian.Uint32(b[1:5]))), nil
	case Int64:
		if len(b) < 9 {
			return nil, "", errors.Errorf("truncated int64: % x", b)
		}
		return b[9:], fmt.Sprint(int64(binary.BigEndian.Uint64(b[1:9]))), nil
	default:
		return nil, "", errors.Errorf("unknown marker %#x", b[0])
	}
}
