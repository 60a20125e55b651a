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

// Package types defines the type descriptors shared by the expression
// layer. Expressions arrive here already type-resolved, so the
// descriptors are deliberately coarse: a family tag plus an integer
// width where the family needs one.
package types

// Family classifies a type descriptor by its runtime representation.
type Family int

const (
	// UnknownFamily is the family of an untyped NULL.
	UnknownFamily Family = iota
	// BytesFamily types are raw byte sequences.
	BytesFamily
	// StringFamily types are text.
	StringFamily
	// IntFamily types are signed integers of Width bits.
	IntFamily
)

// String implements the fmt.Stringer interface.
func (f Family) String() string {
	switch f {
	case BytesFamily:
		return "bytes"
	case StringFamily:
		return "string"
	case IntFamily:
		return "int"
	default:
		return "unknown"
	}
}

// T is an immutable type descriptor. Use the package singletons below
// rather than constructing values directly.
type T struct {
	family Family
	width  int32
}

var (
	// Unknown is the type of an untyped NULL.
	Unknown = &T{family: UnknownFamily}
	// Bytes is the raw byte sequence type.
	Bytes = &T{family: BytesFamily}
	// String is the text type.
	String = &T{family: StringFamily}
	// Int is the 64-bit signed integer type.
	Int = &T{family: IntFamily, width: 64}
	// Int4 is the 32-bit signed integer type.
	Int4 = &T{family: IntFamily, width: 32}
)

// Family returns the type's family.
func (t *T) Family() Family { return t.family }

// Width returns the type's width in bits, or 0 if the family has no
// width notion.
func (t *T) Width() int32 { return t.width }

// Identical reports whether two descriptors are the same type,
// width included.
func (t *T) Identical(other *T) bool {
	return t.family == other.family && t.width == other.width
}

// String implements the fmt.Stringer interface.
func (t *T) String() string {
	if t.family == IntFamily && t.width == 32 {
		return "int4"
	}
	return t.family.String()
}
